package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nihongonext/api/internal/interface/http"
	"github.com/nihongonext/api/internal/interface/middleware"
	"github.com/nihongonext/api/pkg/helpers"
)

// PostModule wires blog content routes.
// Public: list, read, comment (optional identity), like.
// Admin: create, update, delete.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/:slug", m.Handler.Get)

	admin := middleware.RequireAdmin(m.JWT)
	rg.POST("/posts", admin, m.Handler.Create)
	rg.PUT("/posts/:slug", admin, m.Handler.Update)
	rg.DELETE("/posts/:slug", admin, m.Handler.Delete)

	rg.POST("/posts/:slug/comments", middleware.OptionalAuth(m.JWT), m.Handler.AddComment)
	rg.POST("/posts/:slug/comments/:commentId/like", m.Handler.LikeComment)
}
