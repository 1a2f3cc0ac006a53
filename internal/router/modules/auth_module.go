package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nihongonext/api/config"
	"github.com/nihongonext/api/internal/container"
	handlers "github.com/nihongonext/api/internal/interface/http"
	"github.com/nihongonext/api/internal/interface/middleware"
)

// AuthModule wires the register/login/google endpoints.
// All three are public and throttled per client IP and path to blunt
// credential stuffing; the limits come from config (strict in production,
// relaxed in development).
type AuthModule struct {
	Handler *handlers.AuthHandler
	Cfg     *config.Config
}

func NewAuthModule(h *handlers.AuthHandler, cfg *config.Config) *AuthModule {
	return &AuthModule{Handler: h, Cfg: cfg}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), m.Cfg.AuthRateMax, m.Cfg.AuthRateWindow, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", limiter, m.Handler.Register)
	rg.POST("/auth/login", limiter, m.Handler.Login)
	rg.POST("/auth/google", limiter, m.Handler.GoogleLogin)
}
