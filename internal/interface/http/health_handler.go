package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nihongonext/api/config"
)

type HealthHandler struct {
	Pool *pgxpool.Pool
	Cfg  *config.Config
}

func NewHealthHandler(pool *pgxpool.Pool, cfg *config.Config) *HealthHandler {
	return &HealthHandler{Pool: pool, Cfg: cfg}
}

// Check GET /api/health. Reports degraded with a 503 when the store does not
// answer a ping in time.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, db, code := "ok", "up", http.StatusOK
	if err := h.Pool.Ping(ctx); err != nil {
		status, db, code = "degraded", "unreachable", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"db":        db,
		"env":       h.Cfg.Env,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
