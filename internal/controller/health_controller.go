package controller

import (
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/logger"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping() error
}

type ContextPinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	Identity   Pinger
	Interviews ContextPinger
}

func NewHealthController(identity Pinger, interviews ContextPinger) *HealthController {
	return &HealthController{Identity: identity, Interviews: interviews}
}

// @Summary 健康检查
// @Description 检查身份库和面试库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} object
// @Failure 503 {object} util.ErrorResponse
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.Identity.Ping(); err != nil {
		logger.Log.Error("Identity store unavailable", zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	if err := c.Interviews.Ping(pingCtx); err != nil {
		logger.Log.Error("Interview store unavailable", zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Document store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database":  "up",
			"documents": "up",
		},
	})
}
