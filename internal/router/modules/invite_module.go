package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanhqv123/news-api/internal/container"
	handlers "github.com/tuanhqv123/news-api/internal/interface/http"
	"github.com/tuanhqv123/news-api/internal/interface/middleware"
)

// InviteModule wires the public invitation-redemption endpoints. All three
// are unauthenticated (the token itself is the credential) and rate limited
// per IP.
type InviteModule struct {
	Handler *handlers.InviteHandler
}

func NewInviteModule(h *handlers.InviteHandler) *InviteModule {
	return &InviteModule{Handler: h}
}

func (m *InviteModule) Register(rg *gin.RouterGroup) {
	callbackLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	setupLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/auth/callback", callbackLimiter, m.Handler.Callback)
	rg.POST("/auth/verify-invite", verifyLimiter, m.Handler.VerifyInvite)
	rg.POST("/auth/setup-password", setupLimiter, m.Handler.SetupPassword)
}
