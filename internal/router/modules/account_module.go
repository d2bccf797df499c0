package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanhqv123/news-api/internal/container"
	handlers "github.com/tuanhqv123/news-api/internal/interface/http"
	"github.com/tuanhqv123/news-api/internal/interface/middleware"
	"github.com/tuanhqv123/news-api/pkg/helpers"
)

type AccountModule struct {
	Handler *handlers.AccountHandler
	Parser  *helpers.TokenParser
}

func NewAccountModule(h *handlers.AccountHandler, parser *helpers.TokenParser) *AccountModule {
	return &AccountModule{Handler: h, Parser: parser}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Parser))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.PUT("/auth/me", m.Handler.UpdateMe)
	}
}
