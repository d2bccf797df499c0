package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanhqv123/news-api/internal/container"
	"github.com/tuanhqv123/news-api/internal/domain/repository"
	handlers "github.com/tuanhqv123/news-api/internal/interface/http"
	"github.com/tuanhqv123/news-api/internal/interface/middleware"
	"github.com/tuanhqv123/news-api/pkg/helpers"
)

type AdminModule struct {
	Handler  *handlers.AdminHandler
	Parser   *helpers.TokenParser
	Profiles repository.ProfileRepository
}

func NewAdminModule(h *handlers.AdminHandler, parser *helpers.TokenParser, profiles repository.ProfileRepository) *AdminModule {
	return &AdminModule{Handler: h, Parser: parser, Profiles: profiles}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/auth/admin")
	admin.Use(middleware.Auth(m.Parser))
	admin.Use(middleware.RequireAdmin(m.Profiles))
	admin.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.POST("/invite-author", m.Handler.InviteAuthor)
		admin.POST("/set-role", m.Handler.SetRole)
		admin.GET("/users/search", m.Handler.SearchUsers)
	}
}
