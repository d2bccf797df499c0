package router

import (
	"github.com/tuanhqv123/news-api/internal/application"
	"github.com/tuanhqv123/news-api/internal/container"
	pginfra "github.com/tuanhqv123/news-api/internal/infrastructure/postgres"
	handlers "github.com/tuanhqv123/news-api/internal/interface/http"
	"github.com/tuanhqv123/news-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	profiles := pginfra.NewProfileRepository(container.GetPGPool())
	indexer := application.NewProfileIndexer(container.GetES(), cfg.ESUsersIndex, logger)

	inviteSvc := &application.InviteService{
		Verifier:    container.GetSupabase(),
		Admin:       container.GetSupabaseAdmin(),
		Profiles:    profiles,
		Pub:         container.GetRabbitPub(),
		Indexer:     indexer,
		Logger:      logger,
		AppName:     cfg.AppName,
		MailEnabled: cfg.MailSendEnabled,
	}
	accountSvc := &application.AccountService{
		Auth:     container.GetSupabase(),
		Profiles: profiles,
		Indexer:  indexer,
		Logger:   logger,
	}
	adminSvc := &application.AdminService{
		Admin:    container.GetSupabaseAdmin(),
		Profiles: profiles,
		Indexer:  indexer,
		Logger:   logger,
	}

	r.Add(modules.NewInviteModule(handlers.NewInviteHandler(inviteSvc, logger, cfg.DeepLinkScheme)))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(accountSvc, logger), container.GetTokenParser()))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), container.GetTokenParser(), profiles))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
