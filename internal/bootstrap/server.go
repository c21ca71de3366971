package bootstrap

import (
	"context"
	"net/http"

	"github.com/jonesrussell/onboarding/internal/api"
	"github.com/jonesrussell/onboarding/internal/auth"
	"github.com/jonesrussell/onboarding/internal/config"
	"github.com/jonesrussell/onboarding/internal/database"
	"github.com/jonesrussell/onboarding/internal/events"
	"github.com/jonesrussell/onboarding/internal/logger"
	"github.com/jonesrussell/onboarding/internal/repository"
)

// SetupHTTPServer wires the repositories, handlers, and router into an HTTP
// server.
func SetupHTTPServer(
	cfg *config.Config,
	db *database.DB,
	publisher *events.Publisher,
	log logger.Logger,
) *http.Server {
	employeeRepo := repository.NewEmployeeRepository(db.DB(), log)
	documentRepo := repository.NewDocumentRepository(db.DB(), log)
	tokens := auth.NewTokenManager(cfg.Security.SecretKey, cfg.Security.TokenExpiry())

	router := api.NewRouter(api.RouterDeps{
		Config:    cfg,
		Logger:    log,
		Tokens:    tokens,
		DB:        db,
		Employees: employeeRepo,
		Documents: documentRepo,
		Publisher: publisher,
	})

	return api.NewServer(cfg.Server, router)
}

// RunServer runs the HTTP server with graceful shutdown.
func RunServer(ctx context.Context, cfg *config.Config, srv *http.Server, log logger.Logger) error {
	return api.RunWithGracefulShutdown(ctx, srv, log, cfg.Server.ShutdownTimeout)
}
