// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	companiesfeature "github.com/CCRProject300/kudoshub/internal/app/features/companies"
	healthfeature "github.com/CCRProject300/kudoshub/internal/app/features/health"
	leaguesfeature "github.com/CCRProject300/kudoshub/internal/app/features/leagues"
	notificationsfeature "github.com/CCRProject300/kudoshub/internal/app/features/notifications"
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/joins"
	"github.com/CCRProject300/kudoshub/internal/app/system/mailer"
	"github.com/CCRProject300/kudoshub/internal/app/system/notify"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. KudosHub mounts a JSON REST surface:
// health checks, leagues (create/join/switch/invite), companies, and the
// notification confirm/reject endpoints.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.KudosHubMongoDatabase

	verifier := auth.NewVerifier(appCfg.JWTSecret)

	var sender mailer.Sender = mailer.Discard{}
	if appCfg.SendGridAPIKey != "" {
		sender = mailer.NewSendGrid(appCfg.SendGridAPIKey, appCfg.MailFrom, appCfg.MailFromName)
	} else {
		logger.Warn("no SendGrid API key configured; invite emails disabled")
	}

	joinEngine := joins.New(db, logger)
	workflow := notify.New(db, joinEngine, sender, appCfg.BaseURL, logger)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.KudosHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	leaguesHandler := leaguesfeature.NewHandler(db, logger, workflow)
	r.Mount("/leagues", leaguesfeature.Routes(leaguesHandler, verifier))

	companiesHandler := companiesfeature.NewHandler(db, logger, workflow)
	r.Mount("/companies", companiesfeature.Routes(companiesHandler, verifier))

	notificationsHandler := notificationsfeature.NewHandler(db, logger, workflow)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, verifier))

	return r, nil
}
