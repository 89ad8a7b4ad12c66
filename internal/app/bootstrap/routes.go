// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	activitiesfeature "github.com/dalemusser/clubhub/internal/app/features/activities"
	balancesfeature "github.com/dalemusser/clubhub/internal/app/features/balances"
	chargesfeature "github.com/dalemusser/clubhub/internal/app/features/charges"
	clubsfeature "github.com/dalemusser/clubhub/internal/app/features/clubs"
	healthfeature "github.com/dalemusser/clubhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/clubhub/internal/app/features/login"
	membersfeature "github.com/dalemusser/clubhub/internal/app/features/members"
	notificationsfeature "github.com/dalemusser/clubhub/internal/app/features/notifications"
	paymentsfeature "github.com/dalemusser/clubhub/internal/app/features/payments"
	themefeature "github.com/dalemusser/clubhub/internal/app/features/theme"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every response is JSON; the mobile
// clients own the presentation.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.ClubHubMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.ClubHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication: POST /login, POST /logout.
	loginHandler := loginfeature.NewHandler(db, sessionMgr, logger)
	r.Mount("/", loginfeature.Routes(loginHandler))

	// Clubs and everything scoped to one club.
	clubsHandler := clubsfeature.NewHandler(db, logger)
	r.Mount("/clubs", clubsfeature.Routes(clubsHandler))

	membersHandler := membersfeature.NewHandler(db, logger)
	r.Mount("/clubs/{id}/members", membersfeature.Routes(membersHandler))

	chargesHandler := chargesfeature.NewHandler(db, logger)
	r.Mount("/clubs/{id}/charges", chargesfeature.Routes(chargesHandler))

	balancesHandler := balancesfeature.NewHandler(db, logger)
	r.Mount("/clubs/{id}/balances", balancesfeature.Routes(balancesHandler))

	paymentsHandler := paymentsfeature.NewHandler(db, logger)
	r.Mount("/clubs/{id}/payments", paymentsfeature.Routes(paymentsHandler))

	activitiesHandler := activitiesfeature.NewHandler(db, logger)
	r.Mount("/clubs/{id}/activities", activitiesfeature.Routes(activitiesHandler))

	// Per-user surfaces.
	themeHandler := themefeature.NewHandler(db, logger)
	r.Mount("/me/theme", themefeature.Routes(themeHandler))

	notificationsHandler := notificationsfeature.NewHandler(db, logger)
	r.Mount("/me/notifications", notificationsfeature.Routes(notificationsHandler))

	return r, nil
}
