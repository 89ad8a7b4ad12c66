// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. ClubHub
// uses it to guarantee an admin account exists on fresh deployments.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := userstore.New(deps.ClubHubMongoDatabase)
	created, err := users.EnsureAdmin(ctx, appCfg.AdminName, appCfg.AdminEmail, string(hash))
	if err != nil {
		logger.Error("bootstrap admin setup failed", zap.Error(err))
		return err
	}
	if created {
		logger.Info("created bootstrap admin account", zap.String("email", appCfg.AdminEmail))
	}
	return nil
}
