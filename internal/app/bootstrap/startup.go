// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/acadiahub/acadiahub/internal/app/feed"
	eventstore "github.com/acadiahub/acadiahub/internal/app/store/events"
	userstore "github.com/acadiahub/acadiahub/internal/app/store/users"
	"github.com/acadiahub/acadiahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// eventHub is the app-wide live feed hub, created in Startup and torn
// down in Shutdown. BuildHandler wires it into the HTTP surface.
var (
	eventHub  *feed.Hub
	hubCancel context.CancelFunc
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// Acadia Hub applies the configured operation timeouts and starts the
// feed hub here: a single change-stream consumer
// that keeps the in-memory event snapshot current for the lifetime of
// the process.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	names := feed.NewNameCache(userstore.New(deps.MongoDatabase), appCfg.NameCacheTTL)
	eventHub = feed.NewHub(eventstore.New(deps.MongoDatabase), names, logger)

	var hubCtx context.Context
	hubCtx, hubCancel = context.WithCancel(context.Background())
	go func() {
		if err := eventHub.Run(hubCtx); err != nil && hubCtx.Err() == nil {
			logger.Error("feed hub stopped", zap.Error(err))
		}
	}()

	return nil
}
