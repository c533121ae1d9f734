package wire

import (
	"context"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/sakura/internal/config"
	"github.com/mithrel/sakura/internal/db"
	"github.com/mithrel/sakura/internal/engine"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg    *viper.Viper
	Log    *log.Logger
	Store  db.Store
	Engine *engine.Engine
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	logger := log.New(os.Stderr, "sakura ", log.LstdFlags)
	store, err := db.Open(ctx, "sqlite://"+config.ResolveDBPath(cfg))
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg:    cfg,
		Log:    logger,
		Store:  store,
		Engine: engine.New(logger),
	}, nil
}
