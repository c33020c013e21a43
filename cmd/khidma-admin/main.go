package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/logger"
	"github.com/khidma-app/khidma-admin/internal/router"
	"github.com/khidma-app/khidma-admin/internal/setup"
	"github.com/khidma-app/khidma-admin/internal/storage/pg"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	if err := pg.Migrate(cfg); err != nil {
		logger.Log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()
	defer deps.LoginLimiter.Stop()

	r := router.New(deps)

	logger.Log.Info("server started", "addr", cfg.Public.ListenAddr, "environment", cfg.Public.Environment)
	if err := http.ListenAndServe(cfg.Public.ListenAddr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
