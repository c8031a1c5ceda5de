package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/strand-dev/strand/internal/config"
	"github.com/strand-dev/strand/internal/logger"
	"github.com/strand-dev/strand/internal/router"
	"github.com/strand-dev/strand/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize dependencies", "error", err.Error())
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	addr := fmt.Sprintf(":%d", cfg.Public.HttpPort)
	logger.Log.Info("Server started", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("Server stopped", "error", err.Error())
		os.Exit(1)
	}
}
