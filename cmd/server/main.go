package main

import (
	"fmt"

	"revhub/internal/app"
	"revhub/internal/config"
	"revhub/pkg/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config: ", err)
	}

	router := app.NewRouter(cfg)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	logger.Infof("server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server: ", err)
	}
}
