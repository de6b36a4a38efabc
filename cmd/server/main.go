package main

import (
	"github.com/OFFIS-RIT/peoplegraph/internal/config"
	"github.com/OFFIS-RIT/peoplegraph/internal/server"
	"github.com/OFFIS-RIT/peoplegraph/internal/util"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	cfg := config.Load()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
	})
	logger.Init(consoleLogger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "err", errors.UserMessage(err))
	}

	server.Init(cfg)
}
