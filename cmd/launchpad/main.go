// Package main is the entry point for the launchpad rocket scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/launchpad/internal/config"
	"github.com/Faultbox/launchpad/internal/game"
	"github.com/Faultbox/launchpad/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config written to", path)
		return
	}
	if config.SaveConfigRequested() {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config saved to", path)
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Launchpad ===")
	logger.Sugar.Debugf("Config: %+v", cfg)
	if !cfg.Graphics.VSync && cfg.Graphics.FPSLimit <= 0 {
		logger.Warn("frame rate uncapped", zap.Bool("vsync", false), zap.Int("fps_limit", cfg.Graphics.FPSLimit))
	}

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("frame loop error", zap.Error(err))
		os.Exit(1)
	}

	logger.Debug("frame loop ended")
	logger.Info("closed normally")
}
