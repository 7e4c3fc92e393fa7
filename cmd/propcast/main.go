// -----------------------------------------------------------------------
// Last Modified: Monday, 19th October 2026 4:12:37 pm
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/app"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	serverPort   = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP  = flag.Int("p", 0, "Server port (shorthand, overrides config)")
	serverHost   = flag.String("host", "", "Server host (overrides config)")
	envFile      = flag.String("env", ".env", "Environment file loaded before configuration")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	common.InstallCrashHandler("./logs")
	defer common.RecoverWithCrashFile()

	flag.Parse()

	common.LoadVersionFromFile()

	if *showVersion || *showVersionV {
		fmt.Printf("Propcast version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Merge port flags (shorthand takes precedence)
	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load .env into the process environment
	// 2. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 3. Apply CLI overrides (highest priority)
	// 4. Initialize logger
	// 5. Print banner
	envErr := godotenv.Load(*envFile)

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("propcast.toml"); err == nil {
			configFiles = append(configFiles, "propcast.toml")
		} else if _, err := os.Stat("deployments/local/propcast.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/propcast.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, finalPort, *serverHost)

	logger := common.InitLogger(config)

	common.PrintBanner(config, logger)

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn().Err(envErr).Str("path", *envFile).Msg("Failed to load environment file")
	}

	logger.Info().
		Strs("config_files", configFiles).
		Int("port", config.Server.Port).
		Str("host", config.Server.Host).
		Str("log_file", common.GetLogFilePath(logger)).
		Msg("Application configuration loaded")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	srv := server.New(application)

	serverErr := make(chan error, 1)
	common.SafeGo(logger, "http-server", func() {
		serverErr <- srv.Start()
	})

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	// Wait for interrupt signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info().Msg("Interrupt signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("Server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}
