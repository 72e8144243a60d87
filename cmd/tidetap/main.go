// cmd/tidetap/main.go
package main

import (
	"errors"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/tidetap/internal/app"
	"github.com/bethropolis/tidetap/internal/config"
	"github.com/bethropolis/tidetap/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	flags := &config.Flags{}
	args := flags.ParseFlags()
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}
	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil && !errors.Is(err, config.ErrConfigFile) {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	// The terminal belongs to the viewer, so logs go to a file unless asked otherwise.
	if cfg.Logger.LogFilePath == "" {
		cfg.Logger.LogFilePath = config.DefaultLogFileName
	}
	output, closeLog, openErr := logger.OpenOutput(cfg.Logger.LogFilePath)
	if openErr != nil {
		stlog.Fatalf("Failed to open log output: %v", openErr)
	}
	defer closeLog()
	logger.Init(cfg.Logger, output)

	logger.Infof("Starting %s %s...", config.AppName, version)
	if err != nil {
		logger.Warnf("Using default configuration: %v", err)
	}
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, showing the demo document.")
	}

	// --- Create and Run App ---
	tapApp, err := app.New(app.Options{Config: cfg, Path: filePath})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := tapApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
