package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/internal/optimizer"
	"github.com/iwvelando/venture-forecast/internal/projection"
	"github.com/iwvelando/venture-forecast/internal/server"
	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/optimization"
	"github.com/iwvelando/venture-forecast/pkg/output"
	"github.com/iwvelando/venture-forecast/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// writeOutput renders result in the given format. Goal-seek answers are only
// rendered in the pretty report; other formats carry them in the log.
func writeOutput(w io.Writer, format string, result *projection.Result, goalSeek []optimization.Summary) error {
	switch format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(w, result)
		output.GoalSeekFormat(w, goalSeek)
		return nil
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, result)
	case constants.OutputFormatXLSX:
		return output.WriteXlsx(w, result)
	}
	return validation.ValidateOutputFormat(format)
}

// openOutput returns the destination for rendered output. Spreadsheets are
// never written to a terminal, so xlsx without a file gets a default name.
func openOutput(path, format string) (io.WriteCloser, error) {
	if path == "" && format == constants.OutputFormatXLSX {
		path = "projection.xlsx"
	}
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func serve(logger *zap.Logger, serverConf *server.Config) error {
	store, err := serverConf.NewCache()
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close cache", zap.String("op", "main.serve"), zap.Error(err))
			}
		}()
	}

	if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := pinger.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("cache backend unreachable, projections will be recomputed",
				zap.String("op", "main.serve"), zap.String("cache", serverConf.Cache.Backend), zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           server.NewHandler(logger, serverConf.UploadSizeBytes(), version, store, serverConf.CacheTTL()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main.serve"),
			zap.String("address", serverConf.Address),
			zap.String("cache", serverConf.Cache.Backend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down", zap.String("op", "main.serve"))
	return srv.Shutdown(shutdownCtx)
}

func main() {
	// Environment from .env is optional; real environment variables win.
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json, xlsx")
	outputFileFlag := flag.String("output-file", "", "write output to this file instead of stdout")
	durationUnitFlag := flag.String("duration-unit", "", "interpret projectDuration as years or months")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serveMode := flag.Bool("serve", false, "run the HTTP API instead of a one-off projection")
	serverConfig := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serveMode {
		serverConf, err := server.LoadConfig(*serverConfig)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfig, err)
			os.Exit(1)
		}
		logger, err := initializeLogger(serverConf.Logging, *logLevel)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = logger.Sync()
		}()

		if err := serve(logger, serverConf); err != nil {
			logger.Fatal("server failed", zap.String("op", "main"), zap.Error(err))
		}
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(), zap.String("op", "main"))
	}

	if *durationUnitFlag != "" {
		if err := validation.ValidateDurationUnit(*durationUnitFlag); err != nil {
			logger.Fatal(err.Error(), zap.String("op", "main"))
		}
		conf.Output.DurationUnit = config.DurationUnit(*durationUnitFlag)
	}
	unit := conf.ResolveDurationUnit()

	for _, warning := range conf.Project.ValidateConfiguration(unit) {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	result, err := projection.Compute(logger, conf.Project, unit, conf.Incremental)
	if err != nil {
		logger.Fatal("failed to compute projection",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var goalSeek []optimization.Summary
	if len(conf.GoalSeek) > 0 {
		runner, err := optimizer.NewRunner(logger, conf.Project, unit)
		if err == nil {
			goalSeek, err = runner.Run(conf.GoalSeek)
		}
		if err != nil {
			logger.Fatal("failed to run goal seek",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}
	w, err := openOutput(outputFile, outputFormat)
	if err != nil {
		logger.Fatal("failed to open output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := writeOutput(w, outputFormat, result, goalSeek); err != nil {
		_ = w.Close()
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
	if err := w.Close(); err != nil {
		logger.Fatal("failed to close output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
