package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/OCAP2/czml/internal/config"
	"github.com/OCAP2/czml/internal/logging"
	intOtel "github.com/OCAP2/czml/internal/otel"

	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	ProgramName string = "czml_export"
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// MetricReader collects converter metrics when OTel is enabled
	MetricReader *sdkmetric.ManualReader

	// DBLogger is handed to the database and InfluxDB layers
	DBLogger zerolog.Logger

	LogFile *os.File

	SessionStartTime time.Time = time.Now()
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// setup loads configuration from configDir and builds the logging and
// telemetry globals. Returned cleanup flushes and closes them.
func setup(configDir string, stderr io.Writer) (func(), error) {
	if err := config.Load(configDir); err != nil {
		return nil, err
	}

	SlogManager = logging.NewSlogManager()

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	logPath := logging.LogFilePath(logsDir, ProgramName, SessionStartTime)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	LogFile = file

	level := config.GetString("logLevel")
	DBLogger = logging.NewZerolog(LogFile, level)

	if gl := config.GetGraylogConfig(); gl.Enabled {
		if err := SlogManager.SetupGraylog(gl.Address); err != nil {
			fmt.Fprintf(stderr, "Graylog disabled: %v\n", err)
		}
	}

	otelCfg := config.GetOTelConfig()
	var otelLogWriter io.Writer
	if otelCfg.Enabled {
		otelPath := filepath.Join(logsDir, fmt.Sprintf("%s.otel.%s.log",
			ProgramName, SessionStartTime.Format("20060102_150405")))
		if f, err := os.OpenFile(otelPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			otelLogWriter = f
		}
		MetricReader = sdkmetric.NewManualReader()
	}

	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    otelLogWriter,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
		MetricReader: MetricReader,
	})
	if err != nil {
		fmt.Fprintf(stderr, "OTel disabled: %v\n", err)
		OTelProvider, _ = intOtel.New(intOtel.Config{})
		MetricReader = nil
	}

	SlogManager.Setup(LogFile, level, OTelProvider.LoggerProvider())
	Logger = SlogManager.Logger()
	Logger.Info("Starting up...", "version", CurrentVersion, "buildDate", BuildDate, "logFile", logPath)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("OTel shutdown failed", "error", err)
		}
		if err := SlogManager.Close(); err != nil {
			fmt.Fprintf(stderr, "error closing logger: %v\n", err)
		}
		if c, ok := otelLogWriter.(io.Closer); ok {
			c.Close()
		}
		LogFile.Close()
	}, nil
}
