package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// ServiceName tags records sent to OTel and Graylog.
const ServiceName = "czml-export"

var (
	osStdout io.Writer = os.Stdout
	osPipe             = os.Pipe
)

// SlogManager manages slog-based logging with optional OTel and Graylog output.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider

	// GELF writer, set by SetupGraylog
	graylog io.Writer

	// name of the document being built, attached to every record
	document atomic.Pointer[string]
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// SetupGraylog connects a GELF UDP writer. Records are shipped as JSON once
// Setup is called again.
func (m *SlogManager) SetupGraylog(address string) error {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return fmt.Errorf("failed to create GELF writer for %s: %w", address, err)
	}
	m.graylog = w
	return nil
}

// Setup initializes the logging system.
// Text records go to file when given, otherwise to stdout. If provider is nil,
// OTel logging is disabled.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider) {
	lvl := parseLevel(level)
	m.logProvider = provider
	opts := handlerOptions(lvl)

	var handlers []slog.Handler

	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, opts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(osStdout, opts))
	}

	if m.graylog != nil {
		handlers = append(handlers, slog.NewJSONHandler(m.graylog, opts))
	}

	if provider != nil {
		handlers = append(handlers, otelslog.NewHandler(ServiceName, otelslog.WithLoggerProvider(provider)))
	}

	handler := NewContextHandler(NewMultiHandler(handlers...), m.contextAttrs)

	m.logger = slog.New(handler)
	m.logger.Debug("Logging initialized", "level", level)
}

func (m *SlogManager) contextAttrs() []slog.Attr {
	if name := m.document.Load(); name != nil && *name != "" {
		return []slog.Attr{slog.String("document", *name)}
	}
	return nil
}

// SetDocument attaches name to every following record. An empty name clears it.
func (m *SlogManager) SetDocument(name string) {
	m.document.Store(&name)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// Close releases the Graylog connection, if any.
func (m *SlogManager) Close() error {
	if c, ok := m.graylog.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriteLog writes a log entry with the specified function name, data, and level.
func (m *SlogManager) WriteLog(functionName, data, level string) {
	if m.logger == nil {
		return
	}

	m.logger.Log(context.Background(), parseLevel(level), data, "function", functionName)
}
