// Package bootstrap wires configuration, logging and storage for the
// record tooling.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/domain/kpi"
	"github.com/stridehq/stride/pkg/domain/records"
	"github.com/stridehq/stride/pkg/storage/fitfile"
	"github.com/stridehq/stride/pkg/storage/postgres"
)

// Config holds standard configuration for the record tooling.
type Config struct {
	DatabaseURL string
	SentryDSN   string
	Environment string
	LogLevel    slog.Level
	// FitDir, when set, serves traces from a directory of FIT files
	// instead of the streams table.
	FitDir string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		Environment: env,
		LogLevel:    parseLogLevel(os.Getenv("LOG_LEVEL")),
		FitDir:      os.Getenv("FIT_DIR"),
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{
		Handler:   h.Handler.WithGroup(name),
		component: h.component,
	}
}

// WithAttrs implements slog.Handler
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newComp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			newComp = a.Value.String()
		}
	}
	return &ComponentHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		component: newComp,
	}
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component

	// Check if component is overridden in the record attributes
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false // stop
		}
		return true
	})

	if comp != "" {
		newMsg := fmt.Sprintf("[%s] %s", comp, r.Message)
		newRecord := slog.NewRecord(r.Time, r.Level, newMsg, r.PC)
		r.Attrs(func(a slog.Attr) bool {
			newRecord.AddAttrs(a)
			return true
		})
		r = newRecord
	}

	return h.Handler.Handle(ctx, r)
}

// NewLogger creates a configured logger instance.
func NewLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(&ComponentHandler{Handler: handler})
}

// Service holds initialized dependencies.
type Service struct {
	DB         *sqlx.DB
	Activities shared.ActivityStore
	Streams    shared.StreamStore
	Records    shared.RecordStore
	Sync       *records.Synchronizer
	KPIs       *kpi.Service
	Logger     *slog.Logger
	Config     *Config
}

// NewService initializes all standard dependencies.
func NewService(ctx context.Context, cfg *Config, logger *slog.Logger) (*Service, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Database init failed", "error", err)
		return nil, fmt.Errorf("database init: %w", err)
	}

	activities := postgres.NewActivityStore(db)
	recordStore := postgres.NewRecordStore(db)

	var streams shared.StreamStore
	if cfg.FitDir != "" {
		streams = fitfile.NewStreamStore(cfg.FitDir)
		logger.Info("Streams: FIT directory", "dir", cfg.FitDir)
	} else {
		streams = postgres.NewStreamStore(db)
	}

	return &Service{
		DB:         db,
		Activities: activities,
		Streams:    streams,
		Records:    recordStore,
		Sync:       records.NewSynchronizer(activities, streams, recordStore, logger, records.AggregatorOptions{}),
		KPIs:       kpi.NewService(activities),
		Logger:     logger,
		Config:     cfg,
	}, nil
}

// Close releases held resources.
func (s *Service) Close() error {
	return s.DB.Close()
}
