package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in db.statement
	SlowQueryThresh time.Duration // default 200ms
	DBName          string
}

// DefaultDBTracingConfig returns a disabled config that hides query variables
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "futurevend",
	}
}

// DBTracingPlugin installs otelgorm plus callbacks that tag slow and failed statements
// on the active span.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewDBTracingPlugin creates a new database tracing plugin
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger, now: time.Now}
}

type queryStartKey struct{}

type callbackStage struct {
	name     string
	register func(before bool, name string, fn func(*gorm.DB)) error
}

// Register installs the plugin on db. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	stages := []callbackStage{
		{"create", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Create().Before("gorm:create").Register(name, fn)
			}
			return cb.Create().After("gorm:create").Register(name, fn)
		}},
		{"query", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Query().Before("gorm:query").Register(name, fn)
			}
			return cb.Query().After("gorm:query").Register(name, fn)
		}},
		{"update", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Update().Before("gorm:update").Register(name, fn)
			}
			return cb.Update().After("gorm:update").Register(name, fn)
		}},
		{"delete", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Delete().Before("gorm:delete").Register(name, fn)
			}
			return cb.Delete().After("gorm:delete").Register(name, fn)
		}},
		{"row", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Row().Before("gorm:row").Register(name, fn)
			}
			return cb.Row().After("gorm:row").Register(name, fn)
		}},
		{"raw", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Raw().Before("gorm:raw").Register(name, fn)
			}
			return cb.Raw().After("gorm:raw").Register(name, fn)
		}},
	}

	for _, s := range stages {
		if err := s.register(true, "fv_timing:before_"+s.name, p.before); err != nil {
			return err
		}
		if err := s.register(false, "fv_timing:after_"+s.name, p.after); err != nil {
			return err
		}
	}
	return nil
}

func (p *DBTracingPlugin) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, p.now())
	}
}

func (p *DBTracingPlugin) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := p.now().Sub(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
