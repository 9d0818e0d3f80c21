package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/venta/backend/internal/infrastructure/config"
)

// Database holds the GORM handle shared by the repositories
type Database struct {
	DB *gorm.DB
}

// Plugin hooks into a freshly opened connection, e.g. query tracing
type Plugin interface {
	RegisterOtelGorm(db *gorm.DB) error
}

// Option configures Open
type Option func(*options)

type options struct {
	gormLogger gormlogger.Interface
	plugins    []Plugin
}

// WithGormLogger routes GORM's statement log through l
func WithGormLogger(l gormlogger.Interface) Option {
	return func(o *options) { o.gormLogger = l }
}

// WithPlugin registers p on the connection after it opens
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		if p != nil {
			o.plugins = append(o.plugins, p)
		}
	}
}

// Open connects to PostgreSQL and verifies the connection with a ping
func Open(ctx context.Context, cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	return OpenDialector(ctx, postgres.Open(cfg.DSN()), cfg, opts...)
}

// OpenDialector is Open for an arbitrary GORM dialector
func OpenDialector(ctx context.Context, dialector gorm.Dialector, cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := options{gormLogger: gormlogger.Default.LogMode(gormlogger.Silent)}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 o.gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, p := range o.plugins {
		if err := p.RegisterOtelGorm(db); err != nil {
			return nil, fmt.Errorf("failed to register database plugin: %w", err)
		}
	}

	database := &Database{DB: db}
	if err := database.configurePool(cfg); err != nil {
		return nil, err
	}
	if err := database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

func (d *Database) configurePool(cfg *config.DatabaseConfig) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	return nil
}

// Ping checks that the database answers within ctx
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
