package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/pos-engine/pkg/config"
	"github.com/tair/pos-engine/pkg/logger"
)

func dsn(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
}

// NewGormConnection opens the primary read-write database used by the stores
// and the sale engine
func NewGormConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to install otelgorm plugin")
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.DBName).
		Msg("Connected to PostgreSQL database")
	return db, nil
}

// ReportingDB is the read-only handle the reporting collaborators query
// through. It is a distinct type so it never stands in for the primary
// connection.
type ReportingDB struct {
	*gorm.DB
}

// Close releases the underlying pool
func (r ReportingDB) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewReportingConnection opens a read-only connection for the reporting
// collaborators. Every session defaults to read-only transactions so no
// write path is exposed through it.
func NewReportingConnection(cfg config.DatabaseConfig) (ReportingDB, error) {
	sqlDB, err := sql.Open("postgres", dsn(cfg)+" default_transaction_read_only=on")
	if err != nil {
		return ReportingDB{}, fmt.Errorf("failed to open reporting database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return ReportingDB{}, fmt.Errorf("failed to ping reporting database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		sqlDB.Close()
		return ReportingDB{}, fmt.Errorf("failed to open reporting database: %w", err)
	}

	if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.DBName + "-reporting"))); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to install otelgorm plugin on reporting connection")
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.DBName).
		Msg("Connected to reporting database (read-only)")
	return ReportingDB{DB: db}, nil
}
