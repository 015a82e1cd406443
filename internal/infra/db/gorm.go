package db

import (
	"fmt"
	"time"

	"velour/internal/config"
	"velour/internal/domain/model"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// DSNはpgxで解釈し、pgxのdatabase/sqlドライバをGORMに渡す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	connCfg, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "parse dsn")
	}
	connCfg.ConnectTimeout = 5 * time.Second

	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "open gorm")
	}
	return gdb, nil
}

// Migrate はこのサービスが使うテーブルを作る。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.KVRecord{},
		&model.AuditLog{},
	); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

// DATABASE_URL があれば最優先で使う
func DSN(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
}
