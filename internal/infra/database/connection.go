// internal/infra/database/connection.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PoolOptions は database/sql のコネクションプール設定です。ゼロ値は既定値になります。
type PoolOptions struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	PingTimeout time.Duration
}

func (o PoolOptions) withDefaults() PoolOptions {
	if o.MaxOpen <= 0 {
		o.MaxOpen = 10
	}
	if o.MaxIdle <= 0 || o.MaxIdle > o.MaxOpen {
		o.MaxIdle = o.MaxOpen
	}
	if o.MaxLifetime <= 0 {
		o.MaxLifetime = 30 * time.Minute
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = 5 * time.Second
	}
	return o
}

// DB は Postgres（lib/pq）への接続です。カタログの postgres バックエンドで使います。
type DB struct {
	Client      *sql.DB
	pingTimeout time.Duration
}

// Open は DATABASE_URL で接続し、疎通確認まで行います。
func Open(ctx context.Context, dsn string, pool PoolOptions, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("database: DATABASE_URL is empty")
	}
	pool = pool.withDefaults()

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpen)
	sqlDB.SetMaxIdleConns(pool.MaxIdle)
	sqlDB.SetConnMaxLifetime(pool.MaxLifetime)

	db := &DB{Client: sqlDB, pingTimeout: pool.PingTimeout}
	if err := db.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Info("[DB] postgres ready", zap.Int("maxOpen", pool.MaxOpen))
	return db, nil
}

// Ping は pingTimeout 付きで疎通確認します。
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.Client == nil {
		return errors.New("database: not connected")
	}
	pctx, cancel := context.WithTimeout(ctx, d.pingTimeout)
	defer cancel()
	if err := d.Client.PingContext(pctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
