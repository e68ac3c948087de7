package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/otp-signup/database"
)

// Connection owns the pgx pool and a database/sql view of it used by migrations and repositories.
type Connection struct {
	Pool *pgxpool.Pool
	DB   *sql.DB
}

func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	conn := &Connection{
		Pool: pool,
		DB:   stdlib.OpenDBFromPool(pool),
	}

	if err := database.Migrate(ctx, conn.DB); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return conn, nil
}

func (c *Connection) Close() error {
	var err error
	if c.DB != nil {
		err = c.DB.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	return err
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.DB == nil {
		return fmt.Errorf("connection is nil")
	}
	return c.DB.PingContext(ctx)
}
