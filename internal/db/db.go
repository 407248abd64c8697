package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Driver names accepted by Connect.
const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// Connect opens and pings a database. Postgres URLs go through pgx; mysql
// DSNs are parsed so that DATETIME columns scan into time.Time.
func Connect(ctx context.Context, driver, dbURL string) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	var (
		database *sql.DB
		err      error
	)
	switch driver {
	case DriverPostgres:
		database, err = sql.Open(DriverPostgres, dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	case DriverMySQL:
		cfg, parseErr := mysql.ParseDSN(dbURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", parseErr)
		}
		cfg.ParseTime = true
		connector, connErr := mysql.NewConnector(cfg)
		if connErr != nil {
			return nil, fmt.Errorf("failed to open database: %w", connErr)
		}
		database = sql.OpenDB(connector)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
