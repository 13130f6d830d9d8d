package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"
)

// Backend identifies the concrete storage engine behind a Database.
type Backend string

const (
	SQLite   Backend = "sqlite"
	Postgres Backend = "postgres"
)

const connectTimeout = 10 * time.Second

// Config selects the backend. An empty DatabaseURL means the embedded SQLite
// file at SQLitePath; otherwise DatabaseURL is a postgres:// connection URL.
type Config struct {
	DatabaseURL string
	SQLitePath  string
}

// Open connects to the configured backend and verifies the connection within
// a bounded timeout. A failure here is meant to be fatal for the process; no
// retries are attempted.
func Open(ctx context.Context, cfg Config) (*Database, error) {
	var (
		driver  string
		dsn     string
		backend Backend
	)

	if cfg.DatabaseURL == "" {
		driver = "sqlite"
		backend = SQLite
		dsn = cfg.SQLitePath
		if dsn == "" {
			dsn = "database.db"
		}
	} else {
		driver = "pgx"
		backend = Postgres
		var err error
		dsn, err = postgresDSN(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", backend, err)
	}

	if backend == SQLite {
		// SQLite is a single-writer engine; a second connection in the pool
		// only buys lock contention.
		sqlDB.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%s backend unreachable: %w", backend, err)
	}

	return NewDatabase(sqlDB, backend), nil
}

// postgresDSN decodes a postgres:// URL into the keyword form the driver
// accepts. The password comes back percent-decoded, the port defaults to
// 5432 and sslmode is carried over from the query string.
func postgresDSN(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("missing host")
	}

	port := u.Port()
	if port == "" {
		port = "5432"
	}

	user := u.User.Username()
	if user == "" {
		user = "postgres"
	}
	// url.User.Password already percent-decodes.
	password, _ := u.User.Password()

	dbname := strings.TrimPrefix(u.Path, "/")
	if dbname == "" {
		dbname = "postgres"
	}

	sslmode := u.Query().Get("sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}

	parts := []string{
		"host=" + host,
		"port=" + port,
		"user=" + user,
	}
	if password != "" {
		parts = append(parts, "password="+password)
	}
	parts = append(parts,
		"dbname="+dbname,
		"sslmode="+sslmode,
		fmt.Sprintf("connect_timeout=%d", int(connectTimeout.Seconds())),
	)

	return strings.Join(parts, " "), nil
}
