package db

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// tableSpec describes one table: its full create statement per backend and
// the columns that must exist even on databases created by older versions.
// Migration is strictly additive; nothing is ever dropped or renamed.
type tableSpec struct {
	name    string
	create  map[Backend]string
	columns []columnSpec
}

// columnSpec is one additive column. ddl is the fragment after
// "ALTER TABLE <t> ADD COLUMN"; backfill optionally rewrites legacy rows once
// the column exists.
type columnSpec struct {
	name     string
	ddl      map[Backend]string
	backfill string
}

var schema = []tableSpec{
	{
		name: "feedback",
		create: map[Backend]string{
			SQLite: `CREATE TABLE IF NOT EXISTS feedback (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				rating INTEGER NOT NULL DEFAULT 5,
				message TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				date TIMESTAMP
			)`,
			Postgres: `CREATE TABLE IF NOT EXISTS feedback (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				rating INTEGER NOT NULL DEFAULT 5,
				message TEXT NOT NULL,
				status VARCHAR(50) NOT NULL DEFAULT 'pending',
				date TIMESTAMP
			)`,
		},
		columns: []columnSpec{
			{
				name: "rating",
				ddl: map[Backend]string{
					SQLite:   "rating INTEGER DEFAULT 5",
					Postgres: "rating INTEGER DEFAULT 5",
				},
			},
			{
				// Added without a default so the backfill below actually
				// runs: rows that predate moderation were already public.
				name: "status",
				ddl: map[Backend]string{
					SQLite:   "status TEXT",
					Postgres: "status VARCHAR(50)",
				},
				backfill: "UPDATE feedback SET status = 'approved' WHERE status IS NULL",
			},
			{
				name: "date",
				ddl: map[Backend]string{
					SQLite:   "date TIMESTAMP",
					Postgres: "date TIMESTAMP",
				},
			},
		},
	},
	{
		name: "contacts",
		create: map[Backend]string{
			SQLite: `CREATE TABLE IF NOT EXISTS contacts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				email TEXT,
				phone TEXT,
				message TEXT,
				date TIMESTAMP
			)`,
			Postgres: `CREATE TABLE IF NOT EXISTS contacts (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				email VARCHAR(255),
				phone VARCHAR(50),
				message TEXT,
				date TIMESTAMP
			)`,
		},
		columns: []columnSpec{
			{
				name: "date",
				ddl: map[Backend]string{
					SQLite:   "date TIMESTAMP",
					Postgres: "date TIMESTAMP",
				},
			},
		},
	},
	{
		name: "orders",
		create: map[Backend]string{
			SQLite: `CREATE TABLE IF NOT EXISTS orders (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				address TEXT NOT NULL,
				phone TEXT,
				email TEXT NOT NULL,
				price NUMERIC NOT NULL,
				quantity INTEGER NOT NULL,
				order_date TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'process',
				created_at TIMESTAMP
			)`,
			Postgres: `CREATE TABLE IF NOT EXISTS orders (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				address TEXT NOT NULL,
				phone VARCHAR(50),
				email VARCHAR(255) NOT NULL,
				price NUMERIC(10,2) NOT NULL,
				quantity INTEGER NOT NULL,
				order_date VARCHAR(10) NOT NULL,
				status VARCHAR(50) NOT NULL DEFAULT 'process',
				created_at TIMESTAMP
			)`,
		},
		columns: []columnSpec{
			{
				name: "status",
				ddl: map[Backend]string{
					SQLite:   "status TEXT",
					Postgres: "status VARCHAR(50)",
				},
				backfill: "UPDATE orders SET status = 'process' WHERE status IS NULL",
			},
			{
				name: "created_at",
				ddl: map[Backend]string{
					SQLite:   "created_at TIMESTAMP",
					Postgres: "created_at TIMESTAMP",
				},
			},
		},
	},
	{
		name: "order_status_log",
		create: map[Backend]string{
			SQLite: `CREATE TABLE IF NOT EXISTS order_status_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				order_id INTEGER NOT NULL REFERENCES orders(id),
				status TEXT NOT NULL,
				changed_at TIMESTAMP
			)`,
			Postgres: `CREATE TABLE IF NOT EXISTS order_status_log (
				id SERIAL PRIMARY KEY,
				order_id INTEGER NOT NULL REFERENCES orders(id),
				status VARCHAR(50) NOT NULL,
				changed_at TIMESTAMP
			)`,
		},
	},
}

// Migrate ensures every table and column the service depends on exists,
// applying additive changes only. It is idempotent and safe to run on every
// start. A failure on one table is logged and does not stop the others: the
// tables are independent and a partially migrated database is still more
// useful than a dead process.
func Migrate(ctx context.Context, d *Database) {
	for _, table := range schema {
		if err := ensureTable(ctx, d, table); err != nil {
			zap.L().Error("schema migration failed",
				zap.String("table", table.name),
				zap.String("backend", string(d.Backend())),
				zap.Error(err),
			)
			continue
		}
		zap.L().Debug("schema ensured", zap.String("table", table.name))
	}
}

func ensureTable(ctx context.Context, d *Database, table tableSpec) error {
	if _, err := d.Exec(ctx, table.create[d.Backend()]); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	if len(table.columns) == 0 {
		return nil
	}

	existing, err := tableColumns(ctx, d, table.name)
	if err != nil {
		return fmt.Errorf("inspect columns: %w", err)
	}

	for _, col := range table.columns {
		if _, ok := existing[col.name]; ok {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table.name, col.ddl[d.Backend()])
		if _, err := d.Exec(ctx, stmt); err != nil {
			// A concurrent start may have added the column between the
			// inspection and the ALTER; that is success, not failure.
			if columnExists(err) {
				continue
			}
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
		zap.L().Info("added missing column",
			zap.String("table", table.name),
			zap.String("column", col.name),
		)
		if col.backfill != "" {
			if _, err := d.Exec(ctx, col.backfill); err != nil {
				return fmt.Errorf("backfill %s.%s: %w", table.name, col.name, err)
			}
		}
	}

	return nil
}

// tableColumns returns the set of column names currently present.
func tableColumns(ctx context.Context, d *Database, table string) (map[string]struct{}, error) {
	var names []string

	switch d.Backend() {
	case Postgres:
		err := d.Select(ctx, &names,
			"SELECT column_name FROM information_schema.columns WHERE table_name = ?", table)
		if err != nil {
			return nil, err
		}
	default:
		var info []struct {
			Name string `db:"name"`
		}
		// PRAGMA does not take bound parameters; table names come from the
		// static schema above, never from input.
		err := d.Select(ctx, &info, fmt.Sprintf("SELECT name FROM pragma_table_info('%s')", table))
		if err != nil {
			return nil, err
		}
		for _, c := range info {
			names = append(names, c.Name)
		}
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set, nil
}

func columnExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}
