package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		backend Backend
		want    string
	}{
		{
			name:    "postgres numbers each placeholder",
			query:   "SELECT * FROM orders WHERE id = ? AND status = ?",
			backend: Postgres,
			want:    "SELECT * FROM orders WHERE id = $1 AND status = $2",
		},
		{
			name:    "postgres without placeholders untouched",
			query:   "SELECT COUNT(*) FROM contacts",
			backend: Postgres,
			want:    "SELECT COUNT(*) FROM contacts",
		},
		{
			name:    "sqlite passes through",
			query:   "SELECT * FROM orders WHERE id = ? AND status = ?",
			backend: SQLite,
			want:    "SELECT * FROM orders WHERE id = ? AND status = ?",
		},
		{
			name:    "ten placeholders get two-digit numbers",
			query:   "INSERT INTO t VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			backend: Postgres,
			want:    "INSERT INTO t VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewritePlaceholders(tt.query, tt.backend))
		})
	}
}
