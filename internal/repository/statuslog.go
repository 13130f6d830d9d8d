package repository

import (
	"context"
	"fmt"

	"github.com/omindustries/backoffice/internal/db"
)

// StatusLogRepo is append-only: entries are never updated, and deletion only
// happens when the owning order is removed.
type StatusLogRepo struct {
	db db.DB
}

func NewStatusLogRepo(database db.DB) *StatusLogRepo {
	return &StatusLogRepo{db: database}
}

func (r *StatusLogRepo) CreateTx(ctx context.Context, tx db.Tx, entry *StatusLogEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO order_status_log (order_id, status, changed_at)
        VALUES (?, ?, ?)
    `, entry.OrderID, entry.Status, entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert status log entry: %w", err)
	}
	return nil
}

// GetByOrderID returns the history newest-first. Consecutive transitions can
// share a timestamp, so the id breaks ties in insertion order.
func (r *StatusLogRepo) GetByOrderID(ctx context.Context, orderID int64) ([]*StatusLogEntry, error) {
	var entries []*StatusLogEntry
	err := r.db.Select(ctx, &entries, `
        SELECT id, order_id, status, changed_at
        FROM order_status_log
        WHERE order_id = ?
        ORDER BY changed_at DESC, id DESC
    `, orderID)
	return entries, err
}

func (r *StatusLogRepo) DeleteByOrderIDTx(ctx context.Context, tx db.Tx, orderID int64) error {
	_, err := tx.Exec(ctx, "DELETE FROM order_status_log WHERE order_id = ?", orderID)
	if err != nil {
		return fmt.Errorf("delete status log entries: %w", err)
	}
	return nil
}
