package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/sqlscan"

	"github.com/omindustries/backoffice/internal/db"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(database db.DB) *OrderRepo {
	return &OrderRepo{db: database}
}

// CreateTx inserts the order inside the caller's transaction and returns the
// generated id. The caller is responsible for writing the matching status log
// entry before committing.
func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *Order) (int64, error) {
	var id int64
	err := tx.ExecQueryRow(ctx, `
        INSERT INTO orders (
            name, address, phone, email, price, quantity, order_date, status, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `, order.Name, order.Address, order.Phone, order.Email, order.Price,
		order.Quantity, order.OrderDate, order.Status, order.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := r.db.Get(ctx, &order, `
        SELECT id, name, address, COALESCE(phone, '') AS phone, email, price, quantity, order_date, status, created_at
        FROM orders WHERE id = ?
    `, id)
	if err != nil {
		if sqlscan.NotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*Order, error) {
	var orders []*Order
	err := r.db.Select(ctx, &orders, `
        SELECT id, name, address, COALESCE(phone, '') AS phone, email, price, quantity, order_date, status, created_at
        FROM orders ORDER BY id DESC
    `)
	return orders, err
}

// UpdateStatusTx sets the current status field. The status log entry is
// written separately in the same transaction.
func (r *OrderRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id int64, status string) error {
	res, err := tx.Exec(ctx, "UPDATE orders SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) DeleteTx(ctx context.Context, tx db.Tx, id int64) error {
	res, err := tx.Exec(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) CountByStatus(ctx context.Context) ([]*StatusCount, error) {
	var counts []*StatusCount
	err := r.db.Select(ctx, &counts,
		"SELECT status, COUNT(*) AS n FROM orders GROUP BY status")
	return counts, err
}
