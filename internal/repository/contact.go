package repository

import (
	"context"
	"fmt"

	"github.com/omindustries/backoffice/internal/db"
)

// ContactRepo rows are write-once: nothing updates a contact after intake.
type ContactRepo struct {
	db db.DB
}

func NewContactRepo(database db.DB) *ContactRepo {
	return &ContactRepo{db: database}
}

func (r *ContactRepo) Create(ctx context.Context, c *Contact) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO contacts (name, email, phone, message, date)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id
    `, c.Name, c.Email, c.Phone, c.Message, c.Date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	return id, nil
}

func (r *ContactRepo) List(ctx context.Context) ([]*Contact, error) {
	var contacts []*Contact
	// email, phone and message are nullable in databases that predate this
	// service; normalize to empty strings at the query edge.
	err := r.db.Select(ctx, &contacts, `
        SELECT id, name, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone,
               COALESCE(message, '') AS message, date
        FROM contacts ORDER BY id DESC
    `)
	return contacts, err
}

func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Get(ctx, &n, "SELECT COUNT(*) FROM contacts")
	return n, err
}
