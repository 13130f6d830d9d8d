package repository

import (
	"context"
	"fmt"

	"github.com/omindustries/backoffice/internal/db"
)

type FeedbackRepo struct {
	db db.DB
}

func NewFeedbackRepo(database db.DB) *FeedbackRepo {
	return &FeedbackRepo{db: database}
}

func (r *FeedbackRepo) Create(ctx context.Context, fb *Feedback) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO feedback (name, rating, message, status, date)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id
    `, fb.Name, fb.Rating, fb.Message, fb.Status, fb.Date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}
	return id, nil
}

func (r *FeedbackRepo) ListByStatus(ctx context.Context, status string) ([]*Feedback, error) {
	var entries []*Feedback
	err := r.db.Select(ctx, &entries, `
        SELECT id, name, rating, message, status, date
        FROM feedback WHERE status = ? ORDER BY id DESC
    `, status)
	return entries, err
}

func (r *FeedbackRepo) ListAll(ctx context.Context) ([]*Feedback, error) {
	var entries []*Feedback
	err := r.db.Select(ctx, &entries, `
        SELECT id, name, rating, message, status, date
        FROM feedback ORDER BY id DESC
    `)
	return entries, err
}

func (r *FeedbackRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.Exec(ctx, "UPDATE feedback SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("update feedback status: %w", err)
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

func (r *FeedbackRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, "DELETE FROM feedback WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
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

func (r *FeedbackRepo) CountByStatus(ctx context.Context) ([]*StatusCount, error) {
	var counts []*StatusCount
	err := r.db.Select(ctx, &counts,
		"SELECT status, COUNT(*) AS n FROM feedback GROUP BY status")
	return counts, err
}
