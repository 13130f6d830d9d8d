package repository

import (
	"errors"
	"time"
)

// ErrObjectNotFound is returned whenever a referenced row does not exist.
var ErrObjectNotFound = errors.New("not found")

// Feedback moderation statuses.
const (
	FeedbackPending  = "pending"
	FeedbackApproved = "approved"
	FeedbackRejected = "rejected"
)

type Feedback struct {
	ID      int64     `db:"id" json:"id"`
	Name    string    `db:"name" json:"name"`
	Rating  int       `db:"rating" json:"rating"`
	Message string    `db:"message" json:"message"`
	Status  string    `db:"status" json:"status"`
	Date    time.Time `db:"date" json:"date"`
}

type Contact struct {
	ID      int64     `db:"id" json:"id"`
	Name    string    `db:"name" json:"name"`
	Email   string    `db:"email" json:"email"`
	Phone   string    `db:"phone" json:"phone,omitempty"`
	Message string    `db:"message" json:"message"`
	Date    time.Time `db:"date" json:"date"`
}

type Order struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Email     string    `db:"email" json:"email"`
	Price     float64   `db:"price" json:"price"`
	Quantity  int       `db:"quantity" json:"quantity"`
	OrderDate string    `db:"order_date" json:"order_date"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Total is derived, never stored.
func (o Order) Total() float64 {
	return o.Price * float64(o.Quantity)
}

// StatusLogEntry is one append-only row of an order's lifecycle history.
type StatusLogEntry struct {
	ID        int64     `db:"id" json:"id"`
	OrderID   int64     `db:"order_id" json:"order_id"`
	Status    string    `db:"status" json:"status"`
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
}

// StatusCount is one row of a GROUP BY status aggregate.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"n" json:"count"`
}
