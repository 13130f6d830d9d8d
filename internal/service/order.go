package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omindustries/backoffice/internal/db"
	"github.com/omindustries/backoffice/internal/pdf"
	"github.com/omindustries/backoffice/internal/repository"
)

// Order lifecycle statuses. process is the initial state; complete is
// terminal by convention and cancel is reachable from anywhere. No transition
// table is enforced: the status field is deliberately free-form within this
// set, matching how the back office is actually operated.
const (
	StatusProcess  = "process"
	StatusShipped  = "shipped"
	StatusComplete = "complete"
	StatusCancel   = "cancel"
)

var orderStatuses = map[string]struct{}{
	StatusProcess:  {},
	StatusShipped:  {},
	StatusComplete: {},
	StatusCancel:   {},
}

// ValidOrderStatus reports whether s is one of the four recognized statuses.
func ValidOrderStatus(s string) bool {
	_, ok := orderStatuses[s]
	return ok
}

// CreateOrder is the admin input for a new order.
type CreateOrder struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	OrderDate string  `json:"order_date"`
	Status    string  `json:"status"`
}

// OrderWithHistory is the admin detail view: the order plus its full status
// history, newest entry first.
type OrderWithHistory struct {
	Order   *repository.Order            `json:"order"`
	History []*repository.StatusLogEntry `json:"history"`
}

// OrderService owns the order lifecycle. The status field on the orders row
// and the order_status_log table are always written inside one transaction,
// so the current status can never drift from the newest log entry.
type OrderService struct {
	db      db.DB
	orders  *repository.OrderRepo
	log     *repository.StatusLogRepo
	company pdf.CompanyInfo
}

func NewOrderService(database db.DB, orders *repository.OrderRepo, log *repository.StatusLogRepo, company pdf.CompanyInfo) *OrderService {
	return &OrderService{db: database, orders: orders, log: log, company: company}
}

// Create persists the order row and its first status log entry in a single
// transaction: there is no order without its first log entry and no log
// entry without an order.
func (s *OrderService) Create(ctx context.Context, in CreateOrder) (*repository.Order, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusProcess
	}
	if !ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := time.Now().UTC()
	order := &repository.Order{
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Price:     in.Price,
		Quantity:  in.Quantity,
		OrderDate: in.OrderDate,
		Status:    status,
		CreatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id, err := s.orders.CreateTx(ctx, tx, order)
	if err != nil {
		return nil, err
	}

	entry := &repository.StatusLogEntry{OrderID: id, Status: status, ChangedAt: now}
	if err := s.log.CreateTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order creation: %w", err)
	}

	order.ID = id
	return order, nil
}

// UpdateStatus writes the new status and appends a log entry atomically.
// Re-applying the current status is allowed and still appends.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !ValidOrderStatus(status) {
		return ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.orders.UpdateStatusTx(ctx, tx, id, status); err != nil {
		return err
	}

	entry := &repository.StatusLogEntry{OrderID: id, Status: status, ChangedAt: time.Now().UTC()}
	if err := s.log.CreateTx(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *OrderService) Get(ctx context.Context, id int64) (*OrderWithHistory, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.log.GetByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderWithHistory{Order: order, History: history}, nil
}

func (s *OrderService) List(ctx context.Context) ([]*repository.Order, error) {
	return s.orders.List(ctx)
}

// Delete removes the order together with its status history.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.log.DeleteByOrderIDTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.orders.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *OrderService) Counts(ctx context.Context) ([]*repository.StatusCount, error) {
	return s.orders.CountByStatus(ctx)
}

// Invoice regenerates the PDF from current order state on every call;
// nothing is persisted.
func (s *OrderService) Invoice(ctx context.Context, id int64) ([]byte, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return pdf.BuildInvoice(s.company, order).Render()
}

func (s *OrderService) validate(in CreateOrder) error {
	if err := required("name", strings.TrimSpace(in.Name)); err != nil {
		return err
	}
	if err := required("address", strings.TrimSpace(in.Address)); err != nil {
		return err
	}
	if err := required("email", strings.TrimSpace(in.Email)); err != nil {
		return err
	}
	if in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if in.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if _, err := time.Parse("2006-01-02", in.OrderDate); err != nil {
		return &ValidationError{Field: "order_date", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}
