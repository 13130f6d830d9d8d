package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omindustries/backoffice/internal/db"
	"github.com/omindustries/backoffice/internal/pdf"
	"github.com/omindustries/backoffice/internal/repository"
	"github.com/omindustries/backoffice/internal/service"
)

func newTestDB(t *testing.T) *db.Database {
	t.Helper()
	database, err := db.Open(context.Background(), db.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	db.Migrate(context.Background(), database)
	return database
}

func newOrderService(t *testing.T) *service.OrderService {
	t.Helper()
	database := newTestDB(t)
	return service.NewOrderService(
		database,
		repository.NewOrderRepo(database),
		repository.NewStatusLogRepo(database),
		pdf.CompanyInfo{Name: "Om Industries India"},
	)
}

func validOrder() service.CreateOrder {
	return service.CreateOrder{
		Name:      "Ravi Patel",
		Address:   "12 Industrial Estate, Rajkot",
		Phone:     "+91 98765 43210",
		Email:     "ravi@example.com",
		Price:     1500.00,
		Quantity:  3,
		OrderDate: "2025-03-01",
	}
}

func TestOrderCreateWritesFirstLogEntry(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, service.StatusProcess, order.Status)

	detail, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.History, 1)
	assert.Equal(t, service.StatusProcess, detail.History[0].Status)
	assert.Equal(t, service.StatusProcess, detail.Order.Status)
}

func TestOrderCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	tests := []struct {
		name   string
		mutate func(*service.CreateOrder)
	}{
		{"blank name", func(o *service.CreateOrder) { o.Name = "  " }},
		{"blank address", func(o *service.CreateOrder) { o.Address = "" }},
		{"blank email", func(o *service.CreateOrder) { o.Email = "" }},
		{"negative price", func(o *service.CreateOrder) { o.Price = -1 }},
		{"zero quantity", func(o *service.CreateOrder) { o.Quantity = 0 }},
		{"bad date", func(o *service.CreateOrder) { o.OrderDate = "01/03/2025" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOrder()
			tt.mutate(&in)
			_, err := svc.Create(ctx, in)
			var vErr *service.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	t.Run("unrecognized initial status", func(t *testing.T) {
		in := validOrder()
		in.Status = "bogus"
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})
}

func TestOrderUpdateStatusAppendsEveryTime(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)

	// Re-applying the same status is allowed and still appends.
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, service.StatusShipped))
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, service.StatusShipped))

	detail, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.History, 3)
	assert.Equal(t, service.StatusShipped, detail.History[0].Status)
	assert.Equal(t, service.StatusShipped, detail.History[1].Status)
	assert.Equal(t, service.StatusShipped, detail.Order.Status)
}

func TestOrderUpdateStatusRejectsUnknownValue(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, order.ID, "bogus")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	// Neither the order nor the log moved.
	detail, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StatusProcess, detail.Order.Status)
	assert.Len(t, detail.History, 1)
}

func TestOrderUpdateStatusNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	err := svc.UpdateStatus(ctx, 9999, service.StatusShipped)
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)
}

func TestOrderGetNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	_, err := svc.Get(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)
}

func TestOrderDeleteRemovesHistory(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, service.StatusCancel))

	require.NoError(t, svc.Delete(ctx, order.ID))

	_, err = svc.Get(ctx, order.ID)
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)

	err = svc.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)
}

func TestOrderListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	first, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	second, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderInvoice(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService(t)

	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)

	data, err := svc.Invoice(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))

	_, err = svc.Invoice(ctx, order.ID+1)
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)
}
