package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omindustries/backoffice/internal/mail"
	"github.com/omindustries/backoffice/internal/repository"
	"github.com/omindustries/backoffice/internal/service"
	"github.com/omindustries/backoffice/internal/service/mocks"
)

func TestContactSubmitStoresAndNotifies(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewContactRepo(newTestDB(t))
	notifier := mocks.NewMockNotifier(ctrl)
	svc := service.NewContactService(repo, notifier)

	notifier.EXPECT().
		Enqueue(gomock.Any()).
		DoAndReturn(func(n mail.Notification) bool {
			assert.Contains(t, n.Subject, "Ravi Patel")
			assert.Contains(t, n.Body, "ravi@example.com")
			return true
		})

	contact, err := svc.Submit(ctx, "Ravi Patel", "ravi@example.com", "+91 98765 43210", "Please call back")
	require.NoError(t, err)
	assert.NotZero(t, contact.ID)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestContactSubmitSucceedsWhenNotificationRejected(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewContactRepo(newTestDB(t))
	notifier := mocks.NewMockNotifier(ctrl)
	svc := service.NewContactService(repo, notifier)

	// Dispatch buffer full or notifications disabled: the submitter still
	// gets success, the row is still there.
	notifier.EXPECT().Enqueue(gomock.Any()).Return(false)

	_, err := svc.Submit(ctx, "ann", "ann@example.com", "", "hello")
	require.NoError(t, err)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestContactSubmitValidationWritesNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewContactRepo(newTestDB(t))
	notifier := mocks.NewMockNotifier(ctrl)
	svc := service.NewContactService(repo, notifier)

	tests := []struct {
		name string
		args [4]string
	}{
		{"blank name", [4]string{"", "ann@example.com", "", "hello"}},
		{"blank email", [4]string{"ann", "", "", "hello"}},
		{"blank message", [4]string{"ann", "ann@example.com", "", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			var vErr *service.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "validation failures must not persist rows")
}

func TestContactListNewestFirst(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewContactRepo(newTestDB(t))
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Enqueue(gomock.Any()).Return(true).Times(2)
	svc := service.NewContactService(repo, notifier)

	first, err := svc.Submit(ctx, "ann", "ann@example.com", "", "first")
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "bob", "bob@example.com", "", "second")
	require.NoError(t, err)

	contacts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, second.ID, contacts[0].ID)
	assert.Equal(t, first.ID, contacts[1].ID)
}
