package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omindustries/backoffice/internal/repository"
	"github.com/omindustries/backoffice/internal/service"
)

func newFeedbackService(t *testing.T) *service.FeedbackService {
	t.Helper()
	return service.NewFeedbackService(repository.NewFeedbackRepo(newTestDB(t)))
}

func TestFeedbackSubmitClampsRating(t *testing.T) {
	ctx := context.Background()
	svc := newFeedbackService(t)

	tests := []struct {
		in   int
		want int
	}{
		{-4, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{9, 5},
	}

	for _, tt := range tests {
		fb, err := svc.Submit(ctx, "ann", tt.in, "nice work")
		require.NoError(t, err)
		assert.Equal(t, tt.want, fb.Rating, "rating %d", tt.in)
	}
}

func TestFeedbackSubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc := newFeedbackService(t)

	var vErr *service.ValidationError

	_, err := svc.Submit(ctx, "", 3, "message")
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Submit(ctx, "ann", 3, "   ")
	assert.ErrorAs(t, err, &vErr)
}

func TestFeedbackModerationVisibility(t *testing.T) {
	ctx := context.Background()
	svc := newFeedbackService(t)

	fb, err := svc.Submit(ctx, "ann", 5, "pending entry")
	require.NoError(t, err)
	assert.Equal(t, repository.FeedbackPending, fb.Status)

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public, "pending feedback must not be public")

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Transition(ctx, fb.ID, service.ActionApprove))
	public, err = svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, fb.ID, public[0].ID)

	require.NoError(t, svc.Transition(ctx, fb.ID, service.ActionReject))
	public, err = svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public, "rejected feedback must not be public")
}

func TestFeedbackDelete(t *testing.T) {
	ctx := context.Background()
	svc := newFeedbackService(t)

	fb, err := svc.Submit(ctx, "ann", 4, "to be removed")
	require.NoError(t, err)

	require.NoError(t, svc.Transition(ctx, fb.ID, service.ActionDelete))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFeedbackTransitionErrors(t *testing.T) {
	ctx := context.Background()
	svc := newFeedbackService(t)

	fb, err := svc.Submit(ctx, "ann", 4, "entry")
	require.NoError(t, err)

	err = svc.Transition(ctx, fb.ID, "publish")
	assert.ErrorIs(t, err, service.ErrInvalidAction)

	err = svc.Transition(ctx, fb.ID+100, service.ActionApprove)
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)
}

func TestFeedbackListAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newFeedbackService(t)

	first, err := svc.Submit(ctx, "ann", 4, "first")
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "bob", 5, "second")
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}
