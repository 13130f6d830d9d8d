package service

import (
	"context"
	"strings"
	"time"

	"github.com/omindustries/backoffice/internal/repository"
)

// Moderation actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionDelete  = "delete"
)

// FeedbackService is the moderation queue: public submissions enter pending
// and only admin transitions make them visible.
type FeedbackService struct {
	repo *repository.FeedbackRepo
}

func NewFeedbackService(repo *repository.FeedbackRepo) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Submit stores a new entry as pending. Ratings outside [1,5] are clamped to
// the nearest bound rather than rejected.
func (s *FeedbackService) Submit(ctx context.Context, name string, rating int, message string) (*repository.Feedback, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if err := required("name", name); err != nil {
		return nil, err
	}
	if err := required("message", message); err != nil {
		return nil, err
	}

	fb := &repository.Feedback{
		Name:    name,
		Rating:  clampRating(rating),
		Message: message,
		Status:  repository.FeedbackPending,
		Date:    time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, fb)
	if err != nil {
		return nil, err
	}
	fb.ID = id
	return fb, nil
}

// ListPublic returns only approved entries, newest first.
func (s *FeedbackService) ListPublic(ctx context.Context) ([]*repository.Feedback, error) {
	return s.repo.ListByStatus(ctx, repository.FeedbackApproved)
}

// ListAll is the admin view across every moderation status.
func (s *FeedbackService) ListAll(ctx context.Context) ([]*repository.Feedback, error) {
	return s.repo.ListAll(ctx)
}

// Transition applies one moderation action. An unrecognized action is an
// error, not a silent no-op.
func (s *FeedbackService) Transition(ctx context.Context, id int64, action string) error {
	switch action {
	case ActionApprove:
		return s.repo.UpdateStatus(ctx, id, repository.FeedbackApproved)
	case ActionReject:
		return s.repo.UpdateStatus(ctx, id, repository.FeedbackRejected)
	case ActionDelete:
		return s.repo.Delete(ctx, id)
	default:
		return ErrInvalidAction
	}
}

func (s *FeedbackService) Counts(ctx context.Context) ([]*repository.StatusCount, error) {
	return s.repo.CountByStatus(ctx)
}

func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
