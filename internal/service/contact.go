//go:generate mockgen -source ./contact.go -destination=./mocks/notifier.go -package=mocks
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omindustries/backoffice/internal/mail"
	"github.com/omindustries/backoffice/internal/repository"
)

// Notifier receives the best-effort operator notification. Delivery happens
// outside the request path; the return value only says whether the
// notification was accepted for dispatch.
type Notifier interface {
	Enqueue(n mail.Notification) bool
}

// ContactService persists inquiries and notifies the operator. The submitter
// always sees success once the row is written, whatever happens to the mail.
type ContactService struct {
	repo     *repository.ContactRepo
	notifier Notifier
}

func NewContactService(repo *repository.ContactRepo, notifier Notifier) *ContactService {
	return &ContactService{repo: repo, notifier: notifier}
}

func (s *ContactService) Submit(ctx context.Context, name, email, phone, message string) (*repository.Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if err := required("name", name); err != nil {
		return nil, err
	}
	if err := required("email", email); err != nil {
		return nil, err
	}
	if err := required("message", message); err != nil {
		return nil, err
	}

	contact := &repository.Contact{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(phone),
		Message: message,
		Date:    time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, err
	}
	contact.ID = id

	s.notifier.Enqueue(mail.Notification{
		Subject: fmt.Sprintf("New contact inquiry from %s", contact.Name),
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
			contact.Name, contact.Email, contact.Phone, contact.Message),
	})

	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]*repository.Contact, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
