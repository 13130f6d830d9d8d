package server

import (
	"net/http"

	"github.com/omindustries/backoffice/internal/repository"
)

// handleDashboard serves the admin landing numbers: feedback per moderation
// status, total contacts, orders per lifecycle status.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feedbackCounts, err := s.feedback.Counts(ctx)
	if err != nil {
		respondServiceError(w, "dashboard", err)
		return
	}
	contactCount, err := s.contacts.Count(ctx)
	if err != nil {
		respondServiceError(w, "dashboard", err)
		return
	}
	orderCounts, err := s.orders.Counts(ctx)
	if err != nil {
		respondServiceError(w, "dashboard", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": countMap(feedbackCounts),
		"contacts": contactCount,
		"orders":   countMap(orderCounts),
	})
}

func countMap(counts []*repository.StatusCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Status] = c.Count
	}
	return m
}
