package server

import (
	"encoding/json"
	"net/http"

	"github.com/omindustries/backoffice/internal/metrics"
)

func (s *Server) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact, err := s.contacts.Submit(r.Context(), req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		respondServiceError(w, "submit_contact", err)
		return
	}

	metrics.ContactsReceivedTotal.Inc()
	// The notification is best effort and already off the request path; the
	// submitter always gets an acknowledgment once the row is stored.
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Thank you for contacting us",
		"id":      contact.ID,
	})
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.List(r.Context())
	if err != nil {
		respondServiceError(w, "list_contacts", err)
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}
