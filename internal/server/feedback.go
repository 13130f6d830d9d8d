package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/omindustries/backoffice/internal/metrics"
)

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Rating  int    `json:"rating"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fb, err := s.feedback.Submit(r.Context(), req.Name, req.Rating, req.Message)
	if err != nil {
		respondServiceError(w, "submit_feedback", err)
		return
	}

	metrics.FeedbackSubmittedTotal.Inc()
	respondJSON(w, http.StatusCreated, fb)
}

func (s *Server) handleListPublicFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := s.feedback.ListPublic(r.Context())
	if err != nil {
		respondServiceError(w, "list_public_feedback", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleListAllFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := s.feedback.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, "list_all_feedback", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleModerateFeedback(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid feedback id")
		return
	}

	if err := s.feedback.Transition(r.Context(), id, vars["action"]); err != nil {
		respondServiceError(w, "moderate_feedback", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Feedback updated"})
}
