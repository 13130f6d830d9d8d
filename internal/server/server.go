package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/omindustries/backoffice/internal/repository"
	"github.com/omindustries/backoffice/internal/service"
)

// OrderManager is the order lifecycle surface the handlers depend on.
type OrderManager interface {
	Create(ctx context.Context, in service.CreateOrder) (*repository.Order, error)
	Get(ctx context.Context, id int64) (*service.OrderWithHistory, error)
	List(ctx context.Context) ([]*repository.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Invoice(ctx context.Context, id int64) ([]byte, error)
	Counts(ctx context.Context) ([]*repository.StatusCount, error)
}

type FeedbackQueue interface {
	Submit(ctx context.Context, name string, rating int, message string) (*repository.Feedback, error)
	ListPublic(ctx context.Context) ([]*repository.Feedback, error)
	ListAll(ctx context.Context) ([]*repository.Feedback, error)
	Transition(ctx context.Context, id int64, action string) error
	Counts(ctx context.Context) ([]*repository.StatusCount, error)
}

type ContactIntake interface {
	Submit(ctx context.Context, name, email, phone, message string) (*repository.Contact, error)
	List(ctx context.Context) ([]*repository.Contact, error)
	Count(ctx context.Context) (int, error)
}

// AdminCredentials is the single shared username/password pair guarding the
// admin API. PasswordHash, when set, is a bcrypt hash and wins over the
// plaintext password.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

type Server struct {
	orders   OrderManager
	feedback FeedbackQueue
	contacts ContactIntake
	admin    AdminCredentials

	server *http.Server
}

func New(orders OrderManager, feedback FeedbackQueue, contacts ContactIntake, admin AdminCredentials) *Server {
	return &Server{
		orders:   orders,
		feedback: feedback,
		contacts: contacts,
		admin:    admin,
	}
}

// Run blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Run(port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	zap.L().Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/feedback", s.handleSubmitFeedback).Methods(http.MethodPost)
	api.HandleFunc("/feedback", s.handleListPublicFeedback).Methods(http.MethodGet)
	api.HandleFunc("/contact", s.handleSubmitContact).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin/api").Subrouter()
	admin.Use(s.basicAuthMiddleware)
	admin.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/feedback", s.handleListAllFeedback).Methods(http.MethodGet)
	admin.HandleFunc("/feedback/{id:[0-9]+}/{action}", s.handleModerateFeedback).Methods(http.MethodPost)
	admin.HandleFunc("/contacts", s.handleListContacts).Methods(http.MethodGet)
	admin.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	admin.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id:[0-9]+}", s.handleGetOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id:[0-9]+}", s.handleDeleteOrder).Methods(http.MethodDelete)
	admin.HandleFunc("/orders/{id:[0-9]+}/status", s.handleUpdateOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/orders/{id:[0-9]+}/invoice", s.handleOrderInvoice).Methods(http.MethodGet)

	return r
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Error("response encode failed", zap.Error(err))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
