// Package rest serves the interactive interface: the three analytical views
// and the user write actions, over a local HTTP API.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, log *logrus.Logger) *Server {
	handler := NewHandler(db, log)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggingMiddleware(log))
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Analytical views
	api.HandleFunc("/analytics/top-stats", handler.GetTopPlayersByStat).Methods("GET")
	api.HandleFunc("/analytics/injuries", handler.GetMostInjuredPlayers).Methods("GET")
	api.HandleFunc("/analytics/cities", handler.GetTopCities).Methods("GET")

	// Users
	api.HandleFunc("/users/register", handler.Register).Methods("POST")
	api.HandleFunc("/users/login", handler.Login).Methods("POST")
	api.HandleFunc("/users/logout", handler.Logout).Methods("POST")

	// Predictions
	api.HandleFunc("/predictions", handler.SubmitPrediction).Methods("POST")
	api.HandleFunc("/predictions", handler.GetPredictions).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
