package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bangarr/internal/config"
	"bangarr/internal/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Server struct {
	config     *config.Config
	logger     *utils.Logger
	httpServer *http.Server
	apiHandler *APIHandler
}

func NewServer(cfg *config.Config, service Service, logger *utils.Logger) *Server {
	return &Server{
		config:     cfg,
		logger:     logger,
		apiHandler: NewAPIHandler(service, logger),
	}
}

func (s *Server) Start() error {
	router := mux.NewRouter()
	router.Use(s.requestIDMiddleware)

	// The list Sonarr polls
	router.HandleFunc("/watching-list", s.apiHandler.GetWatchingList).Methods("GET")

	// Ops routes
	router.HandleFunc("/healthz", s.apiHandler.Healthz).Methods("GET")
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/status", s.apiHandler.GetSystemStatus).Methods("GET")

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler: router,
		// No write timeout: a cold cache can chain several Sonarr lookups,
		// each bounded by the client's own 60s timeout
		ReadTimeout: 15 * time.Second,
	}

	s.logger.Info("Starting server on", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestIDMiddleware tags every request with an id for log correlation.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		s.logger.Debug("Request", requestID+":", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
