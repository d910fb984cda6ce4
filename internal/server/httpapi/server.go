// Package httpapi binds the media gateway core to HTTP. The adapter stays
// thin: route registration, bearer-token extraction, JSON (de)serialization
// and the error-to-status mapping live here, nothing else.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/famvault/media-gateway/internal/logging"
	"github.com/famvault/media-gateway/internal/server/media"
)

type Server struct {
	address string
	media   *media.Service
	logger  logging.Logger
}

func NewServer(address string, logger logging.Logger, mediaService *media.Service) *Server {
	return &Server{
		address: address,
		media:   mediaService,
		logger:  logger.With("module", "http_server"),
	}
}

// Handler builds the full HTTP handler: routes plus the CORS layer. The
// gateway is called directly from browsers, so cross-origin requests with
// Authorization and Content-Type headers must be allowed on every route.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/media/presignUpload", s.handlePresignUpload).Methods(http.MethodPost)
	r.HandleFunc("/media/signedRead", s.handleSignedRead).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleNotFound)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return c.Handler(r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
