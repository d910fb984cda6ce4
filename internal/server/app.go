// Package server wires the media gateway together: it constructs the
// external-collaborator clients once at startup, injects them into the
// gateway core and runs the HTTP server until shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/famvault/media-gateway/internal/logging"
	"github.com/famvault/media-gateway/internal/server/auth"
	"github.com/famvault/media-gateway/internal/server/config"
	"github.com/famvault/media-gateway/internal/server/guard"
	"github.com/famvault/media-gateway/internal/server/httpapi"
	"github.com/famvault/media-gateway/internal/server/media"
	"github.com/famvault/media-gateway/internal/server/memberships"
	"github.com/famvault/media-gateway/internal/server/presign"
	"github.com/famvault/media-gateway/internal/server/shared/db"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

// NewApp builds the full dependency graph. The identity verifier, the
// membership store and the object storage signer are constructed here once
// and passed down explicitly; request handlers hold no global state.
func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	conn, err := db.Open(context.Background(), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	verifier := auth.NewJWTVerifier([]byte(c.SecretKey))
	members := memberships.NewPostgresRepository(conn)
	authGuard := guard.New(verifier, members, c.AuthCallTimeout)
	signer := presign.New(c)

	mediaService := media.NewService(authGuard, signer, logger, c)
	httpServer := httpapi.NewServer(c.EndpointAddrHTTP, logger, mediaService)

	return &App{config: c, logger: logger, server: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting media gateway...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
