package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

const evictInterval = time.Minute

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	store   *session.Store
	cookies *config.Cookies
	ws      *config.WebSocket
}

func New(logger *slog.Logger) *App {
	return &App{
		logger: logger,
		router: http.NewServeMux(),
	}
}

func (a *App) setup() error {
	presets, err := config.Presets()
	if err != nil {
		return err
	}

	idleTTL, err := config.SessionIdleTTL()
	if err != nil {
		return err
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}

	mines.Log = a.logger.With(slog.String("module", "mines"))
	a.store = session.NewStore(a.logger, presets, idleTTL)
	a.cookies = cookies
	a.ws = ws
	a.loadRoutes()
	return nil
}

// Start serves until ctx is done, then shuts the server down and drops every
// session.
func (a *App) Start(ctx context.Context) error {
	if err := a.setup(); err != nil {
		return err
	}

	addr := config.Port()
	server := &http.Server{
		Addr:         addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler: middleware.Wrap(
			a.router,
			middleware.Logging(a.logger),
			middleware.Cors(config.CorsOrigins()),
			middleware.Session(a.logger, a.cookies),
		),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.store.Run(gCtx, evictInterval)
	})

	return g.Wait()
}
