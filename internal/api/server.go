package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"conan-bridge/internal/app"
)

const shutdownGrace = 10 * time.Second

// Server is the HTTP face of the service. It holds no request state;
// everything flows through the immutable app.Service.
type Server struct {
	service app.Service
	addr    string
}

func NewServer(service app.Service, addr string) *Server {
	return &Server{service: service, addr: addr}
}

// Router builds the route tree with request logging attached.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(hlog.NewHandler(log.Logger))
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	}))

	router.Get("/", s.handleRoot)
	router.Get("/health", s.handleHealth)

	router.Route("/packages", func(r chi.Router) {
		r.Get("/", s.handlePackageStatus)
		r.Post("/install", s.handleInstall)
		r.Post("/install/package", s.handleInstallPackage)
		r.Post("/upload/local", s.handleUploadLocal)
	})

	router.Route("/profiles", func(r chi.Router) {
		r.Get("/", s.handleListProfiles)
		r.Post("/create", s.handleCreateProfile)
	})

	router.Route("/remotes", func(r chi.Router) {
		r.Get("/", s.handleListRemotes)
		r.Post("/add", s.handleAddRemote)
		r.Post("/login", s.handleLoginRemote)
		r.Post("/remove", s.handleRemoveRemote)
	})

	router.Get("/settings", s.handleSettings)
	router.Get("/config/home", s.handleHome)

	router.Route("/project", func(r chi.Router) {
		r.Post("/create", s.handleCreateProject)
		r.Post("/new", s.handleScaffoldProject)
	})

	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http server listening")
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
