package server

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tickdeck/go-tickdeck/internal/session"
	"github.com/tickdeck/go-tickdeck/pkg/http"
	"github.com/tickdeck/go-tickdeck/pkg/middleware"
	"github.com/unrolled/render"
)

type Server struct {
	cfg      Config
	log      zerolog.Logger
	network  *session.SessionNetwork
	server   *http.Server
	errCh    chan error
	shutdown sync.Once
}

func NewServer(cfg Config, log zerolog.Logger) (*Server, error) {
	a := make([]session.EventAdapter, 0)
	for _, name := range cfg.Session.Adapters {
		if builder, ok := adapterBuilders[name]; ok {
			a = append(a, builder(log))
		}
	}
	network := session.NewSessionNetwork(session.SessionNetworkOptions{
		Adapters:      a,
		MaxSessions:   cfg.Session.MaxSessions,
		SessionExpiry: cfg.Session.SessionExpiry,
		MaxTimers:     cfg.Session.MaxTimers,
		TickInterval:  cfg.Session.TickInterval,
		ChimeInterval: cfg.Session.ChimeInterval,
	})
	handler := NewHandler(log, render.New(), network)
	r := NewRouter(cfg.Router)
	r.Use(middleware.RequestLogger(log))
	r = AddRoutes(r, handler)
	return &Server{
		cfg:     cfg,
		log:     log,
		network: network,
		server:  http.NewServer(cfg.Server, r, log),
		errCh:   make(chan error),
	}, nil
}

func (s *Server) Start() {
	go s.server.Start(s.errCh)
	for err := range s.errCh {
		if err != nil {
			s.log.Error().Caller().Err(err).Msg("fatal error")
			s.Shutdown(true)
		}
	}
}

func (s *Server) Shutdown(errored bool) {
	s.shutdown.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("attempting graceful shutdown")
		graceful := make(chan bool)
		go func(graceful <-chan bool) {
			for {
				select {
				case <-ctx.Done():
					s.log.Panic().Msg("timeout so shutdown ungracefully")
				case <-graceful:
					return
				}
			}
		}(graceful)
		if err := s.network.Close(); err != nil {
			s.log.Error().Caller().Err(err).Msg("failed to close sessions gracefully")
		}
		if err := s.server.Shutdown(ctx); err != nil {
			s.log.Error().Caller().Err(err).Msg("failed to shutdown server gracefully")
		}
		close(s.errCh)
		close(graceful)
		if errored {
			s.log.Info().Msg("shutdown gracefully but error detected")
			os.Exit(1)
		}
	})
}
