package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sandevgo/bioprep/pkg/log"
)

// Server runs the HTTP API as a srv.Service.
type Server struct {
	addr    string
	handler *Handler
	srv     *http.Server
}

func NewServer(addr string, h *Handler) *Server {
	return &Server{addr: addr, handler: h}
}

func (s *Server) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			l := log.FromCtx(ctx).With().Str("request_id", middleware.GetReqID(req.Context())).Logger()
			next.ServeHTTP(w, req.WithContext(l.WithContext(req.Context())))
		})
	})
	s.handler.RegisterRoutes(r)
	return r
}

func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("http api listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
