// Package webhook serves the fulfillment handlers to a Dialogflow CX agent.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandevgo/cinebot/internal/config"
	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/service/fulfillment"
	"github.com/sandevgo/cinebot/pkg/log"
)

const maxBodySize = 1 << 20

type Server struct {
	addr      string
	rateLimit int
	handlers  map[string]fulfillment.HandlerFunc
	server    *http.Server
}

func NewServer(cfg *config.AppConfig, handlers map[string]fulfillment.HandlerFunc) *Server {
	return &Server{
		addr:      cfg.ListenAddr,
		rateLimit: cfg.RateLimitPerMinute,
		handlers:  handlers,
	}
}

// Router builds the chi mux. Exposed for tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Metrics)
	r.Use(Logging)
	r.Use(Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/webhook", func(r chi.Router) {
		r.Use(RateLimit(s.rateLimit))
		r.Post("/", s.handleTagged)
		r.Post("/{handler}", s.handleNamed)
	})
	return r
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("webhook server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	// ctx is already cancelled when services are torn down.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleNamed(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, chi.URLParam(r, "handler"), nil)
}

// handleTagged dispatches on fulfillmentInfo.tag, the usual CX setup with a
// single webhook for every page.
func (s *Server) handleTagged(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.malformed(w, r, err)
		return
	}
	s.serve(w, r, req.FulfillmentInfo.Tag, req)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, name string, req *Request) {
	handler, ok := s.handlers[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, Response{
			FulfillmentResponse: FulfillmentResponse{
				Messages: []core.Message{core.TextMsg(fmt.Sprintf("Unknown fulfillment %q.", name))},
			},
		})
		return
	}

	if req == nil {
		var err error
		if req, err = decode(r); err != nil {
			s.malformed(w, r, err)
			return
		}
	}

	ctx := r.Context()
	if req.SessionInfo == nil {
		s.malformed(w, r, errors.New("missing sessionInfo"))
		return
	}

	out := handler(ctx, req.SessionInfo.State())

	resp := Response{FulfillmentResponse: FulfillmentResponse{Messages: out.Messages}}
	if !out.Rejected {
		resp.SessionInfo = sessionInfoFrom(out.State)
	}
	writeJSON(w, out.HTTPStatus(), resp)
}

func (s *Server) malformed(w http.ResponseWriter, r *http.Request, err error) {
	log.FromCtx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("malformed webhook request")
	cerr := &core.Error{Kind: core.KindMalformedRequest, Err: err}
	writeJSON(w, http.StatusBadRequest, Response{
		FulfillmentResponse: FulfillmentResponse{
			Messages: []core.Message{core.TextMsg(fulfillment.MessageFor("", cerr, ""))},
		},
	})
}

func decode(r *http.Request) (*Request, error) {
	var req Request
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return &req, nil
}
