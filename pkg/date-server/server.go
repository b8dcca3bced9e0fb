package dateserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/always-cache/httpdate"
	samplestore "github.com/always-cache/httpdate/pkg/sample-store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Config configures the date API server.
type Config struct {
	// Codec used for parsing and formatting. The default codec is used if nil.
	Codec *httpdate.Codec
	// Optional store for parsed values.
	Store samplestore.Store
	// Compute freshness as a shared cache (honoring s-maxage).
	Shared bool
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
	// Clock, time.Now if nil.
	Now func() time.Time
}

// Server serves the date API. Create one with CreateServer.
type Server struct {
	codec  *httpdate.Codec
	store  samplestore.Store
	shared bool
	log    zerolog.Logger
	now    func() time.Time
	router chi.Router
}

// CreateServer sets up the routes and middleware of the date API.
func CreateServer(config Config) *Server {
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = *config.Logger
	}

	s := &Server{
		codec:  config.Codec,
		store:  config.Store,
		shared: config.Shared,
		log:    logger.With().Str("component", "dateserver").Logger(),
		now:    config.Now,
	}
	if s.codec == nil {
		s.codec = httpdate.New(httpdate.Config{})
	}
	if s.now == nil {
		s.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("")
	}))
	r.Use(s.dateHeader)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/parse", s.handleParse)
		r.Get("/format", s.handleFormat)
		r.Post("/freshness", s.handleFreshness)
		r.Route("/samples", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Get("/", s.handleRecentSamples)
			r.Get("/unparsed", s.handleUnparsedSamples)
			r.Get("/counts", s.handleSampleCounts)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// dateHeader stamps every response with the Date header field.
func (s *Server) dateHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Date", s.codec.Format(s.now()))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, r, http.StatusNotFound, "sample store not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Value string `json:"value,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("Could not write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}
