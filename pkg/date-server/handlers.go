package dateserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	samplestore "github.com/always-cache/httpdate/pkg/sample-store"
	"github.com/always-cache/httpdate/rfc9111"

	"github.com/rs/zerolog/hlog"
)

type parseResponse struct {
	Value     string    `json:"value"`
	Format    string    `json:"format"`
	Time      time.Time `json:"time"`
	Unix      int64     `json:"unix"`
	Canonical string    `json:"canonical"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("value") {
		writeError(w, r, http.StatusBadRequest, "missing value")
		return
	}
	value := r.URL.Query().Get("value")
	t, format, ok := s.codec.Match(value)

	sample := samplestore.Sample{Value: value, SeenAt: s.now()}
	if ok {
		sample.Format = format.Name
		sample.Parsed = s.codec.Format(t)
	}
	s.record(r, sample)

	if !ok {
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: "unparseable", Value: value})
		return
	}
	writeJSON(w, r, http.StatusOK, parseResponse{
		Value:     value,
		Format:    format.Name,
		Time:      t,
		Unix:      t.Unix(),
		Canonical: sample.Parsed,
	})
}

// record saves the sample if a store is configured.
// Failures are logged only: recording must not fail the request.
func (s *Server) record(r *http.Request, sample samplestore.Sample) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(sample); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("value", sample.Value).Msg("Could not record sample")
	}
}

type formatResponse struct {
	Date string `json:"date"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	t := s.now()
	switch {
	case query.Get("unix") != "":
		seconds, err := strconv.ParseInt(query.Get("unix"), 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid unix timestamp")
			return
		}
		t = time.Unix(seconds, 0)
	case query.Get("time") != "":
		var err error
		if t, err = time.Parse(time.RFC3339, query.Get("time")); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid RFC 3339 time")
			return
		}
	}
	writeJSON(w, r, http.StatusOK, formatResponse{Date: s.codec.Format(t)})
}

type freshnessRequest struct {
	Status      int               `json:"status"`
	Headers     map[string]string `json:"headers"`
	RequestedAt *time.Time        `json:"requested_at"`
	ReceivedAt  *time.Time        `json:"received_at"`
}

type freshnessResponse struct {
	LifetimeSeconds int64  `json:"lifetime_seconds"`
	Explicit        bool   `json:"explicit"`
	AgeSeconds      int64  `json:"age_seconds"`
	Fresh           bool   `json:"fresh"`
	Expires         string `json:"expires,omitempty"`
}

func (s *Server) handleFreshness(w http.ResponseWriter, r *http.Request) {
	var req freshnessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	now := s.now()
	receivedAt := now
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}
	requestedAt := receivedAt
	if req.RequestedAt != nil {
		requestedAt = *req.RequestedAt
	}
	res := &http.Response{
		StatusCode: req.Status,
		Header:     make(http.Header),
	}
	if res.StatusCode == 0 {
		res.StatusCode = http.StatusOK
	}
	for name, value := range req.Headers {
		res.Header.Set(name, value)
	}

	lifetime, explicit := rfc9111.FreshnessLifetime(res, s.shared, receivedAt)
	age := rfc9111.CurrentAge(res, requestedAt, receivedAt, now)
	body := freshnessResponse{
		LifetimeSeconds: int64(lifetime / time.Second),
		Explicit:        explicit,
		AgeSeconds:      int64(age / time.Second),
		Fresh:           lifetime > age,
	}
	if exp := rfc9111.Expiration(res, s.shared, receivedAt); !exp.IsZero() {
		body.Expires = s.codec.Format(exp)
	}
	writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) handleRecentSamples(w http.ResponseWriter, r *http.Request) {
	s.writeSamples(w, r, s.store.Recent)
}

func (s *Server) handleUnparsedSamples(w http.ResponseWriter, r *http.Request) {
	s.writeSamples(w, r, s.store.Unparsed)
}

func (s *Server) writeSamples(w http.ResponseWriter, r *http.Request, list func(int) ([]samplestore.Sample, error)) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if limit, err = strconv.Atoi(limitStr); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	samples, err := list(limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Could not list samples")
		writeError(w, r, http.StatusInternalServerError, "could not list samples")
		return
	}
	writeJSON(w, r, http.StatusOK, samples)
}

func (s *Server) handleSampleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.Counts()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Could not count samples")
		writeError(w, r, http.StatusInternalServerError, "could not count samples")
		return
	}
	writeJSON(w, r, http.StatusOK, counts)
}
