// Package server exposes a compiled catalog over HTTP so that request
// payloads can be tried against operation definitions during development.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/masnyjimmy/wsparam/compilation"
	"github.com/masnyjimmy/wsparam/param"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Options struct {
	DebounceTime   time.Duration
	BaseUrl        string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

func DefaultOptions() Options {
	return Options{
		DebounceTime:   DEFAULT_DEBOUNCE_TIME,
		BaseUrl:        "/",
		AllowedOrigins: []string{"*"},
		MaxBodyBytes:   1 << 20,
	}
}

// Fault is the body of an error response.
type Fault struct {
	Code   string `json:"code"`
	String string `json:"string"`
	Path   string `json:"path,omitempty"`
}

type Server struct {
	options Options
	logger  zerolog.Logger

	events   *eventHub
	metrics  *metrics
	mu       sync.RWMutex
	catalog  *compilation.Catalog
	document []byte
}

func New(catalog *compilation.Catalog, opt Options, logger zerolog.Logger) (*Server, error) {
	document, err := json.Marshal(catalog.Document())
	if err != nil {
		return nil, err
	}

	out := &Server{
		options:  opt,
		logger:   logger,
		events:   newEventHub(catalog),
		metrics:  newMetrics(),
		catalog:  catalog,
		document: document,
	}

	return out, nil
}

// Handler serves the catalog under Options.BaseUrl:
//
//	GET  /                   catalog descriptor document
//	POST /operations/{name}  load a JSON or YAML payload
//	GET  /events             server-sent catalog events, current one first
//	GET  /metrics            prometheus metrics
//
// Other requests go to h, or get a 404 when h is nil.
func (s *Server) Handler(h http.Handler) http.Handler {
	notFound := http.NotFound
	if h != nil {
		notFound = h.ServeHTTP
	}

	r := chi.NewRouter()
	r.NotFound(notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]Fault{
			"fault": {Code: "Client", String: "method not allowed"},
		})
	})

	r.Get("/", s.serveCatalog)
	r.Post("/operations/{name}", s.serveOperation)
	r.Method(http.MethodGet, "/events", s.events)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	var handler http.Handler = r

	if base := path.Clean("/" + s.options.BaseUrl); base != "/" {
		root := chi.NewRouter()
		root.NotFound(notFound)
		root.Mount(base, r)
		handler = root
	}

	return cors.New(cors.Options{
		AllowedOrigins: s.options.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(handler)
}

// SetCatalog replaces the served catalog and publishes its CatalogEvent to
// event listeners.
func (s *Server) SetCatalog(catalog *compilation.Catalog) error {
	document, err := json.Marshal(catalog.Document())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalog = catalog
	s.document = document
	event := s.events.publish(catalog)
	s.mu.Unlock()

	s.metrics.reloadsTotal.Inc()

	s.logger.Debug().
		Uint64("revision", event.Revision).
		Str("service", event.Service).
		Msg("catalog replaced")
	return nil
}

func (s *Server) serveCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	document := s.document
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(document)
}

func (s *Server) serveOperation(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	name := chi.URLParam(r, "name")

	logger := s.logger.With().
		Str("request_id", uuid.NewString()).
		Str("operation", name).
		Logger()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.options.MaxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}

		s.metrics.observeLoad(name, "unreadable", started)
		s.fault(w, logger, status, err)
		return
	}

	var data any = map[string]any{}
	if len(bytes.TrimSpace(body)) != 0 {
		// YAML is a superset of JSON, so one decoder serves both
		if err := yaml.Unmarshal(body, &data); err != nil {
			s.metrics.observeLoad(name, "undecodable", started)
			s.fault(w, logger, http.StatusBadRequest, err)
			return
		}
	}

	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()

	values, err := catalog.Load(name, data)
	if err != nil {
		var (
			missing  *param.MissingParameterError
			valueErr *param.ValueError
		)

		switch {
		case errors.Is(err, compilation.ErrUnknownOperation):
			// unknown names stay out of the metric labels
			s.metrics.observeLoad("", "unknown_operation", started)
			s.fault(w, logger, http.StatusNotFound, err)
		case errors.As(err, &missing):
			s.metrics.observeLoad(name, "missing_parameter", started)
			s.fault(w, logger, http.StatusBadRequest, err)
		case errors.As(err, &valueErr):
			s.metrics.observeLoad(name, "invalid_value", started)
			s.fault(w, logger, http.StatusBadRequest, err)
		default:
			s.metrics.observeLoad(name, "error", started)
			s.fault(w, logger, http.StatusInternalServerError, err)
		}
		return
	}

	s.metrics.observeLoad(name, "ok", started)
	logger.Debug().Msg("params loaded")

	writeJSON(w, http.StatusOK, map[string]any{
		"operation": name,
		"params":    values,
	})
}

func (s *Server) fault(w http.ResponseWriter, logger zerolog.Logger, status int, err error) {
	fault := Fault{
		Code:   "Client",
		String: err.Error(),
	}

	if status >= http.StatusInternalServerError {
		fault.Code = "Server"
	}

	var missing *param.MissingParameterError
	var valueErr *param.ValueError
	if errors.As(err, &missing) {
		fault.Path = missing.Path
	} else if errors.As(err, &valueErr) {
		fault.Path = valueErr.Path
	}

	logger.Warn().Err(err).Int("status", status).Msg("request rejected")

	writeJSON(w, status, map[string]Fault{"fault": fault})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
