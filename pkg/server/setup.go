package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/scendash/scendash/pkg/config"
	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/filter"
	"github.com/scendash/scendash/pkg/httpx"
	"github.com/scendash/scendash/pkg/remote"
	"github.com/scendash/scendash/pkg/store/memory"
)

// Server bundles the wired pipeline and its router.
type Server struct {
	Config  *config.Config
	Handler *Handler
	Router  *mux.Router

	fetch *remote.Client
}

// New wires the session store, filter engine, and handlers from config.
func New(cfg *config.Config) *Server {
	engine := filter.NewEngine(cfg.DimensionExclusions())
	h := NewHandler(memory.New(), engine, cfg.FilterableDimensions())

	var fetch *remote.Client
	if cfg.RemoteBaseURL != "" {
		fetch = remote.NewClient(cfg.RemoteBaseURL, nil)
		h.SetRemote(fetch)
		log.Printf("Remote source configured: %s", cfg.RemoteBaseURL)
	}

	return &Server{
		Config:  cfg,
		Handler: h,
		Router:  NewRouter(h),
		fetch:   fetch,
	}
}

// NewRouter registers all routes on a fresh gorilla/mux router.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	// mux falls back to 404 on a method mismatch unless told otherwise;
	// the subrouter does its own matching, so both need the handler.
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.RespondErrorString(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.MethodNotAllowedHandler = notAllowed

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.MethodNotAllowedHandler = notAllowed

	v1.HandleFunc("/dataset", h.HandleUpload).Methods(http.MethodPost)
	v1.HandleFunc("/dimensions", h.HandleDimensions).Methods(http.MethodGet)
	v1.HandleFunc("/series", h.HandleSeries).Methods(http.MethodGet)
	v1.HandleFunc("/series/chart", h.HandleChart).Methods(http.MethodGet)
	v1.HandleFunc("/export", h.HandleExport).Methods(http.MethodGet)
	v1.HandleFunc("/remote/dimensions", h.HandleRemoteOptions).Methods(http.MethodGet)
	v1.HandleFunc("/remote/series", h.HandleRemoteSeries).Methods(http.MethodGet)
	v1.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)

	return r
}

// Preload loads the configured dataset, if any, before serving. A preload
// failure is recorded in the session (so /v1/dimensions reports it) and
// returned; the caller decides whether startup continues.
func (s *Server) Preload(ctx context.Context) error {
	cfg := s.Config

	switch {
	case cfg.DatasetPath != "":
		raw, err := os.ReadFile(cfg.DatasetPath)
		if err != nil {
			err = fmt.Errorf("preload %s: %w", cfg.DatasetPath, err)
			s.Handler.store.Fail(err)
			return err
		}
		return s.load(string(raw), cfg.DatasetPath)

	case cfg.DatasetURL != "":
		client := s.fetch
		if client == nil {
			client = remote.NewClient("", nil)
		}
		raw, err := client.FetchText(ctx, cfg.DatasetURL)
		if err != nil {
			s.Handler.store.Fail(err)
			return err
		}
		return s.load(raw, cfg.DatasetURL)
	}
	return nil
}

func (s *Server) load(raw, source string) error {
	records, err := dataset.Parse(raw)
	if err != nil {
		s.Handler.store.Fail(err)
		return fmt.Errorf("preload %s: %w", source, err)
	}
	s.Handler.store.Replace(records)
	log.Printf("Preloaded %d records from %s (fingerprint %016x)",
		len(records), source, s.Handler.store.Fingerprint())
	return nil
}
