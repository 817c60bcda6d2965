package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/scendash/scendash/pkg/config"
	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/dimensions"
	"github.com/scendash/scendash/pkg/filter"
	"github.com/scendash/scendash/pkg/httpx"
	"github.com/scendash/scendash/pkg/remote"
	"github.com/scendash/scendash/pkg/render"
	"github.com/scendash/scendash/pkg/series"
	"github.com/scendash/scendash/pkg/store"
)

// Handler serves the dataset pipeline over HTTP. It owns no pipeline state
// beyond the session store; every response is recomputed from the current
// record set and the request's filters.
type Handler struct {
	store     store.Store
	engine    *filter.Engine
	dims      []dataset.Dimension
	remote    *remote.Client // nil unless the pre-partitioned variant is configured
	maxUpload int64
}

// NewHandler wires the pipeline behind HTTP endpoints.
func NewHandler(st store.Store, engine *filter.Engine, dims []dataset.Dimension) *Handler {
	return &Handler{store: st, engine: engine, dims: dims, maxUpload: config.MaxUploadBytes}
}

// SetRemote enables the pre-partitioned remote endpoints.
func (h *Handler) SetRemote(c *remote.Client) {
	h.remote = c
}

// UploadResponse reports a successful dataset load.
type UploadResponse struct {
	Status      string `json:"status"`
	Records     int    `json:"records"`
	Fingerprint string `json:"fingerprint"`
}

// HandleUpload handles POST /v1/dataset. The body is the raw dataset, CSV by
// default or XLSX when the Content-Type or ?format= says so. A load failure
// of any kind — oversize body, unreadable body, bad schema — is terminal:
// the session keeps the error, not stale or truncated rows.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// MaxBytesReader errors instead of truncating: an oversize dataset is
	// rejected whole, never silently cut at the limit and half-loaded.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("dataset exceeds %d byte upload limit", tooLarge.Limit)
			h.store.Fail(err)
			httpx.RespondError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		httpx.RespondError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}

	var records []dataset.Record
	if isXLSX(r) {
		records, err = dataset.ParseXLSX(bytes.NewReader(body))
	} else {
		records, err = dataset.Parse(string(body))
	}
	if err != nil {
		h.store.Fail(err)
		httpx.RespondError(w, http.StatusBadRequest, err)
		return
	}

	h.store.Replace(records)
	httpx.RespondJSON(w, http.StatusOK, UploadResponse{
		Status:      "success",
		Records:     len(records),
		Fingerprint: fmt.Sprintf("%016x", h.store.Fingerprint()),
	})
}

func isXLSX(r *http.Request) bool {
	if r.URL.Query().Get("format") == "xlsx" {
		return true
	}
	ct := r.Header.Get("Content-Type")
	return strings.Contains(ct, "spreadsheetml") || strings.Contains(ct, "application/vnd.ms-excel")
}

// DimensionsResponse carries the per-dimension option lists.
type DimensionsResponse struct {
	Status     string             `json:"status"`
	Dimensions dimensions.Options `json:"dimensions"`
}

// HandleDimensions handles GET /v1/dimensions.
func (h *Handler) HandleDimensions(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadedRecords(w)
	if err != nil {
		return
	}
	httpx.RespondJSON(w, http.StatusOK, DimensionsResponse{
		Status:     "success",
		Dimensions: dimensions.Discover(records, h.dims),
	})
}

// SeriesResponse carries the grouped series for the requested filters.
type SeriesResponse struct {
	Status string          `json:"status"`
	Count  int             `json:"count"` // filtered record count across all series
	Series []series.Series `json:"series"`
}

// HandleSeries handles GET /v1/series. Filters arrive as query parameters
// named after the dimensions (?region=ON&scenario=Base); "All" and absence
// both mean unconstrained.
func (h *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadedRecords(w)
	if err != nil {
		return
	}

	filters := h.filtersFromQuery(r)
	filtered := h.engine.Apply(records, filters)
	groups := series.Group(filtered, series.UnconstrainedFrom(filters))

	httpx.RespondJSON(w, http.StatusOK, SeriesResponse{
		Status: "success",
		Count:  len(filtered),
		Series: groups,
	})
}

// HandleChart handles GET /v1/series/chart: same filters as /v1/series, but
// the response is a rendered PNG.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadedRecords(w)
	if err != nil {
		return
	}

	filters := h.filtersFromQuery(r)
	filtered := h.engine.Apply(records, filters)
	groups := series.Group(filtered, series.UnconstrainedFrom(filters))

	opts := render.Options{
		Title:  r.URL.Query().Get("title"),
		Width:  queryInt(r, "width", config.DefaultChartWidth),
		Height: queryInt(r, "height", config.DefaultChartHeight),
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, groups, opts); err != nil {
		if errors.Is(err, render.ErrNoSeries) {
			httpx.RespondErrorString(w, http.StatusNotFound, "no records match the active filters")
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, err)
		return
	}

	httpx.RespondPNG(w, http.StatusOK, buf.Bytes())
}

// HealthResponse reports server and session state.
type HealthResponse struct {
	Status  string `json:"status"`
	Loaded  bool   `json:"loaded"`
	Records int    `json:"records"`
}

// HandleHealth handles GET /v1/healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, err := h.store.Records()
	httpx.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Loaded:  err == nil,
		Records: h.store.Len(),
	})
}

// loadedRecords fetches the session's records, writing the appropriate error
// response when the dataset is missing or its last load failed. A nil error
// from the store means the records are usable, even if empty.
func (h *Handler) loadedRecords(w http.ResponseWriter) ([]dataset.Record, error) {
	records, err := h.store.Records()
	if err != nil {
		if errors.Is(err, store.ErrNotLoaded) {
			httpx.RespondErrorString(w, http.StatusConflict, "dataset not loaded")
		} else {
			httpx.RespondError(w, http.StatusUnprocessableEntity, err)
		}
		return nil, err
	}
	return records, nil
}

// filtersFromQuery builds the filter set from query parameters. Only the
// configured dimensions are consulted; unknown parameters are ignored.
func (h *Handler) filtersFromQuery(r *http.Request) filter.Set {
	filters := make(filter.Set)
	q := r.URL.Query()
	for _, d := range h.dims {
		if v := q.Get(strings.ToLower(string(d))); v != "" {
			filters[d] = v
		}
	}
	return filters
}

func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
