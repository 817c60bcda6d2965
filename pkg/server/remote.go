package server

import (
	"errors"
	"net/http"

	"github.com/scendash/scendash/pkg/httpx"
	"github.com/scendash/scendash/pkg/remote"
)

// RemoteOptionsResponse lists the remote source's two label axes and their
// option strings.
type RemoteOptionsResponse struct {
	Status string              `json:"status"`
	Axes   map[string][]string `json:"axes"`
}

// HandleRemoteOptions handles GET /v1/remote/dimensions by proxying the
// upstream manifest.
func (h *Handler) HandleRemoteOptions(w http.ResponseWriter, r *http.Request) {
	if h.remote == nil {
		httpx.RespondErrorString(w, http.StatusNotFound, "remote source not configured")
		return
	}

	manifest, err := h.remote.FetchManifest(r.Context())
	if err != nil {
		respondFetchErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, RemoteOptionsResponse{Status: "success", Axes: manifest.Axes})
}

// RemoteSeries is the renderer-ready shape for one remote category: a label
// and its (year, value) pairs in fetch order.
type RemoteSeries struct {
	Label string       `json:"label"`
	Data  [][2]float64 `json:"data"`
}

// RemoteSeriesResponse carries the remote points grouped by category.
type RemoteSeriesResponse struct {
	Status string         `json:"status"`
	Series []RemoteSeries `json:"series"`
}

// HandleRemoteSeries handles GET /v1/remote/series?primary=&secondary=. Each
// distinct selection is fetched once and memoized for the process lifetime.
func (h *Handler) HandleRemoteSeries(w http.ResponseWriter, r *http.Request) {
	if h.remote == nil {
		httpx.RespondErrorString(w, http.StatusNotFound, "remote source not configured")
		return
	}

	q := r.URL.Query()
	key := remote.SelectionKey{Primary: q.Get("primary"), Secondary: q.Get("secondary")}
	if key.Primary == "" || key.Secondary == "" {
		httpx.RespondErrorString(w, http.StatusBadRequest, "primary and secondary parameters are required")
		return
	}

	points, err := h.remote.FetchSelection(r.Context(), key)
	if err != nil {
		respondFetchErr(w, err)
		return
	}

	// Group by category, insertion order of first appearance.
	index := make(map[string]int)
	groups := make([]RemoteSeries, 0)
	for _, p := range points {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, RemoteSeries{Label: p.Category})
		}
		groups[i].Data = append(groups[i].Data, [2]float64{float64(p.Year), p.Value})
	}

	httpx.RespondJSON(w, http.StatusOK, RemoteSeriesResponse{Status: "success", Series: groups})
}

func respondFetchErr(w http.ResponseWriter, err error) {
	var fe *remote.FetchError
	if errors.As(err, &fe) {
		httpx.RespondError(w, http.StatusBadGateway, err)
		return
	}
	httpx.RespondError(w, http.StatusInternalServerError, err)
}
