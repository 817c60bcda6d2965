package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/export"
	"github.com/scendash/scendash/pkg/httpx"
)

// HandleExport handles GET /v1/export: the filtered record set as a
// download, ?format=csv (default) or json. Filters work exactly as on
// /v1/series.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadedRecords(w)
	if err != nil {
		return
	}

	filtered := h.engine.Apply(records, h.filtersFromQuery(r))

	var buf bytes.Buffer
	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		if _, err := export.ToCSV(&buf, filtered); err != nil {
			// Comma-bearing fields (XLSX input) have no CSV form; the
			// JSON download still works.
			if errors.Is(err, dataset.ErrUnrepresentableField) {
				httpx.RespondError(w, http.StatusUnprocessableEntity, err)
				return
			}
			httpx.RespondError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="scendash.csv"`)
	case "json":
		if _, err := export.ToJSON(&buf, filtered); err != nil {
			httpx.RespondError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
	default:
		httpx.RespondErrorString(w, http.StatusBadRequest, "format must be csv or json")
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
