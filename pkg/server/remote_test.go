package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scendash/scendash/pkg/remote"
)

func newUpstream(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dimensions.json":
			_, _ = w.Write([]byte(`{"Region":["All","ON","QC"],"Scenario":["All","Base"]}`))
		case "/data":
			hits.Add(1)
			_, _ = w.Write([]byte(`[["Wind",2020,5],["Solar",2020,2],["Wind",2021,7]]`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestHandleRemoteNotConfigured(t *testing.T) {
	h := newTestHandler()

	rr := httptest.NewRecorder()
	h.HandleRemoteOptions(rr, httptest.NewRequest(http.MethodGet, "/v1/remote/dimensions", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	h.HandleRemoteSeries(rr, httptest.NewRequest(http.MethodGet, "/v1/remote/series?primary=a&secondary=b", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleRemoteOptions(t *testing.T) {
	var hits atomic.Int64
	ts := newUpstream(t, &hits)
	defer ts.Close()

	h := newTestHandler()
	h.SetRemote(remote.NewClient(ts.URL, nil))

	rr := httptest.NewRecorder()
	h.HandleRemoteOptions(rr, httptest.NewRequest(http.MethodGet, "/v1/remote/dimensions", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp RemoteOptionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, []string{"All", "ON", "QC"}, resp.Axes["Region"])
}

func TestHandleRemoteSeries(t *testing.T) {
	var hits atomic.Int64
	ts := newUpstream(t, &hits)
	defer ts.Close()

	h := newTestHandler()
	h.SetRemote(remote.NewClient(ts.URL, nil))

	get := func() RemoteSeriesResponse {
		rr := httptest.NewRecorder()
		h.HandleRemoteSeries(rr, httptest.NewRequest(http.MethodGet,
			"/v1/remote/series?primary=ON&secondary=Base", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var resp RemoteSeriesResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp
	}

	resp := get()
	require.Len(t, resp.Series, 2)
	// First-seen category order.
	require.Equal(t, "Wind", resp.Series[0].Label)
	require.Equal(t, "Solar", resp.Series[1].Label)
	require.Equal(t, [][2]float64{{2020, 5}, {2021, 7}}, resp.Series[0].Data)

	// Second identical request is served from the selection memo.
	_ = get()
	require.EqualValues(t, 1, hits.Load())
}

func TestHandleRemoteSeriesMissingParams(t *testing.T) {
	h := newTestHandler()
	h.SetRemote(remote.NewClient("http://127.0.0.1:0", nil))

	rr := httptest.NewRecorder()
	h.HandleRemoteSeries(rr, httptest.NewRequest(http.MethodGet, "/v1/remote/series?primary=ON", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleRemoteUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	h := newTestHandler()
	h.SetRemote(remote.NewClient(ts.URL, nil))

	rr := httptest.NewRecorder()
	h.HandleRemoteOptions(rr, httptest.NewRequest(http.MethodGet, "/v1/remote/dimensions", nil))
	require.Equal(t, http.StatusBadGateway, rr.Code)
}
