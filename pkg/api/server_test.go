package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/funcstructs/pkg/cache"
	fsio "github.com/matzehuels/funcstructs/pkg/io"
	"github.com/matzehuels/funcstructs/pkg/observability"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	c, err := cache.NewMemoryCache(128)
	require.NoError(t, err)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	srv := httptest.NewServer(New(runner, logger, opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func decodeError(t *testing.T, body string) errorDetail {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal([]byte(body), &e), body)
	return e.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"go_version"`)

	_, err := uuid.Parse(resp.Header.Get(HeaderRequestID))
	assert.NoError(t, err, "responses carry a generated request ID")
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t, Options{})
	id := uuid.NewString()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(HeaderRequestID))

	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(HeaderRequestID))
}

func TestTreesStream(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp, body := get(t, srv.URL+"/v1/trees/5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-ndjson", resp.Header.Get("Content-Type"))

	var recs []fsio.Record
	for rec, err := range fsio.ReadJSONLines(strings.NewReader(body)) {
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	require.Len(t, recs, 9)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, recs[0].Seq)
	assert.Equal(t, []int{1, 2, 2, 2, 2}, recs[8].Seq)
	assert.Equal(t, 9, recs[8].Index)
}

func TestPartitionsStream(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, body := get(t, srv.URL+"/v1/partitions/10/4?format=text&limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[3 3 2 2]\n[3 3 3 1]\n", body)

	resp, body = get(t, srv.URL+"/v1/partitions/3/5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = get(t, srv.URL+"/v1/partitions/0/0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"kind":"partition","index":1,"seq":[]}`+"\n", body)
}

func TestStreamLimitDefault(t *testing.T) {
	srv := newTestServer(t, Options{})
	_, body := get(t, srv.URL+"/v1/trees/12?format=text")
	sc := bufio.NewScanner(strings.NewReader(body))
	lines := 0
	for sc.Scan() {
		lines++
	}
	assert.Equal(t, DefaultLimit, lines)
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, Options{MaxSize: 20})
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/v1/trees/0", http.StatusBadRequest, "INVALID_SIZE"},
		{"/v1/trees/abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"/v1/trees/21", http.StatusBadRequest, "INVALID_INPUT"},
		{"/v1/partitions/-1/2", http.StatusBadRequest, "INVALID_ARGUMENTS"},
		{"/v1/partitions/5/2?limit=0", http.StatusBadRequest, "INVALID_INPUT"},
		{"/v1/partitions/5/2?format=brackets", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/v1/census/forests/3", http.StatusBadRequest, "INVALID_KIND"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, body)
			assert.Equal(t, tt.code, string(e.Code))
			assert.NotEmpty(t, e.Message)
			assert.Equal(t, resp.Header.Get(HeaderRequestID), e.RequestID)
		})
	}

	resp, _ := get(t, srv.URL+"/v1/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCounts(t *testing.T) {
	srv := newTestServer(t, Options{})

	var res pipeline.CountResult
	resp, body := get(t, srv.URL+"/v1/counts/trees/30")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Equal(t, 354426847597, res.Formula)

	resp, body = get(t, srv.URL+"/v1/counts/partitions/10/4?verify=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Equal(t, 9, res.Count)
	assert.Equal(t, 9, res.Formula)
	assert.False(t, res.CacheHit)

	_, body = get(t, srv.URL+"/v1/counts/partitions/10/4?verify=1")
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.True(t, res.CacheHit)
}

func TestCountsTreeSizeCap(t *testing.T) {
	srv := newTestServer(t, Options{})

	var res pipeline.CountResult
	resp, body := get(t, srv.URL+"/v1/counts/trees/46")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Equal(t, 6325843306177425928, res.Formula)

	for _, n := range []string{"47", "50", "64"} {
		resp, body := get(t, srv.URL+"/v1/counts/trees/"+n)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, n)
		assert.Equal(t, "INVALID_SIZE", string(decodeError(t, body).Code), n)
	}
}

func TestCensus(t *testing.T) {
	srv := newTestServer(t, Options{CensusWorkers: 2})
	resp, body := get(t, srv.URL+"/v1/census/trees/6")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var c pipeline.Census
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	assert.Equal(t, "trees", c.Kind)
	require.Len(t, c.Rows, 6)
	assert.Equal(t, 20, c.Rows[5].Count)
	assert.True(t, c.Verified())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks, err := observability.NewPrometheusHooks(reg)
	require.NoError(t, err)
	observability.SetHTTPHooks(hooks)
	observability.SetEnumerationHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t, Options{Gatherer: reg})
	get(t, srv.URL+"/v1/trees/4")

	resp, body := get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `funcstructs_http_requests_total{code="200",method="GET",route="/v1/trees/{n}"} 1`)
	assert.Contains(t, body, `funcstructs_items_total{kind="trees"} 4`)

	noMetrics := newTestServer(t, Options{})
	resp, _ = get(t, noMetrics.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListenAndServeShutdown(t *testing.T) {
	c := cache.NewNullCache()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(c, nil, logger), nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0", 0) }()
	cancel()
	assert.NoError(t, <-done)
}
