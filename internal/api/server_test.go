package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bisect/pkg/cache"
	"github.com/matzehuels/bisect/pkg/graph"
	"github.com/matzehuels/bisect/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	s := NewServer(pipeline.NewRunner(c, nil, logger), logger, Config{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func referenceBody(t *testing.T) []byte {
	t.Helper()
	data, err := graph.MarshalGraph(graph.Reference())
	require.NoError(t, err)
	return data
}

func post(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestPartition(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/partition", referenceBody(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))

	res, err := graph.UnmarshalResult(mustRead(t, resp))
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.FinalCut, res.InitialCut)
	require.Len(t, res.Partitions, 2)
	assert.Len(t, res.Partitions[0].Nodes, 6)

	again := post(t, ts.URL+"/v1/partition", referenceBody(t))
	require.Equal(t, http.StatusOK, again.StatusCode)
	assert.Equal(t, "HIT", again.Header.Get("X-Cache"))
}

func TestPartitionMaxPasses(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/partition?max_passes=1", referenceBody(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res, err := graph.UnmarshalResult(mustRead(t, resp))
	require.NoError(t, err)
	assert.Len(t, res.Passes, 1)
}

func TestPartitionErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   string
	}{
		{"malformed JSON", "", "{", http.StatusBadRequest, "INVALID_FORMAT"},
		{"one label", "", `{"nodes":[{"id":"a","partition":"L"}]}`, http.StatusBadRequest, "INVALID_GRAPH"},
		{"unbalanced", "", `{"nodes":[{"id":"a","partition":"L"},{"id":"b","partition":"L"},{"id":"c","partition":"R"}]}`, http.StatusBadRequest, "INVALID_GRAPH"},
		{"bad max_passes", "?max_passes=lots", string(referenceBody(t)), http.StatusBadRequest, "INVALID_INPUT"},
		{"negative max_passes", "?max_passes=-1", string(referenceBody(t)), http.StatusBadRequest, "INVALID_INPUT"},
		{"bad refresh", "?refresh=maybe", string(referenceBody(t)), http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/partition"+tt.query, []byte(tt.body))
			assert.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, resp)
			assert.Equal(t, tt.code, string(e.Code))
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v2/nothing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", string(decodeError(t, resp).Code))
}

func TestRenderDOT(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/render?format=dot&weights=true", referenceBody(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(mustRead(t, resp)), "graph G {"))

	bad := post(t, ts.URL+"/v1/render?format=gif", referenceBody(t))
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestWrongContentType(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/partition", "text/plain", bytes.NewReader(referenceBody(t)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func mustRead(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return data
}
