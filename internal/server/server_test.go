package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stepviz/pkg/algorithms"
	"github.com/matzehuels/stepviz/pkg/buildinfo"
	"github.com/matzehuels/stepviz/pkg/cache"
	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/observability"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/trace"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := trace.NewRunner(fc, nil, nil)
	srv := httptest.NewServer(New(algorithms.Registry(), runner, nil, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, buildinfo.Version, body.Build.Version)
}

func TestListAndInfo(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/algorithms")
	require.NoError(t, err)
	defer resp.Body.Close()
	var all []catalog.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, len(algorithms.All))

	resp, err = http.Get(srv.URL + "/algorithms?category=trees")
	require.NoError(t, err)
	defer resp.Body.Close()
	var trees []catalog.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trees))
	require.NotEmpty(t, trees)
	for _, s := range trees {
		assert.Equal(t, catalog.CategoryTrees, s.Category)
	}

	resp, err = http.Get(srv.URL + "/algorithms/bstOperations")
	require.NoError(t, err)
	defer resp.Body.Close()
	var info catalog.Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "bstOperations", info.ID)
	assert.NotEmpty(t, info.Pseudocode)

	resp, err = http.Get(srv.URL + "/algorithms/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidate(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/algorithms/binarySearch/validate", `{"input":{"values":[1,3,5]},"params":{"target":3}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, srv.URL+"/algorithms/binarySearch/validate", `{"input":{"values":[5,1]}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out validateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.OK)
	assert.NotEmpty(t, out.Error)
	assert.False(t, strings.Contains(out.Error, "INVALID_INPUT"), "message should be shown verbatim, without the code")

	resp = post(t, srv.URL+"/algorithms/binarySearch/validate", `{"input":{"values":[1]},"params":{"target":5000}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = post(t, srv.URL+"/algorithms/binarySearch/validate", `{"input":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTextAlgorithmsRejectStrayValues(t *testing.T) {
	srv := newTestServer(t)
	body := `{"input":{"values":[1],"text":"racecar"}}`

	for _, id := range []string{"palindromeCheck", "charFrequency", "balancedParentheses"} {
		resp := post(t, srv.URL+"/algorithms/"+id+"/validate", body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, id)

		resp = post(t, srv.URL+"/algorithms/"+id+"/run", body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, id)
	}
}

func TestRun(t *testing.T) {
	srv := newTestServer(t)
	body := `{"input":{"values":[5,3,8,1,9,2]},"params":{"target":8}}`

	resp := post(t, srv.URL+"/algorithms/bidirectionalSearch/run", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	var tr trace.Trace
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	res, ok := tr.Result()
	require.True(t, ok)
	assert.Equal(t, step.ResultSearch, res.ResultKind)
	assert.Equal(t, 2, res.Value)

	resp = post(t, srv.URL+"/algorithms/bidirectionalSearch/run", body)
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	body := `{"input":{"values":[5,3,7]}}`

	resp := post(t, srv.URL+"/algorithms/inorderTraversal/render?format=dot", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))

	resp = post(t, srv.URL+"/algorithms/inorderTraversal/render?format=gif", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, srv.URL+"/algorithms/inorderTraversal/render?step=99999", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

type recordingHTTPHooks struct{ routes []string }

func (h *recordingHTTPHooks) OnRequest(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.routes = append(h.routes, route)
}

func TestInstrumentReportsRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/algorithms/bubbleSort")
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, hooks.routes, 1)
	assert.Contains(t, hooks.routes[0], "/algorithms/{id}")
}

func TestMetricsRoute(t *testing.T) {
	srv := newTestServer(t, WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})))
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srv = newTestServer(t)
	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIEntriesAreScoped(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	cliRunner := trace.NewRunner(fc, nil, nil)
	srv := httptest.NewServer(New(algorithms.Registry(), cliRunner, nil).Handler())
	t.Cleanup(srv.Close)

	resp := post(t, srv.URL+"/algorithms/bubbleSort/run", `{"input":{"values":[3,1,2]}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	d, err := algorithms.Registry().Get("bubbleSort")
	require.NoError(t, err)
	tr, hit, err := cliRunner.Run(context.Background(), d, catalog.Input{Values: []int{3, 1, 2}}, nil)
	require.NoError(t, err)
	assert.False(t, hit, "API entries must not serve CLI runs")
	assert.False(t, strings.HasPrefix(tr.Key, KeyPrefix))

	var apiTrace trace.Trace
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiTrace))
	assert.True(t, strings.HasPrefix(apiTrace.Key, KeyPrefix), "key %q", apiTrace.Key)

	n, err := fc.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one entry per scope")
}
