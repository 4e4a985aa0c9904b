package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup"
	"github.com/aretw0/stagedup/internal/logging"
	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/dsl"
	"github.com/aretw0/stagedup/pkg/observability"
	"github.com/aretw0/stagedup/pkg/workspace"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *memory.Store) {
	t.Helper()
	b := dsl.New("city")
	b.Xform("/World")
	b.Mesh("/World/Box")
	snap, err := b.Snapshot()
	require.NoError(t, err)

	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), "city", snap))

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	ws := workspace.NewManager(store, workspace.WithDuplicator(
		stagedup.New(stagedup.WithLifecycleHooks(metrics.Hooks())),
	))

	handler, err := NewHandler(ws, append([]Option{WithGatherer(reg)}, opts...)...)
	require.NoError(t, err)
	return handler, store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/stages/{id}/duplicate"))
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "0.1.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(stagedup.Version), info["version"])
}

func TestDuplicate(t *testing.T) {
	h, store := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/stages/city/duplicate",
		`{"selection":["/World/Box"],"count":3,"distance":"100","axis":"x"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Result domain.Result     `json:"result"`
		Diff   *domain.StageDiff `json:"diff"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Result.Created)
	assert.Equal(t, "Done: Duplicated 3", out.Result.Status)
	require.NotNil(t, out.Diff)
	assert.Len(t, out.Diff.Added, 3)

	saved, err := store.Load(context.Background(), "city")
	require.NoError(t, err)
	_, ok := saved.Find("/World/Box_x02")
	assert.True(t, ok)

	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), "stagedup_prims_created_total 3")
}

func TestDuplicate_Rejections(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name   string
		target string
		body   string
		code   int
		want   string
	}{
		{"CountNotPositive", "/stages/city/duplicate", `{"selection":["/World/Box"],"count":0}`, http.StatusBadRequest, domain.StatusCountNotPositive},
		{"EmptySelection", "/stages/city/duplicate", `{"selection":[]}`, http.StatusBadRequest, domain.StatusNoSelection},
		{"InvalidInput", "/stages/city/duplicate", `{"selection":["/World/Box"],"count":"many"}`, http.StatusBadRequest, domain.StatusInvalidInput},
		{"UnknownStage", "/stages/nope/duplicate", `{"selection":["/World/Box"]}`, http.StatusNotFound, "stage not found"},
		{"BadBody", "/stages/city/duplicate", `{`, http.StatusBadRequest, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestStageCRUD(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPut, "/stages/park", `{"prims":[{"path":"/Tree","type":"Mesh"}]}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, "/stages", "")
	assert.JSONEq(t, `{"stages":["city","park"]}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/stages/park", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap domain.StageSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "park", snap.ID)
	assert.Equal(t, domain.AxisZ, snap.UpAxis)
	assert.Equal(t, []domain.Path{"/Tree"}, snap.Paths())

	w = do(t, h, http.MethodGet, "/stages/park/graph", "")
	assert.Contains(t, w.Body.String(), `Tree(("Tree"))`)

	w = do(t, h, http.MethodDelete, "/stages/park", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/stages/park", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutStage_Invalid(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPut, "/stages/park", `{"prims":[{"path":"/World/Orphan"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/stages/..bad", `{"prims":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodOptions, "/stages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stages/city/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	// Skip "data: connected" and the blank separator.
	_, _ = reader.ReadString('\n')
	_, _ = reader.ReadString('\n')

	post, err := http.Post(srv.URL+"/stages/city/duplicate", "application/json",
		bytes.NewBufferString(`{"selection":["/World/Box"],"count":1}`))
	require.NoError(t, err)
	post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: "))
	assert.Contains(t, line, "/World/Box_z01")
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager(nopLogger())

	ch, cancel := sm.Subscribe("city")
	sm.Broadcast("city", "one")
	sm.Broadcast("other", "ignored")
	assert.Equal(t, "one", <-ch)

	cancel()
	cancel() // idempotent
	_, open := <-ch
	assert.False(t, open)
}

func nopLogger() *slog.Logger { return logging.NewNop() }
