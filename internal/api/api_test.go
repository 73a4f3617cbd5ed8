package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codechallenge-go/internal/api"
	"github.com/mcoot/codechallenge-go/internal/api/apierr"
	"github.com/mcoot/codechallenge-go/internal/api/response"
	"github.com/mcoot/codechallenge-go/internal/display"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/storage/memory"
	"github.com/mcoot/codechallenge-go/internal/testutil"
	"github.com/mcoot/codechallenge-go/internal/transport"
	"github.com/mcoot/codechallenge-go/internal/web/sse"
)

type fakeController struct {
	mu        sync.Mutex
	mode      model.GameMode
	turnDelay *time.Duration
	winDelay  *time.Duration
	resets    int
	err       error
}

func (f *fakeController) SetMode(_ context.Context, m model.GameMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = m
	return f.err
}

func (f *fakeController) SetTurnDelay(_ context.Context, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turnDelay = &d
	return f.err
}

func (f *fakeController) SetWinDelay(_ context.Context, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.winDelay = &d
	return f.err
}

func (f *fakeController) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return f.err
}

// testServer creates a test server with an in-memory store
type testServer struct {
	handler    http.Handler
	store      *memory.Storage
	controller *fakeController
	latest     *display.Latest
	hub        *sse.Hub
	players    *transport.WebSocketListener
}

func newTestServer(t *testing.T, adminToken string) *testServer {
	t.Helper()
	logger := testutil.NopLogger()

	hub := sse.NewHub("api", logger)
	go hub.Run()
	t.Cleanup(hub.Close)

	ts := &testServer{
		store:      memory.New(),
		controller: &fakeController{},
		latest:     display.NewLatest(),
		hub:        hub,
		players:    transport.NewWebSocketListener("test"),
	}
	t.Cleanup(func() { _ = ts.players.Close() })

	ts.handler = api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Store:       ts.store,
		Controller:  ts.controller,
		Hub:         hub,
		Broadcaster: sse.NewBroadcaster(hub, sse.JSONRenderer{}, logger),
		Latest:      ts.latest,
		AdminToken:  adminToken,
		Players:     ts.players,
	}, nil)
	return ts
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestStateBeforePublish(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodGet, "/api/v1/state", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeStateNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/info", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStateAndInfo(t *testing.T) {
	ts := newTestServer(t, "")
	ctx := context.Background()
	require.NoError(t, ts.store.SaveSnapshot(ctx, model.Snapshot{Kind: "counter", Data: []byte(`{"num":4}`)}))
	require.NoError(t, ts.store.SaveServerInfo(ctx, model.ServerInfo{
		ConnectedUsers: []model.User{{Name: "alice", Color: model.RGB(230, 25, 75)}},
		Mode:           model.ModeCompetition,
		Scores:         model.ScoreTable{"alice": 2, "bob": 5},
		TurnDelay:      200 * time.Millisecond,
		WinDelay:       500 * time.Millisecond,
	}))

	rr := ts.request(http.MethodGet, "/api/v1/state", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"kind":"counter","data":{"num":4}}`, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/info", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var info response.Info
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, []response.Player{{Name: "alice", Color: "#e6194b"}}, info.Players)
	assert.Equal(t, "competition", info.Mode)
	assert.Equal(t, []string{"bob", "alice"}, info.Ranking)
	assert.Equal(t, "200ms", info.TurnDelay)
	assert.Equal(t, "500ms", info.WinDelay)
}

func TestSetMode(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPut, "/api/v1/mode", map[string]string{"mode": "gating"}, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, model.ModeGating, ts.controller.mode)

	rr = ts.request(http.MethodPut, "/api/v1/mode", map[string]string{"mode": "chaos"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownMode, errorCode(t, rr))

	rr = ts.request(http.MethodPut, "/api/v1/mode", "not an object", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestSetDelays(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPut, "/api/v1/delays", map[string]string{"turn_delay": "1s"}, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, ts.controller.turnDelay)
	assert.Equal(t, time.Second, *ts.controller.turnDelay)
	assert.Nil(t, ts.controller.winDelay, "omitted delay is unchanged")

	rr = ts.request(http.MethodPut, "/api/v1/delays", map[string]string{"win_delay": "2s"}, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, ts.controller.winDelay)
	assert.Equal(t, 2*time.Second, *ts.controller.winDelay)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"empty", map[string]string{}},
		{"garbage", map[string]string{"turn_delay": "soon"}},
		{"negative", map[string]string{"win_delay": "-5ms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPut, "/api/v1/delays", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
		})
	}
}

func TestReset(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPost, "/api/v1/reset", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, ts.controller.resets)
}

func TestControllerUnavailable(t *testing.T) {
	ts := newTestServer(t, "")
	ts.controller.err = context.DeadlineExceeded

	rr := ts.request(http.MethodPost, "/api/v1/reset", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, apierr.CodeControllerUnavailable, errorCode(t, rr))
}

func TestAdminToken(t *testing.T) {
	ts := newTestServer(t, "s3cret")

	rr := ts.request(http.MethodPost, "/api/v1/reset", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/reset", nil, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/reset", nil, "s3cret")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Read-only routes stay open
	rr = ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, "")
	rr := ts.request(http.MethodGet, "/api/v1/reset", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestEventsStream(t *testing.T) {
	ts := newTestServer(t, "")
	ts.latest.StateChanged(model.Snapshot{Kind: "counter", Data: []byte(`{"num":1}`)})

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	buf := make([]byte, 4096)
	var got strings.Builder
	for !strings.Contains(got.String(), `"num":1}}`) {
		n, err := resp.Body.Read(buf)
		require.NoError(t, err)
		got.Write(buf[:n])
	}
	assert.Contains(t, got.String(), "event: state-update\ndata: {\"kind\":\"counter\",\"data\":{\"num\":1}}\n")
}

func TestPlayersWebSocket(t *testing.T) {
	ts := newTestServer(t, "")
	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := transport.DialWebSocket(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	server, err := ts.players.Accept(ctx)
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	require.NoError(t, client.WriteLine(ctx, "{\"auth\":{}}\n"))
	line, err := server.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"auth":{}}`, line)
}
