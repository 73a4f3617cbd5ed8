package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/testutil"
)

func TestBroadcaster_JSON(t *testing.T) {
	hub := newTestHub(t)
	client := NewClient(hub, "client1")
	hub.Register(client)

	b := NewBroadcaster(hub, JSONRenderer{}, testutil.NopLogger())
	b.StateChanged(model.Snapshot{Kind: "counter", Data: []byte(`{"num":1}`)})
	b.InfoChanged(model.ServerInfo{Mode: model.ModeGating})

	want := "event: state-update\ndata: {\"kind\":\"counter\",\"data\":{\"num\":1}}\n\n"
	if got := receive(t, client); got != want {
		t.Errorf("state event = %q, want %q", got, want)
	}
	if got := receive(t, client); !strings.HasPrefix(got, "event: info-update\n") || !strings.Contains(got, `"mode":"gating"`) {
		t.Errorf("unexpected info event %q", got)
	}
}

func TestBroadcaster_HTML(t *testing.T) {
	hub := newTestHub(t)
	client := NewClient(hub, "client1")
	hub.Register(client)

	b := NewBroadcaster(hub, HTMLRenderer{}, testutil.NopLogger())
	b.StateChanged(model.Snapshot{Kind: "counter", Data: []byte(`{"num":9}`)})

	got := receive(t, client)
	if !strings.HasPrefix(got, "event: state-update\n") || !strings.Contains(got, `<p class="counter">9</p>`) {
		t.Errorf("unexpected state event %q", got)
	}
}

func TestBroadcaster_SkipsUnrenderableState(t *testing.T) {
	hub := newTestHub(t)
	client := NewClient(hub, "client1")
	hub.Register(client)

	b := NewBroadcaster(hub, HTMLRenderer{}, testutil.NopLogger())
	b.StateChanged(model.Snapshot{Kind: "gomoku", Data: []byte(`[`)})
	b.InfoChanged(model.ServerInfo{})

	if got := receive(t, client); !strings.HasPrefix(got, "event: info-update\n") {
		t.Errorf("expected only the info event, got %q", got)
	}
}

func TestServeSSE_SendsInitialEventsThenUpdates(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, Event{Name: EventInfoUpdate, Data: "first"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		if !lines.Scan() {
			t.Fatalf("stream ended: %v", lines.Err())
		}
		return lines.Text()
	}

	want := []string{"event: connected", `data: {"status":"connected"}`, "", "event: info-update", "data: first", ""}
	for _, w := range want {
		if got := next(); got != w {
			t.Fatalf("line = %q, want %q", got, w)
		}
	}

	for hub.ClientCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	hub.BroadcastEvent(EventStateUpdate, "second")
	if got := next(); got != "event: state-update" {
		t.Errorf("line = %q", got)
	}
	if got := next(); got != "data: second" {
		t.Errorf("line = %q", got)
	}
}
