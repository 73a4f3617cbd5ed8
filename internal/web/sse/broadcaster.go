package sse

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/web/components"
)

// Event names sent for observer updates
const (
	EventStateUpdate = "state-update"
	EventInfoUpdate  = "info-update"
)

// Renderer turns an observer update into event data
type Renderer interface {
	RenderState(ctx context.Context, s model.Snapshot) (string, error)
	RenderInfo(ctx context.Context, i model.ServerInfo) (string, error)
}

// HTMLRenderer renders the dashboard panels
type HTMLRenderer struct{}

func (HTMLRenderer) RenderState(ctx context.Context, s model.Snapshot) (string, error) {
	return renderComponent(ctx, components.StatePanel(s))
}

func (HTMLRenderer) RenderInfo(ctx context.Context, i model.ServerInfo) (string, error) {
	return renderComponent(ctx, components.InfoPanel(i))
}

func renderComponent(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// JSONRenderer sends the updates as JSON for programmatic subscribers
type JSONRenderer struct{}

func (JSONRenderer) RenderState(_ context.Context, s model.Snapshot) (string, error) {
	return marshal(s)
}

func (JSONRenderer) RenderInfo(_ context.Context, i model.ServerInfo) (string, error) {
	return marshal(i)
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Broadcaster is a display sink pushing rendered updates to a hub
type Broadcaster struct {
	hub      *Hub
	renderer Renderer
	logger   *slog.Logger
}

// NewBroadcaster creates a Broadcaster
func NewBroadcaster(hub *Hub, renderer Renderer, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "sse-broadcaster")),
	}
}

func (b *Broadcaster) StateChanged(s model.Snapshot) {
	if e, ok := b.StateEvent(context.Background(), s); ok {
		b.hub.BroadcastEvent(e.Name, e.Data)
	}
}

func (b *Broadcaster) InfoChanged(i model.ServerInfo) {
	if e, ok := b.InfoEvent(context.Background(), i); ok {
		b.hub.BroadcastEvent(e.Name, e.Data)
	}
}

// StateEvent renders s as a state-update event
func (b *Broadcaster) StateEvent(ctx context.Context, s model.Snapshot) (Event, bool) {
	data, err := b.renderer.RenderState(ctx, s)
	if err != nil {
		b.logger.Error("sse failed to render state", slog.String("kind", s.Kind), slog.Any("error", err))
		return Event{}, false
	}
	return Event{Name: EventStateUpdate, Data: data}, true
}

// InfoEvent renders i as an info-update event
func (b *Broadcaster) InfoEvent(ctx context.Context, i model.ServerInfo) (Event, bool) {
	data, err := b.renderer.RenderInfo(ctx, i)
	if err != nil {
		b.logger.Error("sse failed to render info", slog.Any("error", err))
		return Event{}, false
	}
	return Event{Name: EventInfoUpdate, Data: data}, true
}

// Latest is a source of the most recent updates
type Latest interface {
	State() (model.Snapshot, bool)
	Info() (model.ServerInfo, bool)
}

// Initial renders the updates held by latest, for a newly connected client
func (b *Broadcaster) Initial(ctx context.Context, latest Latest) []Event {
	var events []Event
	if info, ok := latest.Info(); ok {
		if e, ok := b.InfoEvent(ctx, info); ok {
			events = append(events, e)
		}
	}
	if state, ok := latest.State(); ok {
		if e, ok := b.StateEvent(ctx, state); ok {
			events = append(events, e)
		}
	}
	return events
}
