package controller

import "github.com/mcoot/codechallenge-go/internal/model"

// Observer receives the controller's published state. Calls are made on
// the controller's goroutine and must not block.
type Observer interface {
	StateChanged(snapshot model.Snapshot)
	InfoChanged(info model.ServerInfo)
}

// NopObserver discards everything
type NopObserver struct{}

func (NopObserver) StateChanged(model.Snapshot)  {}
func (NopObserver) InfoChanged(model.ServerInfo) {}
