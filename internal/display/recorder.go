package display

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/storage"
)

// DefaultRecorderQueue is the update backlog a Recorder holds before dropping
const DefaultRecorderQueue = 64

type update struct {
	state *model.Snapshot
	info  *model.ServerInfo
}

// Recorder writes updates to a StateStore from its own goroutine. When the
// store falls behind, new updates are dropped rather than queued.
type Recorder struct {
	store        storage.StateStore
	queue        chan update
	writeTimeout time.Duration
	logger       *slog.Logger
}

// NewRecorder creates a Recorder; call Run to start writing
func NewRecorder(store storage.StateStore, queueSize int, logger *slog.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultRecorderQueue
	}
	return &Recorder{
		store:        store,
		queue:        make(chan update, queueSize),
		writeTimeout: 5 * time.Second,
		logger:       logger.With(slog.String("component", "state-recorder")),
	}
}

func (r *Recorder) StateChanged(s model.Snapshot) {
	r.enqueue(update{state: &s})
}

func (r *Recorder) InfoChanged(i model.ServerInfo) {
	i.Scores = i.Scores.Clone()
	r.enqueue(update{info: &i})
}

func (r *Recorder) enqueue(u update) {
	select {
	case r.queue <- u:
	default:
		r.logger.Warn("state update dropped - recorder queue full")
	}
}

// Run writes queued updates until ctx is done
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u := <-r.queue:
			r.write(ctx, u)
		}
	}
}

func (r *Recorder) write(ctx context.Context, u update) {
	wctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	var err error
	switch {
	case u.state != nil:
		err = r.store.SaveSnapshot(wctx, *u.state)
	case u.info != nil:
		err = r.store.SaveServerInfo(wctx, *u.info)
	}
	if err != nil && ctx.Err() == nil {
		r.logger.Error("failed to record state", slog.String("error", err.Error()))
	}
}
