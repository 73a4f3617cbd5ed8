package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/storage"
)

// Store is a Redis-backed StateStore. Every save also publishes the value
// so other processes can follow the game live.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New connects to Redis and verifies the connection
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.StateStore = (*Store)(nil)

func (s *Store) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	return s.saveAndPublish(ctx, snapshotKey(), SnapshotChannel(), snap)
}

func (s *Store) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := s.get(ctx, snapshotKey(), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) SaveServerInfo(ctx context.Context, info model.ServerInfo) error {
	return s.saveAndPublish(ctx, infoKey(), InfoChannel(), info)
}

func (s *Store) GetServerInfo(ctx context.Context) (*model.ServerInfo, error) {
	var info model.ServerInfo
	if err := s.get(ctx, infoKey(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SubscribeSnapshots streams snapshots as they are published. The channel
// closes when ctx is done or the subscription fails.
func (s *Store) SubscribeSnapshots(ctx context.Context) (<-chan model.Snapshot, error) {
	sub := s.client.Subscribe(ctx, SnapshotChannel())
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan model.Snapshot)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var snap model.Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *Store) saveAndPublish(ctx context.Context, key, channel string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.StateTTL)
	pipe.Publish(ctx, channel, data)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) get(ctx context.Context, key string, v any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrStateNotFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}
