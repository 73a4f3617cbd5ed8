package memory

import (
	"context"
	"sync"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	credentials map[string]*model.Credential
	snapshot    *model.Snapshot
	info        *model.ServerInfo
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		credentials: make(map[string]*model.Credential),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.credentials[cred.Username]; exists {
		return model.ErrUsernameExists
	}
	c := *cred
	s.credentials[cred.Username] = &c
	return nil
}

func (s *Storage) GetCredential(ctx context.Context, username string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[username]
	if !ok {
		return nil, model.ErrUsernameNotFound
	}
	c := *cred
	return &c, nil
}

// Published state operations

func (s *Storage) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snap
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, model.ErrStateNotFound
	}
	snap := *s.snapshot
	return &snap, nil
}

func (s *Storage) SaveServerInfo(ctx context.Context, info model.ServerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	info.Scores = info.Scores.Clone()
	s.info = &info
	return nil
}

func (s *Storage) GetServerInfo(ctx context.Context) (*model.ServerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return nil, model.ErrStateNotFound
	}
	info := *s.info
	info.Scores = info.Scores.Clone()
	return &info, nil
}
