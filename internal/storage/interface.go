package storage

import (
	"context"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Credentials stores player passwords for the life of the process
type Credentials interface {
	// SaveCredential stores a new credential, failing with
	// model.ErrUsernameExists if the username is taken
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, username string) (*model.Credential, error)
}

// StateStore holds the most recently published game state and server info
// for readers outside the controller
type StateStore interface {
	SaveSnapshot(ctx context.Context, snap model.Snapshot) error
	GetSnapshot(ctx context.Context) (*model.Snapshot, error)

	SaveServerInfo(ctx context.Context, info model.ServerInfo) error
	GetServerInfo(ctx context.Context) (*model.ServerInfo, error)
}

// Storage is everything the server persists
type Storage interface {
	Credentials
	StateStore
}
