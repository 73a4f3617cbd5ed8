package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codechallenge-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredential() {
	cred := &model.Credential{Username: "alice", PasswordHash: "hash", CreatedAt: time.Now()}
	s.Require().NoError(s.storage.SaveCredential(s.ctx, cred))

	got, err := s.storage.GetCredential(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash", got.PasswordHash)
}

func (s *StorageSuite) TestGetCredentialNotFound() {
	_, err := s.storage.GetCredential(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUsernameNotFound)
}

func (s *StorageSuite) TestSaveCredentialRejectsDuplicate() {
	s.Require().NoError(s.storage.SaveCredential(s.ctx, &model.Credential{Username: "alice", PasswordHash: "one"}))

	err := s.storage.SaveCredential(s.ctx, &model.Credential{Username: "alice", PasswordHash: "two"})
	s.ErrorIs(err, model.ErrUsernameExists)

	got, _ := s.storage.GetCredential(s.ctx, "alice")
	s.Equal("one", got.PasswordHash)
}

// Published state tests

func (s *StorageSuite) TestSnapshotNotFoundBeforeSave() {
	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrStateNotFound)

	_, err = s.storage.GetServerInfo(s.ctx)
	s.ErrorIs(err, model.ErrStateNotFound)
}

func (s *StorageSuite) TestSaveSnapshotReplacesPrevious() {
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, model.Snapshot{Kind: "counter", Data: json.RawMessage(`{"num":1}`)}))
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, model.Snapshot{Kind: "counter", Data: json.RawMessage(`{"num":2}`)}))

	got, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.JSONEq(`{"num":2}`, string(got.Data))
}

func (s *StorageSuite) TestServerInfoScoresAreCopied() {
	scores := model.ScoreTable{"alice": 1}
	s.Require().NoError(s.storage.SaveServerInfo(s.ctx, model.ServerInfo{Mode: model.ModeCompetition, Scores: scores}))
	scores.AddWin("alice")

	got, err := s.storage.GetServerInfo(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), got.Scores["alice"])
	s.Equal(model.ModeCompetition, got.Mode)
}
