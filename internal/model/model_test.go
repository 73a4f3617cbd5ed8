package model

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHexAndJSON(t *testing.T) {
	c := RGB(0xe6, 0x19, 0x4b)
	assert.Equal(t, "#e6194b", c.Hex())

	data, err := json.Marshal(User{Name: "alice", Color: c})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"alice","color":"#e6194b"}`, string(data))

	var u User
	require.NoError(t, json.Unmarshal(data, &u))
	assert.Equal(t, c, u.Color)

	assert.Error(t, json.Unmarshal([]byte(`"red"`), &c))
}

func TestParseGameMode(t *testing.T) {
	tests := []struct {
		input   string
		want    GameMode
		wantErr bool
	}{
		{"practice", ModePractice, false},
		{" Gating ", ModeGating, false},
		{"COMPETITION", ModeCompetition, false},
		{"", "", true},
		{"ranked", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGameMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOnlyCompetitionCountsScore(t *testing.T) {
	for _, m := range ValidGameModes() {
		assert.Equal(t, m == ModeCompetition, m.CountsScore(), string(m))
	}
}

func TestScoreTableRanked(t *testing.T) {
	s := ScoreTable{}
	s.AddWin("carol")
	s.AddWin("bob")
	s.AddWin("bob")
	s.AddWin("alice")

	assert.Equal(t, []string{"bob", "alice", "carol"}, s.Ranked())

	clone := s.Clone()
	clone.AddWin("alice")
	assert.Equal(t, uint64(1), s["alice"])
	assert.Equal(t, uint64(2), clone["alice"])
}

func TestSnapshotEqual(t *testing.T) {
	a := Snapshot{Kind: "counter", Data: json.RawMessage(`{"num":1}`)}
	assert.True(t, a.Equal(Snapshot{Kind: "counter", Data: json.RawMessage(`{"num":1}`)}))
	assert.False(t, a.Equal(Snapshot{Kind: "counter", Data: json.RawMessage(`{"num":2}`)}))
	assert.False(t, a.Equal(Snapshot{Kind: "gomoku", Data: json.RawMessage(`{"num":1}`)}))
}

func TestMoveResultIsGameOver(t *testing.T) {
	assert.True(t, MoveWon().IsGameOver())
	assert.True(t, MoveDrawn().IsGameOver())
	assert.False(t, MoveAccepted(PlayerTurn{}).IsGameOver())
	assert.False(t, MoveRejected(nil).IsGameOver())
	assert.Equal(t, "invalid_format", MoveMalformed(nil).Outcome.String())
}

func TestOutboxSendAndClose(t *testing.T) {
	ctx := context.Background()
	o := NewOutbox(1)

	require.NoError(t, o.Send(ctx, ToPlayer{}))

	// Full queue blocks until the context gives up
	tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, o.Send(tctx, ToPlayer{}), context.DeadlineExceeded)

	<-o.Messages()
	o.Close()
	o.Close()
	assert.ErrorIs(t, o.Send(ctx, ToPlayer{}), ErrPlayerChannelClosed)

	select {
	case <-o.Done():
	default:
		t.Fatal("done not closed")
	}
}

func TestOutboxCloseUnblocksSender(t *testing.T) {
	o := NewOutbox(0)
	errs := make(chan error, 1)
	go func() { errs <- o.Send(context.Background(), ToPlayer{}) }()

	o.Close()
	assert.ErrorIs(t, <-errs, ErrPlayerChannelClosed)
}
