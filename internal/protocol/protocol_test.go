package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codechallenge-go/internal/model"
)

func TestEncodeAuth(t *testing.T) {
	assert.Equal(t, `{"auth":{"username":"user","password":"pass"}}`+"\n", EncodeAuth("user", "pass"))
}

func TestParseAuth(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Auth
		wantErr bool
	}{
		{name: "valid", line: `{"auth":{"username":"zeldo","password":"pw"}}`, want: Auth{Username: "zeldo", Password: "pw"}},
		{name: "trailing newline", line: `{"auth":{"username":"zeldo","password":"pw"}}` + "\r\n", want: Auth{Username: "zeldo", Password: "pw"}},
		{name: "not json", line: `hello`, wantErr: true},
		{name: "wrong key", line: `{"move":{"x":1}}`, wantErr: true},
		{name: "empty", line: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAuth(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrMalformedMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeServerMessages(t *testing.T) {
	assert.Equal(t, `{"error":{"reason":"invalid move"}}`+"\n", EncodeError(model.ClientErrInvalidMove))
	assert.Equal(t, `{"error":{"reason":"wrong password"}}`+"\n", EncodeError(model.ClientErrWrongPassword))
	assert.Equal(t, `{"game-over":{"reason":"winner zeldo"}}`+"\n", EncodeGameOver(model.GameOverReason{Winner: "zeldo"}))
	assert.Equal(t, `{"game-over":{"reason":"draw"}}`+"\n", EncodeGameOver(model.GameOverReason{}))
}

func TestParseServerMessage(t *testing.T) {
	msg, err := ParseServerMessage(`{"your-turn":{"num":3}}` + "\n")
	require.NoError(t, err)
	assert.JSONEq(t, `{"num":3}`, string(msg.YourTurn))

	msg, err = ParseServerMessage(EncodeError(model.ClientErrInvalidMessageFormat))
	require.NoError(t, err)
	assert.Equal(t, "invalid message format", msg.Error)

	msg, err = ParseServerMessage(EncodeGameOver(model.GameOverReason{}))
	require.NoError(t, err)
	assert.Equal(t, "draw", msg.GameOver)

	_, err = ParseServerMessage(`{"hello":1}`)
	assert.ErrorIs(t, err, model.ErrMalformedMessage)
}
