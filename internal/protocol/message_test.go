package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"euchre-game/internal/shared"
)

func TestNewMessageWithoutPayload(t *testing.T) {
	raw, err := NewMessage(TypePong, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong"}`, string(raw))
}

func TestNewMessageDecode(t *testing.T) {
	raw, err := NewMessage(TypeCardPlayed, CardPlayedPayload{
		PlayerID: "p1",
		Seat:     2,
		Card:     shared.NewCard(shared.Diamonds, shared.Jack),
	})
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, TypeCardPlayed, msg.Type)

	var payload CardPlayedPayload
	require.NoError(t, msg.Decode(&payload))
	assert.Equal(t, 2, payload.Seat)
	assert.Equal(t, shared.NewCard(shared.Diamonds, shared.Jack), payload.Card)
	assert.Contains(t, string(msg.Payload), `"suit":"Diamonds"`)
}

func TestCardFromPayload(t *testing.T) {
	card, err := CardFromPayload(CardPayload{Suit: "spades", Face: "10"})
	require.NoError(t, err)
	assert.Equal(t, shared.NewCard(shared.Spades, shared.Ten), card)

	_, err = CardFromPayload(CardPayload{Suit: "spades", Face: "7"})
	assert.ErrorIs(t, err, shared.ErrInvalidFace)
}
