package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerIsInvolutionWithoutFixedPoint(t *testing.T) {
	for _, s := range Suits() {
		assert.NotEqual(t, s, s.Partner(), "suit %s", s)
		assert.Equal(t, s, s.Partner().Partner(), "suit %s", s)
	}
}

func TestExactlySixTrumpCards(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck.Cards, 24)

	for _, trump := range Suits() {
		var trumps []Card
		for _, c := range deck.Cards {
			if c.IsTrump(trump) {
				trumps = append(trumps, c)
			}
		}
		assert.Len(t, trumps, 6, "trump %s", trump)
		assert.Contains(t, trumps, NewCard(trump.Partner(), Jack))
		for _, f := range Faces() {
			assert.Contains(t, trumps, NewCard(trump, f))
		}
	}
}

func TestLeftBowerIsExplicitBool(t *testing.T) {
	assert.True(t, NewCard(Clubs, Jack).IsLeftBower(Spades))
	assert.False(t, NewCard(Clubs, Queen).IsLeftBower(Spades))
	assert.False(t, NewCard(Hearts, Jack).IsLeftBower(Spades))
	assert.False(t, NewCard(Spades, Jack).IsLeftBower(Spades))
	assert.True(t, NewCard(Spades, Jack).IsRightBower(Spades))
}

func TestEffectiveSuit(t *testing.T) {
	assert.Equal(t, Hearts, NewCard(Diamonds, Jack).EffectiveSuit(Hearts))
	assert.Equal(t, Diamonds, NewCard(Diamonds, Queen).EffectiveSuit(Hearts))
	assert.Equal(t, Clubs, NewCard(Clubs, Jack).EffectiveSuit(Hearts))
}

func TestTrumpLadder(t *testing.T) {
	for _, trump := range Suits() {
		ladder := []Card{
			NewCard(trump, Jack),
			NewCard(trump.Partner(), Jack),
			NewCard(trump, Ace),
			NewCard(trump, King),
			NewCard(trump, Queen),
			NewCard(trump, Ten),
			NewCard(trump, Nine),
		}
		for _, lead := range Suits() {
			for i := range ladder {
				for j := i + 1; j < len(ladder); j++ {
					assert.True(t, ladder[i].Beats(ladder[j], trump, lead),
						"trump %s lead %s: %s should beat %s", trump, lead, ladder[i], ladder[j])
					assert.Equal(t, -1, ladder[j].Compare(ladder[i], trump, lead))
				}
			}
		}
	}
}

func TestTrumpBeatsEveryNonTrump(t *testing.T) {
	deck := NewDeck()
	for _, trump := range Suits() {
		for _, lead := range Suits() {
			for _, a := range deck.Cards {
				for _, b := range deck.Cards {
					if a.IsTrump(trump) && !b.IsTrump(trump) {
						assert.True(t, a.Beats(b, trump, lead), "%s vs %s trump %s", a, b, trump)
					}
				}
			}
		}
	}

	assert.True(t, NewCard(Spades, Nine).Beats(NewCard(Hearts, Ace), Spades, Hearts))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Card
		trump    Suit
		lead     Suit
		expected int
	}{
		{"lead suit beats off suit", NewCard(Hearts, Nine), NewCard(Clubs, Ace), Spades, Hearts, 1},
		{"off suit loses to lead suit", NewCard(Diamonds, Ace), NewCard(Hearts, Ten), Spades, Hearts, -1},
		{"lead suit by face", NewCard(Hearts, Ace), NewCard(Hearts, King), Spades, Hearts, 1},
		{"non-trump jack by face", NewCard(Hearts, Jack), NewCard(Hearts, Queen), Spades, Hearts, -1},
		{"left bower beats trump ace", NewCard(Clubs, Jack), NewCard(Spades, Ace), Spades, Hearts, 1},
		{"right bower beats left bower", NewCard(Spades, Jack), NewCard(Clubs, Jack), Spades, Clubs, 1},
		{"left bower led as trump beats lead-suit ace", NewCard(Clubs, Jack), NewCard(Clubs, Ace), Spades, Clubs, 1},
		{"identical cards", NewCard(Hearts, Ten), NewCard(Hearts, Ten), Spades, Hearts, 0},
		{"two off-suit cards fall back to face", NewCard(Clubs, King), NewCard(Diamonds, Ten), Spades, Hearts, 1},
		{"two off-suit cards of equal face use suit precedence", NewCard(Clubs, King), NewCard(Diamonds, King), Spades, Hearts, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b, tt.trump, tt.lead))
			assert.Equal(t, -tt.expected, tt.b.Compare(tt.a, tt.trump, tt.lead))
		})
	}
}

func TestCompareIsTotalOverDistinctCards(t *testing.T) {
	deck := NewDeck()
	for _, trump := range Suits() {
		for _, lead := range Suits() {
			for i, a := range deck.Cards {
				for j, b := range deck.Cards {
					if i == j {
						continue
					}
					r := a.Compare(b, trump, lead)
					require.NotZero(t, r, "%s vs %s", a, b)
					require.Equal(t, -r, b.Compare(a, trump, lead))
				}
			}
		}
	}
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("hearts", "j")
	require.NoError(t, err)
	assert.Equal(t, NewCard(Hearts, Jack), c)
	assert.Equal(t, "Jack of Hearts", c.String())

	_, err = ParseCard("Stars", "J")
	assert.ErrorIs(t, err, ErrInvalidSuit)

	_, err = ParseCard("Hearts", "2")
	assert.ErrorIs(t, err, ErrInvalidFace)
}
