package strategy

import (
	"math/rand/v2"

	"euchre-game/internal/shared"
)

// DefaultActionProb is the chance a Random seat orders up or calls trump when offered.
const DefaultActionProb = 0.25

// Random picks legal cards and bidding actions at random.
type Random struct {
	ActionProb float64
	rng        *rand.Rand
}

// NewRandom creates a random strategy. A nil rng uses a fresh unseeded source.
func NewRandom(actionProb float64, rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Random{ActionProb: actionProb, rng: rng}
}

// ExchangeWithKitty discards one of the held cards at random and keeps the kitty card.
func (r *Random) ExchangeWithKitty(held []shared.Card, kitty shared.Card) shared.Card {
	if len(held) == 0 {
		return kitty
	}
	return held[r.rng.IntN(len(held))]
}

// PlayCard plays a random card among those that follow suit.
func (r *Random) PlayCard(held []shared.Card, view PlayView) shared.Card {
	legal := shared.LegalPlays(held, view.Trick)
	return legal[r.rng.IntN(len(legal))]
}

func (r *Random) SelectKittyPickup(held []shared.Card, kitty shared.Card, isDealer, dealerIsPartner bool) bool {
	return r.rng.Float64() < r.ActionProb
}

// SelectTrump names a random suit other than the passed one. The dealer is
// stuck and always names one.
func (r *Random) SelectTrump(held []shared.Card, passed shared.Suit, isDealer bool) (shared.Suit, bool) {
	if !isDealer && r.rng.Float64() >= r.ActionProb {
		return "", false
	}
	var options []shared.Suit
	for _, s := range shared.Suits() {
		if s != passed {
			options = append(options, s)
		}
	}
	return options[r.rng.IntN(len(options))], true
}
