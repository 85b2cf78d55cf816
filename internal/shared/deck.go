package shared

import (
	"math/rand/v2"
)

const (
	CardsPerPlayer = 5
	KittySize      = 4
)

// Deck represents a collection of cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates the 24-card Euchre deck (9 through Ace in four suits).
func NewDeck() *Deck {
	cards := make([]Card, 0, len(Suits())*len(Faces()))
	for _, suit := range Suits() {
		for _, face := range Faces() {
			cards = append(cards, NewCard(suit, face))
		}
	}
	return &Deck{Cards: cards}
}

// Shuffle randomizes the order of cards in the deck. A nil r uses the
// package-level source.
func (d *Deck) Shuffle(r *rand.Rand) {
	swap := func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
	if r == nil {
		rand.Shuffle(len(d.Cards), swap)
		return
	}
	r.Shuffle(len(d.Cards), swap)
}

// Deal distributes cards to players from the top of the deck. The undealt
// cards stay in the deck and form the kitty. Returns nil if not enough cards.
func (d *Deck) Deal(numPlayers, cardsPerPlayer int) [][]Card {
	totalCardsNeeded := numPlayers * cardsPerPlayer
	if len(d.Cards) < totalCardsNeeded {
		return nil
	}

	dealt := make([][]Card, numPlayers)
	start := 0
	for i := 0; i < numPlayers; i++ {
		end := start + cardsPerPlayer
		hand := make([]Card, cardsPerPlayer)
		copy(hand, d.Cards[start:end])
		dealt[i] = hand
		start = end
	}

	d.Cards = append([]Card(nil), d.Cards[totalCardsNeeded:]...)
	return dealt
}
