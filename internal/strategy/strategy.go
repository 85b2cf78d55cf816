// Package strategy defines how a seat makes decisions during a hand.
package strategy

import "euchre-game/internal/shared"

// PlayView is what a seat can see when choosing a card.
type PlayView struct {
	Hand   *shared.Hand  // tricks completed so far this hand
	Trick  *shared.Trick // trick being played
	Dealer int           // seat of the dealer
	Leader int           // seat that leads the trick
}

// Strategy makes the decisions for one seat. The game owns the cards; held is
// always a copy of the seat's current cards.
type Strategy interface {
	// ExchangeWithKitty is called on the dealer after trump is ordered up.
	// It returns the card to discard, either one of held or kitty itself.
	ExchangeWithKitty(held []shared.Card, kitty shared.Card) shared.Card

	// PlayCard returns the card to play. It must be one of held and follow
	// suit when possible.
	PlayCard(held []shared.Card, view PlayView) shared.Card

	// SelectKittyPickup decides whether to order the dealer to pick up the
	// face-up kitty card, making its suit trump.
	SelectKittyPickup(held []shared.Card, kitty shared.Card, isDealer, dealerIsPartner bool) bool

	// SelectTrump names trump in the second round. The passed suit may not be
	// chosen. The dealer must name a suit.
	SelectTrump(held []shared.Card, passed shared.Suit, isDealer bool) (shared.Suit, bool)
}
