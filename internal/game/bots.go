package game

import (
	"fmt"
	"log"

	"euchre-game/internal/shared"
	"euchre-game/internal/strategy"
)

// runBots lets bot seats act until a human must act or the table closes.
// Assumes lock is held.
func (g *Game) runBots() {
	for g.awaitingAction() {
		seat := g.PlayerTurnIndex
		bot := g.bots[seat]
		if bot == nil {
			return
		}
		if err := g.botAct(seat, bot); err != nil {
			log.Printf("Game %s: Bot at seat %d failed to act: %v", g.ID, seat, err)
			g.broadcastError("Internal server error: computer player failed.")
			g.endGame("bot failure")
			return
		}
	}
}

func (g *Game) awaitingAction() bool {
	switch g.GameState {
	case OrderingUp, CallingTrump, Discarding, Playing:
		return shared.ValidSeat(g.PlayerTurnIndex)
	}
	return false
}

// botAct asks the seat's strategy for one decision and applies it through the
// same paths human actions take. Assumes lock is held.
func (g *Game) botAct(seat int, bot strategy.Strategy) error {
	held := append([]shared.Card(nil), g.Players[seat].Cards...)

	switch g.GameState {
	case OrderingUp:
		isDealer := seat == g.Dealer
		dealerIsPartner := g.Seating.Partner(seat) == g.Dealer
		if bot.SelectKittyPickup(held, g.Upcard, isDealer, dealerIsPartner) {
			return g.orderUp(seat)
		}
		return g.pass(seat)

	case CallingTrump:
		suit, ok := bot.SelectTrump(held, g.Upcard.Suit, seat == g.Dealer)
		if !ok {
			return g.pass(seat)
		}
		return g.callTrump(seat, suit)

	case Discarding:
		return g.discard(seat, bot.ExchangeWithKitty(held, g.Upcard))

	case Playing:
		view := strategy.PlayView{
			Hand:   g.Hand,
			Trick:  g.CurrentTrick,
			Dealer: g.Dealer,
			Leader: g.CurrentTrick.Leader(),
		}
		if view.Leader == -1 {
			view.Leader = seat
		}
		return g.playCard(seat, bot.PlayCard(held, view))
	}
	return fmt.Errorf("%w: %s", ErrWrongState, g.GameState)
}
