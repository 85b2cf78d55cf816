package shared

// Player represents a player seated at a Euchre table.
type Player struct {
	ID    string `json:"id"`   // Unique identifier for the player
	Name  string `json:"name"` // Player's chosen name
	Seat  int    `json:"seat"` // Table position 0-3
	Bot   bool   `json:"bot"`  // Seat is played by a strategy instead of a client
	Cards []Card `json:"-"`    // Cards currently held by the player
}

// NewPlayer creates a new player with the given ID and name.
func NewPlayer(id, name string, seat int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Seat:  seat,
		Cards: []Card{},
	}
}

// AddCard adds a card to the player's hand.
func (p *Player) AddCard(card Card) {
	p.Cards = append(p.Cards, card)
}

// RemoveCard removes a card from the player's hand.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Cards {
		if c == card {
			p.Cards = append(p.Cards[:i], p.Cards[i+1:]...)
			return true
		}
	}
	return false
}

// HasCard reports whether the player holds card.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Cards {
		if c == card {
			return true
		}
	}
	return false
}

// HasEffectiveSuit reports whether the player can follow suit under trump.
func (p *Player) HasEffectiveSuit(suit, trump Suit) bool {
	for _, c := range p.Cards {
		if c.EffectiveSuit(trump) == suit {
			return true
		}
	}
	return false
}

// LegalPlays returns the cards from held that may be played into trick:
// cards following the led card's effective suit if any, otherwise everything.
func LegalPlays(held []Card, trick *Trick) []Card {
	lead, ok := trick.LeadCard()
	if !ok {
		return append([]Card(nil), held...)
	}
	trump := trick.Trump()
	ledSuit := lead.EffectiveSuit(trump)

	var follow []Card
	for _, c := range held {
		if c.EffectiveSuit(trump) == ledSuit {
			follow = append(follow, c)
		}
	}
	if len(follow) == 0 {
		return append([]Card(nil), held...)
	}
	return follow
}
