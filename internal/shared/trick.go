package shared

import "fmt"

// PlayedCard stores a card along with the seat that played it.
type PlayedCard struct {
	Card Card `json:"card"`
	Seat int  `json:"seat"`
}

// TrickState tracks how far a trick has progressed.
type TrickState int

const (
	TrickEmpty TrickState = iota
	TrickInProgress
	TrickComplete
)

func (s TrickState) String() string {
	switch s {
	case TrickEmpty:
		return "Empty"
	case TrickInProgress:
		return "InProgress"
	case TrickComplete:
		return "Complete"
	}
	return fmt.Sprintf("TrickState(%d)", int(s))
}

// Trick accumulates the plays of one trick under a fixed trump suit and keeps
// track of the seat currently holding the best card.
type Trick struct {
	trump       Suit
	leadingSuit Suit
	plays       []PlayedCard
	winner      int // index into plays of the best card so far, -1 while empty
}

// NewTrick creates an empty trick.
func NewTrick(trump Suit) *Trick {
	return &Trick{
		trump:  trump,
		plays:  make([]PlayedCard, 0, NumPlayers),
		winner: -1,
	}
}

// RecordPlay adds a card played from seat. The first play fixes the leading suit.
// Suit-following is not checked here; callers validate legality before recording.
func (t *Trick) RecordPlay(seat int, card Card) error {
	if t.State() == TrickComplete {
		return fmt.Errorf("seat %d playing %s: %w", seat, card, ErrTrickComplete)
	}
	if !ValidSeat(seat) {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	for _, p := range t.plays {
		if p.Seat == seat {
			return fmt.Errorf("seat %d: %w", seat, ErrSeatAlreadyPlayed)
		}
		if p.Card == card {
			return fmt.Errorf("%s: %w", card, ErrDuplicateCard)
		}
	}

	if len(t.plays) == 0 {
		t.leadingSuit = card.Suit
	}
	t.plays = append(t.plays, PlayedCard{Card: card, Seat: seat})

	if t.winner == -1 || card.Beats(t.plays[t.winner].Card, t.trump, t.leadingSuit) {
		t.winner = len(t.plays) - 1
	}
	return nil
}

// State reports whether the trick is empty, in progress or complete.
func (t *Trick) State() TrickState {
	switch len(t.plays) {
	case 0:
		return TrickEmpty
	case NumPlayers:
		return TrickComplete
	}
	return TrickInProgress
}

// IsComplete returns true once every seat has played.
func (t *Trick) IsComplete() bool {
	return t.State() == TrickComplete
}

// Winner returns the seat holding the best card so far, or the final winner
// once the trick is complete.
func (t *Trick) Winner() (int, error) {
	p, err := t.WinningPlay()
	if err != nil {
		return -1, err
	}
	return p.Seat, nil
}

// WinningPlay returns the best play so far.
func (t *Trick) WinningPlay() (PlayedCard, error) {
	if t.winner == -1 {
		return PlayedCard{}, ErrUnresolvedTrick
	}
	return t.plays[t.winner], nil
}

// Trump returns the trump suit the trick is played under.
func (t *Trick) Trump() Suit {
	return t.trump
}

// LeadingSuit returns the suit of the first card played, or "" if empty.
func (t *Trick) LeadingSuit() Suit {
	return t.leadingSuit
}

// LeadCard returns the first card played.
func (t *Trick) LeadCard() (Card, bool) {
	if len(t.plays) == 0 {
		return Card{}, false
	}
	return t.plays[0].Card, true
}

// Leader returns the seat that led the trick, or -1 if empty.
func (t *Trick) Leader() int {
	if len(t.plays) == 0 {
		return -1
	}
	return t.plays[0].Seat
}

// Plays returns a copy of the plays in order.
func (t *Trick) Plays() []PlayedCard {
	out := make([]PlayedCard, len(t.plays))
	copy(out, t.plays)
	return out
}

// Equal reports whether two tricks hold the same plays under the same trump.
func (t *Trick) Equal(other *Trick) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.trump != other.trump || t.leadingSuit != other.leadingSuit || len(t.plays) != len(other.plays) {
		return false
	}
	for i := range t.plays {
		if t.plays[i] != other.plays[i] {
			return false
		}
	}
	return t.winner == other.winner
}

func (t *Trick) String() string {
	return fmt.Sprintf("Trick(trump:%s; lead:%s; plays:%v)", t.trump, t.leadingSuit, t.plays)
}
