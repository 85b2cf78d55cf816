package shared

import "fmt"

const (
	NumTricks          = 5 // tricks played in a hand
	NumTricksToWinHand = 3 // tricks a team needs to take the hand
)

// Hand collects the five tricks played under one trump suit and scores them.
type Hand struct {
	trump       Suit
	bidder      int
	seating     Seating
	tricks      []*Trick
	winningTeam TeamEnum
	points      int
	scored      bool
}

// NewHand starts a hand for the seat that named trump.
func NewHand(bidder int, trump Suit, seating Seating) (*Hand, error) {
	if !ValidSeat(bidder) {
		return nil, fmt.Errorf("%w: bidder %d", ErrInvalidSeat, bidder)
	}
	if !trump.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSuit, trump)
	}
	if err := seating.Validate(); err != nil {
		return nil, err
	}
	return &Hand{
		trump:   trump,
		bidder:  bidder,
		seating: seating,
		tricks:  make([]*Trick, 0, NumTricks),
	}, nil
}

// AddTrick appends a played trick. Scoring checks that each trick has a winner.
func (h *Hand) AddTrick(trick *Trick) error {
	if trick == nil {
		return ErrNilTrick
	}
	if len(h.tricks) >= NumTricks {
		return fmt.Errorf("%w: already holding %d", ErrHandCapacity, len(h.tricks))
	}
	if trick.Trump() != h.trump {
		return fmt.Errorf("%w: trick %s, hand %s", ErrTrumpMismatch, trick.Trump(), h.trump)
	}
	h.tricks = append(h.tricks, trick)
	return nil
}

// Score tallies the tricks and records the winning team and its points.
// A hand is scored once.
func (h *Hand) Score() error {
	if h.scored {
		return ErrHandAlreadyScored
	}
	if len(h.tricks) != NumTricks {
		return fmt.Errorf("%w: expected %d, saw %d", ErrTrickCountMismatch, NumTricks, len(h.tricks))
	}

	won := 0
	for i, trick := range h.tricks {
		seat, err := trick.Winner()
		if err != nil {
			return fmt.Errorf("trick %d: %w", i+1, ErrUnscoredTrick)
		}
		if h.seating.TeamOf(seat) == TeamZero {
			won++
		}
	}

	winner := TeamZero
	if won < NumTricksToWinHand {
		winner = TeamOne
		// count is kept from the winning team's side
		won = NumTricks - won
	}

	h.winningTeam = winner
	h.points = calcPoints(won, h.seating.TeamOf(h.bidder) == winner)
	h.scored = true
	return nil
}

// calcPoints converts tricks taken by the winning team into hand points.
// Makers taking 3 or 4 score 1; a march or a euchre scores 2.
func calcPoints(tricksWon int, bidderWon bool) int {
	switch {
	case tricksWon < NumTricksToWinHand:
		return 0
	case tricksWon == NumTricks || !bidderWon:
		return 2
	}
	return 1
}

// WinningTeam returns the team that took the hand.
func (h *Hand) WinningTeam() (TeamEnum, error) {
	if !h.scored {
		return 0, ErrHandNotScored
	}
	return h.winningTeam, nil
}

// Points returns the points won, 0 until the hand is scored.
func (h *Hand) Points() int {
	return h.points
}

// Scored reports whether Score has completed.
func (h *Hand) Scored() bool {
	return h.scored
}

// Euchred reports whether the defending team took the hand.
func (h *Hand) Euchred() bool {
	return h.scored && h.winningTeam == h.seating.TeamOf(h.bidder).Other()
}

// TricksWon counts resolved tricks taken by team.
func (h *Hand) TricksWon(team TeamEnum) int {
	n := 0
	for _, trick := range h.tricks {
		if seat, err := trick.Winner(); err == nil && h.seating.TeamOf(seat) == team {
			n++
		}
	}
	return n
}

func (h *Hand) Trump() Suit {
	return h.trump
}

func (h *Hand) Bidder() int {
	return h.bidder
}

func (h *Hand) Seating() Seating {
	return h.seating
}

// Tricks returns the tricks added so far.
func (h *Hand) Tricks() []*Trick {
	out := make([]*Trick, len(h.tricks))
	copy(out, h.tricks)
	return out
}

// Equal compares trump, bidder, outcome and every trick in order.
func (h *Hand) Equal(other *Hand) bool {
	if h == nil || other == nil {
		return h == other
	}
	if h.trump != other.trump || h.bidder != other.bidder ||
		h.winningTeam != other.winningTeam || h.points != other.points ||
		h.scored != other.scored || len(h.tricks) != len(other.tricks) {
		return false
	}
	for i := range h.tricks {
		if !h.tricks[i].Equal(other.tricks[i]) {
			return false
		}
	}
	return true
}

func (h *Hand) String() string {
	return fmt.Sprintf("Hand(trump:%s; bidder:%d; winning_team:%d; points:%d; tricks:%v)",
		h.trump, h.bidder, h.winningTeam, h.points, h.tricks)
}
