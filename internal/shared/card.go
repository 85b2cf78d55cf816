package shared

import (
	"cmp"
	"fmt"
	"strings"
)

// Suit represents the suit of a card (e.g., Hearts, Diamonds, Clubs, Spades).
type Suit string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

// Face represents the rank printed on a card. Euchre plays with 9 through Ace.
type Face string

const (
	Nine  Face = "9"
	Ten   Face = "10"
	Jack  Face = "J"
	Queen Face = "Q"
	King  Face = "K"
	Ace   Face = "A"
)

// Card represents a single card in the Euchre deck. Whether a card is trump
// depends on the hand being played, so it is not stored on the card.
type Card struct {
	Suit Suit `json:"suit"` // The suit of the card
	Face Face `json:"face"` // The face of the card
}

// Base ordering of faces, used only when no bower is involved.
var faceOrder = map[Face]int{
	Nine:  0,
	Ten:   1,
	Jack:  2,
	Queen: 3,
	King:  4,
	Ace:   5,
}

var faceNames = map[Face]string{
	Nine:  "Nine",
	Ten:   "Ten",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
	Ace:   "Ace",
}

// Arbitrary suit precedence. Only breaks ties between two non-trump cards
// that cannot affect who wins a trick.
var suitOrder = map[Suit]int{
	Clubs:    0,
	Diamonds: 1,
	Hearts:   2,
	Spades:   3,
}

// Trump ranks for the two bowers, above every face rank.
const (
	leftBowerRank  = 7
	rightBowerRank = 8
)

// Suits returns the four suits in a fixed order.
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// Faces returns the six faces from lowest to highest base rank.
func Faces() []Face {
	return []Face{Nine, Ten, Jack, Queen, King, Ace}
}

// Partner returns the suit of the same color. The mapping is its own inverse.
func (s Suit) Partner() Suit {
	switch s {
	case Hearts:
		return Diamonds
	case Diamonds:
		return Hearts
	case Clubs:
		return Spades
	case Spades:
		return Clubs
	}
	return ""
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	_, ok := suitOrder[s]
	return ok
}

// Rank returns the base rank of the face (9 lowest, Ace highest).
func (f Face) Rank() int {
	return faceOrder[f]
}

// Valid reports whether f is one of the six Euchre faces.
func (f Face) Valid() bool {
	_, ok := faceOrder[f]
	return ok
}

// NewCard creates a card value.
func NewCard(suit Suit, face Face) Card {
	return Card{Suit: suit, Face: face}
}

// IsRightBower reports whether the card is the Jack of the trump suit.
func (c Card) IsRightBower(trump Suit) bool {
	return c.Face == Jack && c.Suit == trump
}

// IsLeftBower reports whether the card is the Jack of trump's partner suit.
func (c Card) IsLeftBower(trump Suit) bool {
	return c.Face == Jack && c.Suit == trump.Partner()
}

// IsTrump reports whether the card belongs to the trump suit for this hand,
// counting the left bower.
func (c Card) IsTrump(trump Suit) bool {
	return c.Suit == trump || c.IsLeftBower(trump)
}

// EffectiveSuit returns the suit the card follows under trump. The left bower
// follows trump, every other card follows its printed suit.
func (c Card) EffectiveSuit(trump Suit) Suit {
	if c.IsTrump(trump) {
		return trump
	}
	return c.Suit
}

func (c Card) trumpRank(trump Suit) int {
	switch {
	case c.IsRightBower(trump):
		return rightBowerRank
	case c.IsLeftBower(trump):
		return leftBowerRank
	}
	return c.Face.Rank()
}

// Compare orders two cards under a trump suit and the suit led in the trick.
// It returns -1 if c ranks below other, +1 if above and 0 only for identical cards.
//
// Trump beats non-trump. Among trump the right bower is highest, then the left
// bower, then the remaining trump by face. Among non-trump a lead-suit card beats
// an off-suit card. Two non-trump cards that are both (or neither) of the lead
// suit are ordered by face and then by an arbitrary suit precedence; that order
// never decides a trick and exists only to keep Compare total.
func (c Card) Compare(other Card, trump, lead Suit) int {
	cTrump, oTrump := c.IsTrump(trump), other.IsTrump(trump)
	switch {
	case cTrump && !oTrump:
		return 1
	case !cTrump && oTrump:
		return -1
	case cTrump && oTrump:
		return cmp.Compare(c.trumpRank(trump), other.trumpRank(trump))
	}

	cLead, oLead := c.Suit == lead, other.Suit == lead
	switch {
	case cLead && !oLead:
		return 1
	case !cLead && oLead:
		return -1
	}

	if r := cmp.Compare(c.Face.Rank(), other.Face.Rank()); r != 0 {
		return r
	}
	return cmp.Compare(suitOrder[c.Suit], suitOrder[other.Suit])
}

// Beats reports whether c outranks other under trump and the lead suit.
func (c Card) Beats(other Card, trump, lead Suit) bool {
	return c.Compare(other, trump, lead) > 0
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", faceNames[c.Face], c.Suit)
}

// ParseSuit matches a suit name case-insensitively.
func ParseSuit(s string) (Suit, error) {
	for _, suit := range Suits() {
		if strings.EqualFold(string(suit), strings.TrimSpace(s)) {
			return suit, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSuit, s)
}

// ParseFace matches a face symbol ("9", "10", "J", "Q", "K", "A").
func ParseFace(s string) (Face, error) {
	f := Face(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFace, s)
	}
	return f, nil
}

// ParseCard builds a card from wire values.
func ParseCard(suit, face string) (Card, error) {
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	f, err := ParseFace(face)
	if err != nil {
		return Card{}, err
	}
	return NewCard(s, f), nil
}
