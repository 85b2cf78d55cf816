package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// NumPlayers is the number of seats at a Euchre table and the number of
// plays in every trick.
const NumPlayers = 4

// TeamEnum represents the two partnerships at the table.
type TeamEnum int

const (
	TeamZero TeamEnum = 0 // seats 0 and 2 under the default seating
	TeamOne  TeamEnum = 1 // seats 1 and 3 under the default seating
)

func (t TeamEnum) String() string {
	switch t {
	case TeamZero:
		return "Team Zero"
	case TeamOne:
		return "Team One"
	}
	return fmt.Sprintf("TeamEnum(%d)", int(t))
}

// Other returns the opposing team.
func (t TeamEnum) Other() TeamEnum {
	if t == TeamZero {
		return TeamOne
	}
	return TeamZero
}

// Seating maps each seat index to its team. It is fixed for the life of a table.
type Seating [NumPlayers]TeamEnum

// DefaultSeating seats partners opposite each other.
func DefaultSeating() Seating {
	return Seating{TeamZero, TeamOne, TeamZero, TeamOne}
}

// NewSeating validates that teams splits the table into two pairs.
func NewSeating(teams [NumPlayers]TeamEnum) (Seating, error) {
	s := Seating(teams)
	if err := s.Validate(); err != nil {
		return Seating{}, err
	}
	return s, nil
}

// Validate reports ErrInvalidSeating unless each team holds exactly two seats.
// The zero Seating puts everyone on TeamZero and is invalid.
func (s Seating) Validate() error {
	counts := [2]int{}
	for seat, team := range s {
		if team != TeamZero && team != TeamOne {
			return fmt.Errorf("%w: seat %d has unknown team %d", ErrInvalidSeating, seat, team)
		}
		counts[team]++
	}
	if counts[TeamZero] != 2 || counts[TeamOne] != 2 {
		return fmt.Errorf("%w: got %d/%d", ErrInvalidSeating, counts[TeamZero], counts[TeamOne])
	}
	return nil
}

// TeamOf returns the team sitting in seat.
func (s Seating) TeamOf(seat int) TeamEnum {
	return s[seat]
}

// Members returns the seats belonging to team, in seat order.
func (s Seating) Members(team TeamEnum) []int {
	var seats []int
	for seat, t := range s {
		if t == team {
			seats = append(seats, seat)
		}
	}
	return seats
}

// Partner returns the other seat on the same team.
func (s Seating) Partner(seat int) int {
	for other, t := range s {
		if other != seat && t == s[seat] {
			return other
		}
	}
	return -1
}

// ValidSeat reports whether seat is a table position.
func ValidSeat(seat int) bool {
	return seat >= 0 && seat < NumPlayers
}

// Team represents a partnership at a table.
type Team struct {
	ID      string     `json:"id"`
	Number  TeamEnum   `json:"number"`
	Players [2]*Player `json:"players"`
	Score   int        `json:"score"` // Running total of hand points at this table
}

// NewTeam creates a new team with the given number and players.
// It generates a unique UUID for the team ID.
func NewTeam(number TeamEnum, player1, player2 *Player) *Team {
	return &Team{
		ID:      uuid.NewString(),
		Players: [2]*Player{player1, player2},
		Number:  number,
	}
}

// AddScore adds points to the team's running total.
func (t *Team) AddScore(points int) {
	t.Score += points
}
