package database

import "euchre-game/internal/shared"

// HandResult is one scored hand as stored in the results table.
type HandResult struct {
	ID             string          `json:"id"`
	GameID         string          `json:"game_id"`
	GameCode       string          `json:"game_code"`
	HandNumber     int             `json:"hand_number"`
	CreatedAt      string          `json:"created_at"`
	Dealer         int             `json:"dealer"`
	Bidder         int             `json:"bidder"`
	Trump          shared.Suit     `json:"trump"`
	WinningTeam    shared.TeamEnum `json:"winning_team"`
	Points         int             `json:"points"`
	TeamZeroTricks int             `json:"team_zero_tricks"`
	TeamOneTricks  int             `json:"team_one_tricks"`
	Player1        string          `json:"player1"`
	Player2        string          `json:"player2"`
	Player3        string          `json:"player3"`
	Player4        string          `json:"player4"`
	Tricks         []TrickResult   `json:"tricks"`
}

// TrickResult records the plays of one trick and who took it.
type TrickResult struct {
	Winner int                 `json:"winner"`
	Plays  []shared.PlayedCard `json:"plays"`
}
