package protocol

import (
	"encoding/json"

	"euchre-game/internal/shared"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "join_game", "play_card")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// Client -> server message types.
const (
	TypeCreateGame = "create_game"
	TypeJoinGame   = "join_game"
	TypeOrderUp    = "order_up"
	TypePass       = "pass"
	TypeCallTrump  = "call_trump"
	TypeDiscard    = "discard"
	TypePlayCard   = "play_card"
	TypePing       = "ping"
)

// Server -> client message types.
const (
	TypePong           = "pong"
	TypeError          = "error"
	TypeGameCreated    = "game_created"
	TypeLobbyUpdate    = "lobby_update"
	TypeJoinError      = "join_error"
	TypeGameStart      = "game_start"
	TypeDealHand       = "deal_hand"
	TypeBidTurn        = "bid_turn"
	TypeTrumpSelected  = "trump_selected"
	TypeDiscardRequest = "discard_request"
	TypeYourTurn       = "your_turn"
	TypeCardPlayed     = "card_played"
	TypeTrickEnd       = "trick_end"
	TypeHandEnd        = "hand_end"
	TypeGameState      = "game_state_update"
	TypeGameOver       = "game_over"
	TypePlayerLeft     = "player_left"
)

// --- Client -> Server Payload Structs ---

type CreateGamePayload struct {
	Name string `json:"name"`
	Bots int    `json:"bots"` // Seats filled by computer players (0-3)
}

type JoinGamePayload struct {
	Name     string `json:"name"`
	GameCode string `json:"game_code"`
}

type CallTrumpPayload struct {
	Suit string `json:"suit"`
}

// CardPayload names a card for discard and play_card.
type CardPayload struct {
	Suit string `json:"suit"`
	Face string `json:"face"`
}

// --- Server -> Client Payload Structs ---

type GameCreatedPayload struct {
	GameCode string `json:"game_code"`
}

type LobbyUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
	Bots    int          `json:"bots"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
	Bot  bool   `json:"bot,omitempty"`
}

type TeamInfo struct {
	ID      string          `json:"id"`
	Number  shared.TeamEnum `json:"number"`
	Players []PlayerInfo    `json:"players"`
	Score   int             `json:"score"`
}

type GameStartPayload struct {
	GameID  string       `json:"game_id"`
	Players []PlayerInfo `json:"players"`
	Teams   []TeamInfo   `json:"teams"`
}

type DealHandPayload struct {
	HandNumber int           `json:"hand_number"`
	Dealer     int           `json:"dealer"`
	Upcard     shared.Card   `json:"upcard"`
	Hand       []shared.Card `json:"hand"`
}

type BidTurnPayload struct {
	PlayerID string      `json:"player_id"`
	Seat     int         `json:"seat"`
	Round    int         `json:"round"` // 1: order up the upcard, 2: name a suit
	Upcard   shared.Card `json:"upcard"`
	IsDealer bool        `json:"is_dealer"`
}

type TrumpSelectedPayload struct {
	Trump     shared.Suit `json:"trump"`
	Bidder    int         `json:"bidder"`
	OrderedUp bool        `json:"ordered_up"`
}

type DiscardRequestPayload struct {
	Upcard shared.Card   `json:"upcard"`
	Hand   []shared.Card `json:"hand"`
}

type YourTurnPayload struct {
	PlayerID   string        `json:"player_id"`
	ValidMoves []shared.Card `json:"valid_moves,omitempty"`
}

type CardPlayedPayload struct {
	PlayerID string      `json:"player_id"`
	Seat     int         `json:"seat"`
	Card     shared.Card `json:"card"`
}

type TrickEndPayload struct {
	Winner   shared.PlayedCard   `json:"winner"`
	WinnerID string              `json:"winner_id"`
	Plays    []shared.PlayedCard `json:"plays"`
	Number   int                 `json:"number"`
}

type HandEndPayload struct {
	HandNumber     int             `json:"hand_number"`
	Trump          shared.Suit     `json:"trump"`
	Bidder         int             `json:"bidder"`
	WinningTeam    shared.TeamEnum `json:"winning_team"`
	Points         int             `json:"points"`
	TeamZeroTricks int             `json:"team_zero_tricks"`
	TeamOneTricks  int             `json:"team_one_tricks"`
	Euchred        bool            `json:"euchred"`
}

type GameStatePayload struct {
	CurrentPlayerID string              `json:"current_player_id"`
	Dealer          int                 `json:"dealer"`
	Trump           shared.Suit         `json:"trump,omitempty"`
	CardsOnTable    []shared.PlayedCard `json:"cards_on_table"`
	TeamZeroScore   int                 `json:"team_zero_score"`
	TeamOneScore    int                 `json:"team_one_score"`
	TeamZeroTricks  int                 `json:"team_zero_tricks"`
	TeamOneTricks   int                 `json:"team_one_tricks"`
	GameState       string              `json:"game_state"`
}

type GameOverPayload struct {
	Reason        string `json:"reason"`
	TeamZeroScore int    `json:"team_zero_score"`
	TeamOneScore  int    `json:"team_one_score"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

// NewMessage marshals payload into a message envelope of msgType.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}

// Decode unmarshals the message payload into v.
func (m Message) Decode(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// CardFromPayload converts wire card fields into a card.
func CardFromPayload(p CardPayload) (shared.Card, error) {
	return shared.ParseCard(p.Suit, p.Face)
}
