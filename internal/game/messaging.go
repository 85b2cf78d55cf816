package game

import (
	"log"

	"euchre-game/internal/protocol"
	"euchre-game/internal/shared"
)

// --- Messaging Helpers (Assume lock is held or called safely) ---

// broadcast sends a message to every human player in the game.
func (g *Game) broadcast(message []byte) {
	for i, player := range g.Players {
		if player != nil && g.bots[i] == nil {
			g.sendToPlayer(player.ID, message)
		}
	}
}

// sendToPlayer sends a message to a specific player by ID.
func (g *Game) sendToPlayer(playerID string, message []byte) {
	if g.sendMessage == nil {
		log.Printf("Game %s: Error - sendMessage callback is nil when sending to %s.", g.ID, playerID)
		return
	}
	g.sendMessage(playerID, message)
}

// sendErrorToPlayer sends an error message to a specific player.
func (g *Game) sendErrorToPlayer(playerID string, errorMsg string) {
	payload := protocol.ErrorPayload{Message: errorMsg}
	msgBytes, err := protocol.NewMessage(protocol.TypeError, payload)
	if err != nil {
		log.Printf("Game %s: Error creating error message for %s: %v", g.ID, playerID, err)
		return
	}
	g.sendToPlayer(playerID, msgBytes)
}

// broadcastError sends an error message to all players.
func (g *Game) broadcastError(errorMsg string) {
	payload := protocol.ErrorPayload{Message: errorMsg}
	msgBytes, err := protocol.NewMessage(protocol.TypeError, payload)
	if err != nil {
		log.Printf("Game %s: Error creating broadcast error message: %v", g.ID, err)
		return
	}
	g.broadcast(msgBytes)
}

// announceTrump tells everyone which suit is trump and who made it.
func (g *Game) announceTrump(orderedUp bool) {
	payload := protocol.TrumpSelectedPayload{
		Trump:     g.Trump,
		Bidder:    g.Bidder,
		OrderedUp: orderedUp,
	}
	msgBytes, _ := protocol.NewMessage(protocol.TypeTrumpSelected, payload)
	g.broadcast(msgBytes)
}

// broadcastGameState sends the public table state to all players.
func (g *Game) broadcastGameState() {
	var currentPlayerID string
	if shared.ValidSeat(g.PlayerTurnIndex) && g.Players[g.PlayerTurnIndex] != nil {
		currentPlayerID = g.Players[g.PlayerTurnIndex].ID
	}

	payload := protocol.GameStatePayload{
		CurrentPlayerID: currentPlayerID,
		Dealer:          g.Dealer,
		Trump:           g.Trump,
		CardsOnTable:    []shared.PlayedCard{},
		TeamZeroScore:   g.Teams[shared.TeamZero].Score,
		TeamOneScore:    g.Teams[shared.TeamOne].Score,
		GameState:       string(g.GameState),
	}
	if g.CurrentTrick != nil {
		payload.CardsOnTable = g.CurrentTrick.Plays()
	}
	if g.Hand != nil {
		payload.TeamZeroTricks = g.Hand.TricksWon(shared.TeamZero)
		payload.TeamOneTricks = g.Hand.TricksWon(shared.TeamOne)
	}
	msgBytes, _ := protocol.NewMessage(protocol.TypeGameState, payload)
	g.broadcast(msgBytes)
}

// notifyCurrentPlayerTurn prompts the seat to act, if it is a human.
func (g *Game) notifyCurrentPlayerTurn() {
	if !shared.ValidSeat(g.PlayerTurnIndex) || g.bots[g.PlayerTurnIndex] != nil {
		return
	}
	seat := g.PlayerTurnIndex
	currentPlayer := g.Players[seat]

	var msgType string
	var payload interface{}
	switch g.GameState {
	case OrderingUp, CallingTrump:
		round := 1
		if g.GameState == CallingTrump {
			round = 2
		}
		msgType = protocol.TypeBidTurn
		payload = protocol.BidTurnPayload{
			PlayerID: currentPlayer.ID,
			Seat:     seat,
			Round:    round,
			Upcard:   g.Upcard,
			IsDealer: seat == g.Dealer,
		}
	case Discarding:
		msgType = protocol.TypeDiscardRequest
		payload = protocol.DiscardRequestPayload{
			Upcard: g.Upcard,
			Hand:   currentPlayer.Cards,
		}
	case Playing:
		msgType = protocol.TypeYourTurn
		payload = protocol.YourTurnPayload{
			PlayerID:   currentPlayer.ID,
			ValidMoves: shared.LegalPlays(currentPlayer.Cards, g.CurrentTrick),
		}
	default:
		return
	}
	msgBytes, _ := protocol.NewMessage(msgType, payload)
	g.sendToPlayer(currentPlayer.ID, msgBytes)
}

func (g *Game) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(g.Players))
	for i, p := range g.Players {
		infos = append(infos, protocol.PlayerInfo{ID: p.ID, Name: p.Name, Seat: i, Bot: g.bots[i] != nil})
	}
	return infos
}

func (g *Game) teamInfos() []protocol.TeamInfo {
	infos := make([]protocol.TeamInfo, 0, len(g.Teams))
	for _, t := range g.Teams {
		infos = append(infos, protocol.TeamInfo{
			ID:     t.ID,
			Number: t.Number,
			Players: []protocol.PlayerInfo{
				{ID: t.Players[0].ID, Name: t.Players[0].Name, Seat: t.Players[0].Seat, Bot: t.Players[0].Bot},
				{ID: t.Players[1].ID, Name: t.Players[1].Name, Seat: t.Players[1].Seat, Bot: t.Players[1].Bot},
			},
			Score: t.Score,
		})
	}
	return infos
}

// --- Utility Helpers ---

// GetPlayerByID finds a player struct by their ID.
func (g *Game) GetPlayerByID(playerID string) *shared.Player {
	if i := g.GetPlayerIndex(playerID); i != -1 {
		return g.Players[i]
	}
	return nil
}

// GetPlayerIndex finds the seat (0-3) of a player by their ID. Returns -1 if not found.
func (g *Game) GetPlayerIndex(playerID string) int {
	for i, p := range g.Players {
		if p != nil && p.ID == playerID {
			return i
		}
	}
	return -1
}
