package server

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"

	"euchre-game/internal/game"
	"euchre-game/internal/protocol"
	"euchre-game/internal/shared"
	"euchre-game/internal/strategy"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const gameCodeLength = 5 // Length of the unique game code

// MaxBots is the most computer players a lobby may ask for. The creator always holds a seat.
const MaxBots = shared.NumPlayers - 1

// lobby holds the humans waiting at a table and how many seats go to bots.
type lobby struct {
	clients []*Client
	bots    int
}

func (l *lobby) seatsTaken() int {
	return len(l.clients) + l.bots
}

// Hub manages active WebSocket connections, lobbies, and game rooms.
type Hub struct {
	clients        map[*Client]bool
	lobbies        map[string]*lobby     // Map game code to the lobby waiting for players
	games          map[string]*game.Game // Map game code to game instance
	clientToGame   map[*Client]string    // Map client to game code (lobby or active game)
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	lobbyMu        sync.RWMutex
	gameMu         sync.RWMutex
	recorder       game.Recorder // receives every scored hand, may be nil
	botActionProb  float64
}

// NewHub creates a new Hub instance. Scored hands are passed to recorder when it is non-nil.
func NewHub(recorder game.Recorder, botActionProb float64) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		lobbies:        make(map[string]*lobby),
		games:          make(map[string]*game.Game),
		clientToGame:   make(map[*Client]string),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		recorder:       recorder,
		botActionProb:  botActionProb,
	}
}

// generateGameCode creates a unique alphanumeric game code.
func (h *Hub) generateGameCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		var sb strings.Builder
		for i := 0; i < gameCodeLength; i++ {
			sb.WriteByte(letters[rand.IntN(len(letters))])
		}
		code := sb.String()

		h.lobbyMu.RLock()
		_, lobbyExists := h.lobbies[code]
		h.lobbyMu.RUnlock()

		h.gameMu.RLock()
		_, gameExists := h.games[code]
		h.gameMu.RUnlock()

		if !lobbyExists && !gameExists {
			return code
		}
		log.Printf("Generated game code %s collided, retrying...", code)
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.removeClient(client)

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

// removeClient drops a connection and tells its lobby or game.
func (h *Hub) removeClient(client *Client) {
	h.clientMu.Lock()
	gameCode, inGameOrLobby := h.clientToGame[client]
	_, clientExists := h.clients[client]
	if clientExists {
		delete(h.clients, client)
		delete(h.clientToGame, client)
		close(client.send)
		log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
	}
	h.clientMu.Unlock()

	if !inGameOrLobby {
		if clientExists {
			log.Printf("Client %s disconnected before joining/creating a game.", client.ID)
		}
		return
	}

	h.lobbyMu.Lock()
	if l, ok := h.lobbies[gameCode]; ok {
		remaining := l.clients[:0]
		for _, c := range l.clients {
			if c != client {
				remaining = append(remaining, c)
			}
		}
		l.clients = remaining
		if len(remaining) == 0 {
			delete(h.lobbies, gameCode)
			h.lobbyMu.Unlock()
			log.Printf("Client %s left lobby %s. Lobby deleted.", client.ID, gameCode)
			return
		}
		h.lobbyMu.Unlock()
		log.Printf("Client %s removed from lobby %s.", client.ID, gameCode)
		h.broadcastLobbyUpdate(gameCode)
		return
	}
	h.lobbyMu.Unlock()

	h.gameMu.Lock()
	gameInstance, gameExists := h.games[gameCode]
	if gameExists && !h.hasClientsIn(gameCode) {
		delete(h.games, gameCode)
		log.Printf("Last player left game %s. Game removed.", gameCode)
	}
	h.gameMu.Unlock()

	if !gameExists {
		log.Printf("Client %s disconnected but was mapped to non-existent game/lobby code %s", client.ID, gameCode)
		return
	}
	log.Printf("Client %s was in game %s. Notifying game.", client.ID, gameCode)
	go gameInstance.HandlePlayerDisconnect(client.ID)
}

func (h *Hub) hasClientsIn(gameCode string) bool {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	for _, code := range h.clientToGame {
		if code == gameCode {
			return true
		}
	}
	return false
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case protocol.TypeCreateGame:
		h.handleCreateGame(client, msg)
	case protocol.TypeJoinGame:
		h.handleJoinGame(client, msg)
	case protocol.TypeOrderUp, protocol.TypePass, protocol.TypeCallTrump, protocol.TypeDiscard, protocol.TypePlayCard:
		h.handleGameAction(client, msg)
	case protocol.TypePing:
		pongMsg, _ := protocol.NewMessage(protocol.TypePong, nil)
		h.sendMessageToClient(client.ID, pongMsg)
	default:
		log.Printf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// handleCreateGame opens a lobby. Bot seats are reserved at creation.
func (h *Hub) handleCreateGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadyInGame {
		log.Printf("Client %s tried to create game but is already associated with one.", client.ID)
		h.sendErrorToClient(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.CreateGamePayload
	if err := msg.Decode(&payload); err != nil {
		log.Printf("Error unmarshalling create_game payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid create_game message format.")
		return
	}
	if payload.Name == "" {
		log.Printf("Client %s tried to create game with an empty name.", client.ID)
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}
	if payload.Bots < 0 || payload.Bots > MaxBots {
		log.Printf("Client %s asked for %d bots.", client.ID, payload.Bots)
		h.sendErrorToClient(client, fmt.Sprintf("Bots must be between 0 and %d.", MaxBots))
		return
	}

	gameCode := h.generateGameCode()

	h.clientMu.Lock()
	client.Name = payload.Name
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	h.lobbyMu.Lock()
	h.lobbies[gameCode] = &lobby{clients: []*Client{client}, bots: payload.Bots}
	h.lobbyMu.Unlock()

	log.Printf("Client %s (%s) created lobby %s with %d bot(s)", client.ID, client.Name, gameCode, payload.Bots)

	createdMsg, _ := protocol.NewMessage(protocol.TypeGameCreated, protocol.GameCreatedPayload{GameCode: gameCode})
	h.sendMessageToClient(client.ID, createdMsg)

	h.broadcastLobbyUpdate(gameCode)
	h.tryStartGame(gameCode)
}

// handleJoinGame handles a request to join an existing game lobby.
func (h *Hub) handleJoinGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadyInGame {
		log.Printf("Client %s tried to join game but is already associated with one.", client.ID)
		h.sendJoinError(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.JoinGamePayload
	if err := msg.Decode(&payload); err != nil {
		log.Printf("Error unmarshalling join_game payload from client %s: %v", client.ID, err)
		h.sendJoinError(client, "Invalid join_game message format.")
		return
	}
	if payload.Name == "" {
		h.sendJoinError(client, "Name cannot be empty.")
		return
	}
	if payload.GameCode == "" {
		h.sendJoinError(client, "Game code cannot be empty.")
		return
	}
	gameCode := strings.ToUpper(payload.GameCode)

	h.lobbyMu.Lock()
	l, lobbyExists := h.lobbies[gameCode]
	if !lobbyExists {
		h.lobbyMu.Unlock()
		log.Printf("Client %s tried to join non-existent lobby %s", client.ID, gameCode)
		h.sendJoinError(client, "Game code not found.")
		return
	}
	if l.seatsTaken() >= shared.NumPlayers {
		h.lobbyMu.Unlock()
		log.Printf("Client %s tried to join full lobby %s", client.ID, gameCode)
		h.sendJoinError(client, "Game lobby is full.")
		return
	}
	for _, existing := range l.clients {
		if existing.Name == payload.Name {
			h.lobbyMu.Unlock()
			log.Printf("Client %s tried to join lobby %s with duplicate name '%s'", client.ID, gameCode, payload.Name)
			h.sendJoinError(client, "Name already taken in this lobby.")
			return
		}
	}
	client.Name = payload.Name
	l.clients = append(l.clients, client)
	size := l.seatsTaken()
	h.lobbyMu.Unlock()

	h.clientMu.Lock()
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) joined lobby %s. Seats taken: %d", client.ID, client.Name, gameCode, size)

	h.broadcastLobbyUpdate(gameCode)
	h.tryStartGame(gameCode)
}

// tryStartGame turns a full lobby into a running game.
func (h *Hub) tryStartGame(gameCode string) {
	h.gameMu.Lock()
	h.lobbyMu.Lock()
	l, ok := h.lobbies[gameCode]
	if !ok || l.seatsTaken() != shared.NumPlayers {
		h.lobbyMu.Unlock()
		h.gameMu.Unlock()
		return
	}
	players, bots := h.seatPlayers(l)
	newGame := game.NewGame(players, bots, game.Options{Code: gameCode, Recorder: h.recorder})
	h.games[gameCode] = newGame
	delete(h.lobbies, gameCode)
	h.lobbyMu.Unlock()
	h.gameMu.Unlock()

	log.Printf("Game instance created for code %s with ID %s. Players: %v", gameCode, newGame.ID, playerNames(players))
	go newGame.StartGameLoop(h.sendMessageToClient)
}

// seatPlayers puts the humans in joining order and fills the rest with bots.
func (h *Hub) seatPlayers(l *lobby) ([shared.NumPlayers]*shared.Player, [shared.NumPlayers]strategy.Strategy) {
	var players [shared.NumPlayers]*shared.Player
	var bots [shared.NumPlayers]strategy.Strategy
	for i := range players {
		if i < len(l.clients) {
			c := l.clients[i]
			players[i] = shared.NewPlayer(c.ID, c.Name, i)
			continue
		}
		players[i] = shared.NewPlayer(uuid.NewString(), fmt.Sprintf("Bot %d", i+1), i)
		bots[i] = strategy.NewRandom(h.botActionProb, nil)
	}
	return players, bots
}

// handleGameAction forwards bidding and play actions to the correct game instance.
func (h *Hub) handleGameAction(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	gameCode, inGame := h.clientToGame[client]
	h.clientMu.RUnlock()

	if !inGame {
		log.Printf("Received '%s' from client %s not in any game/lobby.", msg.Type, client.ID)
		h.sendErrorToClient(client, "You are not in an active game or lobby.")
		return
	}

	h.gameMu.RLock()
	gameInstance, gameExists := h.games[gameCode]
	h.gameMu.RUnlock()

	if !gameExists {
		log.Printf("Received '%s' from client %s for game code %s, but game instance not found.", msg.Type, client.ID, gameCode)
		h.sendErrorToClient(client, "Game not found or not active.")
		return
	}

	gameInstance.HandlePlayerAction(client.ID, msg)
}

func playerNames(players [shared.NumPlayers]*shared.Player) []string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return names
}

// sendMessageToClient allows the game logic to send messages back via the hub/client.
// This is passed as a callback to the game instance.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	for client := range h.clients {
		if client.ID == clientID {
			h.trySend(client, message)
			return
		}
	}
	log.Printf("Could not find client %s to send message (already disconnected?).", clientID)
}

// trySend queues message without blocking and reports whether it was queued.
// Callers hold clientMu: send is closed only under the write lock in
// removeClient, so a registered client's channel is open here.
func (h *Hub) trySend(client *Client, message []byte) bool {
	if !h.clients[client] {
		return false
	}
	select {
	case client.send <- message:
		return true
	default:
		log.Printf("Failed to send message to client %s (channel full), initiating cleanup.", client.ID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[client]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- client
			}
		}()
		return false
	}
}

// broadcastLobbyUpdate sends the current list of players in the lobby.
func (h *Hub) broadcastLobbyUpdate(gameCode string) {
	h.lobbyMu.RLock()
	l, exists := h.lobbies[gameCode]
	if !exists {
		h.lobbyMu.RUnlock()
		log.Printf("Warning: Tried to broadcast to non-existent lobby %s", gameCode)
		return
	}
	clientsToSend := append([]*Client(nil), l.clients...)
	payload := protocol.LobbyUpdatePayload{Bots: l.bots}
	h.lobbyMu.RUnlock()

	for i, c := range clientsToSend {
		payload.Players = append(payload.Players, protocol.PlayerInfo{ID: c.ID, Name: c.Name, Seat: i})
	}
	msgBytes, err := protocol.NewMessage(protocol.TypeLobbyUpdate, payload)
	if err != nil {
		log.Printf("Error creating lobby_update message for lobby %s: %v", gameCode, err)
		return
	}
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	for _, c := range clientsToSend {
		h.trySend(c, msgBytes)
	}
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage(protocol.TypeError, protocol.ErrorPayload{Message: errorMsg})
	if err != nil {
		log.Printf("Error creating error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}

// sendJoinError sends a specific join error message to a client.
func (h *Hub) sendJoinError(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage(protocol.TypeJoinError, protocol.JoinErrorPayload{Message: errorMsg})
	if err != nil {
		log.Printf("Error creating join_error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}
