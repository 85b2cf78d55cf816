package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"euchre-game/internal/database"
	"euchre-game/internal/protocol"
	"euchre-game/internal/shared"
	"euchre-game/internal/strategy"

	"github.com/google/uuid"
)

// GameState represents the current state of the table.
type GameState string

const (
	Dealing      GameState = "Dealing"      // Cards are being dealt
	OrderingUp   GameState = "OrderingUp"   // First bidding round on the face-up kitty card
	CallingTrump GameState = "CallingTrump" // Second bidding round, naming any other suit
	Discarding   GameState = "Discarding"   // Dealer picked up the kitty card and must discard
	Playing      GameState = "Playing"      // Players are playing tricks
	HandOver     GameState = "HandOver"     // Five tricks played and scored
	GameOver     GameState = "GameOver"     // Table closed
)

var (
	ErrWrongState     = errors.New("wrong game state")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrMustFollowSuit = errors.New("must follow suit if possible")
	ErrDealerMustCall = errors.New("dealer must name trump")
	ErrSuitTurnedDown = errors.New("suit was turned down")
	ErrNotDealer      = errors.New("only the dealer discards")
)

// MessageSender defines the function signature for sending messages back to clients.
// The Hub will provide an implementation of this.
type MessageSender func(clientID string, message []byte)

// Recorder stores scored hands.
type Recorder interface {
	Insert(result database.HandResult) error
}

// Options configures a table.
type Options struct {
	Code     string     // lobby code, stored with each hand
	MaxHands int        // close the table after this many hands, 0 for no limit
	Dealer   int        // seat dealing the first hand
	Recorder Recorder   // optional
	Rand     *rand.Rand // deck shuffling, nil for an unseeded source
}

// Game sequences the hands played at one table.
type Game struct {
	ID              string                            `json:"id"`
	Code            string                            `json:"code"`
	Players         [shared.NumPlayers]*shared.Player `json:"-"`
	Teams           [2]*shared.Team                   `json:"-"`
	Seating         shared.Seating                    `json:"-"`
	Deck            *shared.Deck                      `json:"-"`
	Hand            *shared.Hand                      `json:"-"`
	CurrentTrick    *shared.Trick                     `json:"-"`
	Upcard          shared.Card                       `json:"upcard"`
	Dealer          int                               `json:"dealer"`
	Bidder          int                               `json:"bidder"`
	Trump           shared.Suit                       `json:"trump"`
	PlayerTurnIndex int                               `json:"player_turn_index"`
	GameState       GameState                         `json:"game_state"`
	HandNumber      int                               `json:"hand_number"`
	MaxHands        int                               `json:"-"`
	passes          int
	bots            [shared.NumPlayers]strategy.Strategy
	recorder        Recorder
	rng             *rand.Rand
	mu              sync.Mutex
	sendMessage     MessageSender
}

// NewGame seats the players. A non-nil bots[i] plays seat i.
func NewGame(players [shared.NumPlayers]*shared.Player, bots [shared.NumPlayers]strategy.Strategy, opts Options) *Game {
	seating := shared.DefaultSeating()
	allBots := true
	for i, p := range players {
		p.Seat = i
		p.Bot = bots[i] != nil
		allBots = allBots && p.Bot
	}
	if allBots && opts.MaxHands <= 0 {
		// nobody would ever stop a table of bots
		opts.MaxHands = 1
	}
	teams := [2]*shared.Team{
		shared.NewTeam(shared.TeamZero, players[0], players[2]),
		shared.NewTeam(shared.TeamOne, players[1], players[3]),
	}

	return &Game{
		ID:              uuid.New().String(),
		Code:            opts.Code,
		Players:         players,
		Teams:           teams,
		Seating:         seating,
		Dealer:          opts.Dealer,
		Bidder:          -1,
		PlayerTurnIndex: -1,
		GameState:       Dealing,
		MaxHands:        opts.MaxHands,
		bots:            bots,
		recorder:        opts.Recorder,
		rng:             opts.Rand,
	}
}

// StartGameLoop announces the table and deals the first hand. With every seat
// played by a bot the whole table runs to completion before it returns.
func (g *Game) StartGameLoop(sender MessageSender) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sendMessage = sender
	log.Printf("Game %s: Starting game loop.", g.ID)

	startPayload := protocol.GameStartPayload{
		GameID:  g.ID,
		Players: g.playerInfos(),
		Teams:   g.teamInfos(),
	}
	startMsg, _ := protocol.NewMessage(protocol.TypeGameStart, startPayload)
	g.broadcast(startMsg)

	g.startHand()
	g.runBots()
}

// State returns the current state.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.GameState
}

// startHand shuffles, deals and opens the first bidding round. Assumes lock is held.
func (g *Game) startHand() {
	if g.GameState == GameOver {
		return
	}
	if g.MaxHands > 0 && g.HandNumber >= g.MaxHands {
		g.endGame(fmt.Sprintf("%d hands played", g.HandNumber))
		return
	}

	g.HandNumber++
	g.GameState = Dealing
	log.Printf("Game %s: Dealing hand %d, dealer seat %d.", g.ID, g.HandNumber, g.Dealer)

	g.Deck = shared.NewDeck()
	g.Deck.Shuffle(g.rng)
	hands := g.Deck.Deal(shared.NumPlayers, shared.CardsPerPlayer)
	if hands == nil {
		log.Printf("Error dealing cards in game %s", g.ID)
		g.broadcastError("Internal server error during dealing.")
		g.endGame("deal failed")
		return
	}
	g.Upcard = g.Deck.Cards[0]
	g.Hand = nil
	g.CurrentTrick = nil
	g.Trump = ""
	g.Bidder = -1
	g.passes = 0

	for i, hand := range hands {
		g.Players[i].Cards = hand
		if g.bots[i] != nil {
			continue
		}
		dealPayload := protocol.DealHandPayload{
			HandNumber: g.HandNumber,
			Dealer:     g.Dealer,
			Upcard:     g.Upcard,
			Hand:       hand,
		}
		dealMsg, _ := protocol.NewMessage(protocol.TypeDealHand, dealPayload)
		g.sendToPlayer(g.Players[i].ID, dealMsg)
	}

	g.GameState = OrderingUp
	g.PlayerTurnIndex = g.nextSeat(g.Dealer)
	g.broadcastGameState()
	g.notifyCurrentPlayerTurn()
}

// HandlePlayerAction processes incoming actions from a player.
func (g *Game) HandlePlayerAction(clientID string, msg protocol.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.GameState == GameOver {
		log.Printf("Game %s: Action received from %s but game is over.", g.ID, clientID)
		g.sendErrorToPlayer(clientID, "Game is already over.")
		return
	}

	seat := g.GetPlayerIndex(clientID)
	if seat == -1 || g.bots[seat] != nil {
		log.Printf("Game %s: Action from unknown client ID %s", g.ID, clientID)
		return
	}

	var err error
	switch msg.Type {
	case protocol.TypeOrderUp:
		err = g.orderUp(seat)

	case protocol.TypePass:
		err = g.pass(seat)

	case protocol.TypeCallTrump:
		var payload protocol.CallTrumpPayload
		if err := msg.Decode(&payload); err != nil {
			log.Printf("Game %s: Error unmarshalling call_trump payload from %s: %v", g.ID, clientID, err)
			g.sendErrorToPlayer(clientID, "Invalid call_trump message.")
			return
		}
		suit, perr := shared.ParseSuit(payload.Suit)
		if perr != nil {
			err = perr
			break
		}
		err = g.callTrump(seat, suit)

	case protocol.TypeDiscard, protocol.TypePlayCard:
		var payload protocol.CardPayload
		if err := msg.Decode(&payload); err != nil {
			log.Printf("Game %s: Error unmarshalling %s payload from %s: %v", g.ID, msg.Type, clientID, err)
			g.sendErrorToPlayer(clientID, "Invalid "+msg.Type+" message.")
			return
		}
		card, perr := protocol.CardFromPayload(payload)
		if perr != nil {
			err = perr
			break
		}
		if msg.Type == protocol.TypeDiscard {
			err = g.discard(seat, card)
		} else {
			err = g.playCard(seat, card)
		}

	default:
		log.Printf("Game %s: Received unhandled action type '%s' from %s", g.ID, msg.Type, clientID)
		return
	}

	if err != nil {
		log.Printf("Game %s: Rejected %s from seat %d: %v", g.ID, msg.Type, seat, err)
		g.sendErrorToPlayer(clientID, err.Error())
		return
	}
	g.runBots()
}

// checkTurn verifies state and seat before an action. Assumes lock is held.
func (g *Game) checkTurn(seat int, states ...GameState) error {
	ok := false
	for _, s := range states {
		if g.GameState == s {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrWrongState, g.GameState)
	}
	if seat != g.PlayerTurnIndex {
		return ErrNotYourTurn
	}
	return nil
}

// orderUp makes the upcard's suit trump and hands it to the dealer. Assumes lock is held.
func (g *Game) orderUp(seat int) error {
	if err := g.checkTurn(seat, OrderingUp); err != nil {
		return err
	}
	g.Trump = g.Upcard.Suit
	g.Bidder = seat
	log.Printf("Game %s: Seat %d ordered up %s. Trump is %s.", g.ID, seat, g.Upcard, g.Trump)
	g.announceTrump(true)

	g.GameState = Discarding
	g.PlayerTurnIndex = g.Dealer
	g.broadcastGameState()
	g.notifyCurrentPlayerTurn()
	return nil
}

// pass moves bidding to the next seat. Assumes lock is held.
func (g *Game) pass(seat int) error {
	if err := g.checkTurn(seat, OrderingUp, CallingTrump); err != nil {
		return err
	}
	if g.GameState == CallingTrump && seat == g.Dealer {
		return ErrDealerMustCall
	}

	g.passes++
	log.Printf("Game %s: Seat %d passed (%s).", g.ID, seat, g.GameState)
	if g.GameState == OrderingUp && g.passes == shared.NumPlayers {
		g.GameState = CallingTrump
		g.passes = 0
		g.PlayerTurnIndex = g.nextSeat(g.Dealer)
		log.Printf("Game %s: %s turned down.", g.ID, g.Upcard)
	} else {
		g.PlayerTurnIndex = g.nextSeat(seat)
	}
	g.broadcastGameState()
	g.notifyCurrentPlayerTurn()
	return nil
}

// callTrump names trump in the second round. Assumes lock is held.
func (g *Game) callTrump(seat int, suit shared.Suit) error {
	if err := g.checkTurn(seat, CallingTrump); err != nil {
		return err
	}
	if suit == g.Upcard.Suit {
		return fmt.Errorf("%w: %s", ErrSuitTurnedDown, suit)
	}
	g.Trump = suit
	g.Bidder = seat
	log.Printf("Game %s: Seat %d called %s.", g.ID, seat, suit)
	g.announceTrump(false)
	return g.beginPlay()
}

// discard completes the dealer's exchange with the upcard. Discarding the
// upcard itself leaves the dealer's cards unchanged. Assumes lock is held.
func (g *Game) discard(seat int, card shared.Card) error {
	if g.GameState == Discarding && seat != g.Dealer {
		return ErrNotDealer
	}
	if err := g.checkTurn(seat, Discarding); err != nil {
		return err
	}
	dealer := g.Players[seat]
	if card != g.Upcard {
		if !dealer.RemoveCard(card) {
			return fmt.Errorf("%w: %s", ErrCardNotInHand, card)
		}
		dealer.AddCard(g.Upcard)
	}
	log.Printf("Game %s: Dealer seat %d discarded.", g.ID, seat)
	return g.beginPlay()
}

// beginPlay opens the first trick, led by the seat left of the dealer. Assumes lock is held.
func (g *Game) beginPlay() error {
	hand, err := shared.NewHand(g.Bidder, g.Trump, g.Seating)
	if err != nil {
		return err
	}
	g.Hand = hand
	g.CurrentTrick = shared.NewTrick(g.Trump)
	g.GameState = Playing
	g.PlayerTurnIndex = g.nextSeat(g.Dealer)
	g.broadcastGameState()
	g.notifyCurrentPlayerTurn()
	return nil
}

// playCard validates and records a play, closing the trick when complete.
// Assumes lock is held.
func (g *Game) playCard(seat int, card shared.Card) error {
	if err := g.checkTurn(seat, Playing); err != nil {
		return err
	}
	player := g.Players[seat]
	if !player.HasCard(card) {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, card)
	}
	if !g.isValidPlay(player, card) {
		return fmt.Errorf("%w: %s", ErrMustFollowSuit, card)
	}

	if err := g.CurrentTrick.RecordPlay(seat, card); err != nil {
		return err
	}
	player.RemoveCard(card)
	log.Printf("Game %s: Player %d (%s) played %s", g.ID, seat, player.Name, card)

	playedPayload := protocol.CardPlayedPayload{PlayerID: player.ID, Seat: seat, Card: card}
	playedMsg, _ := protocol.NewMessage(protocol.TypeCardPlayed, playedPayload)
	g.broadcast(playedMsg)

	if g.CurrentTrick.IsComplete() {
		return g.endTrick()
	}
	g.PlayerTurnIndex = g.nextSeat(seat)
	g.broadcastGameState()
	g.notifyCurrentPlayerTurn()
	return nil
}

// isValidPlay checks that the card follows the led suit when the player can.
// Assumes lock is held.
func (g *Game) isValidPlay(player *shared.Player, card shared.Card) bool {
	for _, c := range shared.LegalPlays(player.Cards, g.CurrentTrick) {
		if c == card {
			return true
		}
	}
	return false
}

// endTrick hands the finished trick to the hand. Assumes lock is held.
func (g *Game) endTrick() error {
	win, err := g.CurrentTrick.WinningPlay()
	if err != nil {
		return err
	}
	if err := g.Hand.AddTrick(g.CurrentTrick); err != nil {
		return err
	}
	trickNumber := len(g.Hand.Tricks())
	winner := g.Players[win.Seat]
	log.Printf("Game %s: Trick %d won by Player %d (%s) with %s.", g.ID, trickNumber, win.Seat, winner.Name, win.Card)

	trickEndPayload := protocol.TrickEndPayload{
		Winner:   win,
		WinnerID: winner.ID,
		Plays:    g.CurrentTrick.Plays(),
		Number:   trickNumber,
	}
	trickEndMsg, _ := protocol.NewMessage(protocol.TypeTrickEnd, trickEndPayload)
	g.broadcast(trickEndMsg)

	if trickNumber == shared.NumTricks {
		return g.endHand()
	}
	g.CurrentTrick = shared.NewTrick(g.Trump)
	g.PlayerTurnIndex = win.Seat
	g.broadcastGameState()
	g.notifyCurrentPlayerTurn()
	return nil
}

// endHand scores the hand, records it and deals the next one. Assumes lock is held.
func (g *Game) endHand() error {
	if err := g.Hand.Score(); err != nil {
		return err
	}
	team, _ := g.Hand.WinningTeam()
	points := g.Hand.Points()
	g.Teams[team].AddScore(points)
	g.GameState = HandOver
	log.Printf("Game %s: Hand %d to %s for %d point(s). Trump %s, bidder seat %d.",
		g.ID, g.HandNumber, team, points, g.Trump, g.Bidder)

	handEndPayload := protocol.HandEndPayload{
		HandNumber:     g.HandNumber,
		Trump:          g.Trump,
		Bidder:         g.Bidder,
		WinningTeam:    team,
		Points:         points,
		TeamZeroTricks: g.Hand.TricksWon(shared.TeamZero),
		TeamOneTricks:  g.Hand.TricksWon(shared.TeamOne),
		Euchred:        g.Hand.Euchred(),
	}
	handEndMsg, _ := protocol.NewMessage(protocol.TypeHandEnd, handEndPayload)
	g.broadcast(handEndMsg)

	if g.recorder != nil {
		if err := g.recorder.Insert(g.handResult()); err != nil {
			log.Printf("Game %s: Failed to record hand %d: %v", g.ID, g.HandNumber, err)
		}
	}

	g.Dealer = g.nextSeat(g.Dealer)
	g.startHand()
	return nil
}

// handResult snapshots the scored hand for storage. Assumes lock is held.
func (g *Game) handResult() database.HandResult {
	team, _ := g.Hand.WinningTeam()
	tricks := make([]database.TrickResult, 0, shared.NumTricks)
	for _, t := range g.Hand.Tricks() {
		seat, _ := t.Winner()
		tricks = append(tricks, database.TrickResult{Winner: seat, Plays: t.Plays()})
	}
	return database.HandResult{
		ID:             uuid.NewString(),
		GameID:         g.ID,
		GameCode:       g.Code,
		HandNumber:     g.HandNumber,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		Dealer:         g.Dealer,
		Bidder:         g.Bidder,
		Trump:          g.Trump,
		WinningTeam:    team,
		Points:         g.Hand.Points(),
		TeamZeroTricks: g.Hand.TricksWon(shared.TeamZero),
		TeamOneTricks:  g.Hand.TricksWon(shared.TeamOne),
		Player1:        g.Players[0].Name,
		Player2:        g.Players[1].Name,
		Player3:        g.Players[2].Name,
		Player4:        g.Players[3].Name,
		Tricks:         tricks,
	}
}

// endGame closes the table. Assumes lock is held.
func (g *Game) endGame(reason string) {
	g.GameState = GameOver
	g.PlayerTurnIndex = -1
	log.Printf("Game %s: Game over (%s). Score %d-%d.", g.ID, reason, g.Teams[0].Score, g.Teams[1].Score)

	gameOverPayload := protocol.GameOverPayload{
		Reason:        reason,
		TeamZeroScore: g.Teams[0].Score,
		TeamOneScore:  g.Teams[1].Score,
	}
	gameOverMsg, _ := protocol.NewMessage(protocol.TypeGameOver, gameOverPayload)
	g.broadcast(gameOverMsg)
}

// HandlePlayerDisconnect handles a player leaving mid-game. The table closes.
func (g *Game) HandlePlayerDisconnect(clientID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.GameState == GameOver {
		log.Printf("Game %s: Player %s disconnected, but game already over.", g.ID, clientID)
		return
	}

	player := g.GetPlayerByID(clientID)
	if player == nil {
		log.Printf("Game %s: Disconnect from unknown or already removed client ID %s", g.ID, clientID)
		return
	}

	log.Printf("Game %s: Player %s (%s) disconnected.", g.ID, clientID, player.Name)
	leftPayload := protocol.PlayerLeftPayload{PlayerID: clientID}
	leftMsg, _ := protocol.NewMessage(protocol.TypePlayerLeft, leftPayload)
	g.broadcast(leftMsg)

	g.endGame(fmt.Sprintf("%s left the table", player.Name))
}

func (g *Game) nextSeat(seat int) int {
	return (seat + 1) % shared.NumPlayers
}
