package game

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"euchre-game/internal/protocol"
	"euchre-game/internal/shared"
	"euchre-game/internal/strategy"
)

type outbox struct {
	msgs map[string][]protocol.Message
}

func newOutbox() *outbox {
	return &outbox{msgs: map[string][]protocol.Message{}}
}

func (o *outbox) send(clientID string, raw []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		panic(err)
	}
	o.msgs[clientID] = append(o.msgs[clientID], msg)
}

func (o *outbox) ofType(clientID, msgType string) []protocol.Message {
	var out []protocol.Message
	for _, m := range o.msgs[clientID] {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

func newPlayers() [shared.NumPlayers]*shared.Player {
	return [shared.NumPlayers]*shared.Player{
		shared.NewPlayer("p0", "Ana", 0),
		shared.NewPlayer("p1", "Bo", 1),
		shared.NewPlayer("p2", "Cy", 2),
		shared.NewPlayer("p3", "Di", 3),
	}
}

func seeded(a, b uint64) *rand.Rand {
	return rand.New(rand.NewPCG(a, b))
}

func randomBot(seed uint64) strategy.Strategy {
	return strategy.NewRandom(0.3, seeded(seed, seed+1))
}

func cardMessage(t *testing.T, msgType string, c shared.Card) protocol.Message {
	t.Helper()
	raw, err := json.Marshal(protocol.CardPayload{Suit: string(c.Suit), Face: string(c.Face)})
	require.NoError(t, err)
	return protocol.Message{Type: msgType, Payload: raw}
}

func callMessage(t *testing.T, s shared.Suit) protocol.Message {
	t.Helper()
	raw, err := json.Marshal(protocol.CallTrumpPayload{Suit: string(s)})
	require.NoError(t, err)
	return protocol.Message{Type: protocol.TypeCallTrump, Payload: raw}
}

// humanTable returns a table of four humans with no hand in progress.
func humanTable() (*Game, *outbox) {
	g := NewGame(newPlayers(), [shared.NumPlayers]strategy.Strategy{}, Options{Code: "TEST1"})
	o := newOutbox()
	g.sendMessage = o.send
	return g, o
}

func TestBotTablePlaysAllHands(t *testing.T) {
	rec := &MemoryRecorder{}
	bots := [shared.NumPlayers]strategy.Strategy{randomBot(1), randomBot(2), randomBot(3), randomBot(4)}
	g := NewGame(newPlayers(), bots, Options{Code: "BOTS1", MaxHands: 8, Recorder: rec, Rand: seeded(9, 9)})

	g.StartGameLoop(nil)

	assert.Equal(t, GameOver, g.State())
	results := rec.Results()
	require.Len(t, results, 8)

	total := [2]int{}
	for i, r := range results {
		assert.Equal(t, i+1, r.HandNumber)
		assert.Equal(t, i%shared.NumPlayers, r.Dealer, "deal passes left")
		assert.Equal(t, "BOTS1", r.GameCode)
		assert.Equal(t, shared.NumTricks, r.TeamZeroTricks+r.TeamOneTricks)
		assert.Contains(t, []int{1, 2}, r.Points)
		assert.True(t, r.Trump.Valid())
		require.Len(t, r.Tricks, shared.NumTricks)

		winnerTricks := r.TeamZeroTricks
		if r.WinningTeam == shared.TeamOne {
			winnerTricks = r.TeamOneTricks
		}
		assert.GreaterOrEqual(t, winnerTricks, shared.NumTricksToWinHand)

		seen := map[shared.Card]bool{}
		for _, trick := range r.Tricks {
			require.Len(t, trick.Plays, shared.NumPlayers)
			for _, p := range trick.Plays {
				assert.False(t, seen[p.Card], "card played twice in a hand: %s", p.Card)
				seen[p.Card] = true
			}
		}
		total[r.WinningTeam] += r.Points
	}
	assert.Equal(t, total[0], g.Teams[0].Score)
	assert.Equal(t, total[1], g.Teams[1].Score)
}

func TestAllBotTableWithoutLimitStops(t *testing.T) {
	bots := [shared.NumPlayers]strategy.Strategy{randomBot(1), randomBot(2), randomBot(3), randomBot(4)}
	g := NewGame(newPlayers(), bots, Options{})
	g.StartGameLoop(nil)
	assert.Equal(t, GameOver, g.State())
	assert.Equal(t, 1, g.HandNumber)
}

// drive plays the human seat with a random strategy through HandlePlayerAction.
func drive(t *testing.T, g *Game, seat int, s strategy.Strategy) {
	t.Helper()
	id := g.Players[seat].ID
	for i := 0; i < 1000 && g.GameState != GameOver; i++ {
		require.Equal(t, seat, g.PlayerTurnIndex, "bots stop on the human's turn (state %s)", g.GameState)
		held := append([]shared.Card(nil), g.Players[seat].Cards...)

		var msg protocol.Message
		switch g.GameState {
		case OrderingUp:
			msg = protocol.Message{Type: protocol.TypePass}
			if s.SelectKittyPickup(held, g.Upcard, seat == g.Dealer, g.Seating.Partner(seat) == g.Dealer) {
				msg = protocol.Message{Type: protocol.TypeOrderUp}
			}
		case CallingTrump:
			msg = protocol.Message{Type: protocol.TypePass}
			if suit, ok := s.SelectTrump(held, g.Upcard.Suit, seat == g.Dealer); ok {
				msg = callMessage(t, suit)
			}
		case Discarding:
			msg = cardMessage(t, protocol.TypeDiscard, s.ExchangeWithKitty(held, g.Upcard))
		case Playing:
			msg = cardMessage(t, protocol.TypePlayCard, s.PlayCard(held, strategy.PlayView{Trick: g.CurrentTrick}))
		default:
			t.Fatalf("unexpected state %s", g.GameState)
		}
		g.HandlePlayerAction(id, msg)
	}
}

func TestHumanSeatPlaysThroughMessages(t *testing.T) {
	rec := &MemoryRecorder{}
	o := newOutbox()
	bots := [shared.NumPlayers]strategy.Strategy{nil, randomBot(2), randomBot(3), randomBot(4)}
	g := NewGame(newPlayers(), bots, Options{Code: "HUMAN", MaxHands: 4, Recorder: rec, Rand: seeded(3, 4)})

	g.StartGameLoop(o.send)
	drive(t, g, 0, strategy.NewRandom(0.5, seeded(5, 6)))

	assert.Equal(t, GameOver, g.GameState)
	assert.Len(t, rec.Results(), 4)
	assert.Empty(t, o.ofType("p0", protocol.TypeError))
	assert.Len(t, o.ofType("p0", protocol.TypeGameStart), 1)
	assert.Len(t, o.ofType("p0", protocol.TypeDealHand), 4)
	assert.Len(t, o.ofType("p0", protocol.TypeHandEnd), 4)
	assert.Len(t, o.ofType("p0", protocol.TypeTrickEnd), 4*shared.NumTricks)
	assert.Len(t, o.ofType("p0", protocol.TypeGameOver), 1)
	assert.Empty(t, o.msgs["p1"], "bots receive nothing")

	var deal protocol.DealHandPayload
	require.NoError(t, o.ofType("p0", protocol.TypeDealHand)[0].Decode(&deal))
	assert.Len(t, deal.Hand, shared.CardsPerPlayer)
}

func TestActionOutOfTurnIsRejected(t *testing.T) {
	o := newOutbox()
	bots := [shared.NumPlayers]strategy.Strategy{nil, nil, randomBot(3), randomBot(4)}
	g := NewGame(newPlayers(), bots, Options{Rand: seeded(1, 1)})
	g.StartGameLoop(o.send)

	require.Contains(t, []int{0, 1}, g.PlayerTurnIndex)
	other := g.Players[1-g.PlayerTurnIndex].ID
	before := g.GameState

	g.HandlePlayerAction(other, protocol.Message{Type: protocol.TypePass})

	errs := o.ofType(other, protocol.TypeError)
	require.Len(t, errs, 1)
	assert.Equal(t, before, g.GameState)
}

func TestActionFromUnknownClientIgnored(t *testing.T) {
	g, o := humanTable()
	g.GameState = OrderingUp
	g.PlayerTurnIndex = 1
	g.HandlePlayerAction("stranger", protocol.Message{Type: protocol.TypePass})
	assert.Empty(t, o.msgs)
	assert.Equal(t, 1, g.PlayerTurnIndex)
}

func TestFollowSuitEnforced(t *testing.T) {
	g, o := humanTable()
	g.Dealer = 3
	g.Bidder = 0
	g.Trump = shared.Spades
	hand, err := shared.NewHand(0, shared.Spades, g.Seating)
	require.NoError(t, err)
	g.Hand = hand
	g.CurrentTrick = shared.NewTrick(shared.Spades)
	g.GameState = Playing
	g.PlayerTurnIndex = 0
	g.Players[0].Cards = []shared.Card{shared.NewCard(shared.Hearts, shared.King), shared.NewCard(shared.Clubs, shared.Nine)}
	g.Players[1].Cards = []shared.Card{shared.NewCard(shared.Hearts, shared.Nine), shared.NewCard(shared.Spades, shared.Ace)}
	g.Players[2].Cards = []shared.Card{shared.NewCard(shared.Hearts, shared.Ace), shared.NewCard(shared.Diamonds, shared.Nine)}
	g.Players[3].Cards = []shared.Card{shared.NewCard(shared.Clubs, shared.Jack), shared.NewCard(shared.Diamonds, shared.Ten)}

	g.HandlePlayerAction("p1", cardMessage(t, protocol.TypePlayCard, shared.NewCard(shared.Hearts, shared.Nine)))
	assert.Len(t, o.ofType("p1", protocol.TypeError), 1, "not p1's turn")

	g.HandlePlayerAction("p0", cardMessage(t, protocol.TypePlayCard, shared.NewCard(shared.Diamonds, shared.Ace)))
	assert.Len(t, o.ofType("p0", protocol.TypeError), 1, "card not held")

	g.HandlePlayerAction("p0", cardMessage(t, protocol.TypePlayCard, shared.NewCard(shared.Hearts, shared.King)))
	assert.Equal(t, 1, g.PlayerTurnIndex)

	g.HandlePlayerAction("p1", cardMessage(t, protocol.TypePlayCard, shared.NewCard(shared.Spades, shared.Ace)))
	errs := o.ofType("p1", protocol.TypeError)
	require.Len(t, errs, 2)
	var payload protocol.ErrorPayload
	require.NoError(t, errs[1].Decode(&payload))
	assert.Contains(t, payload.Message, ErrMustFollowSuit.Error())
	assert.Equal(t, 1, g.PlayerTurnIndex)

	g.HandlePlayerAction("p1", cardMessage(t, protocol.TypePlayCard, shared.NewCard(shared.Hearts, shared.Nine)))
	g.HandlePlayerAction("p2", cardMessage(t, protocol.TypePlayCard, shared.NewCard(shared.Hearts, shared.Ace)))
	// the left bower is trump, so seat 3 is void in hearts and may trump in
	g.HandlePlayerAction("p3", cardMessage(t, protocol.TypePlayCard, shared.NewCard(shared.Clubs, shared.Jack)))

	require.Len(t, g.Hand.Tricks(), 1)
	assert.Equal(t, 3, g.PlayerTurnIndex, "trick winner leads")
	assert.Equal(t, shared.TrickEmpty, g.CurrentTrick.State())

	ends := o.ofType("p0", protocol.TypeTrickEnd)
	require.Len(t, ends, 1)
	var end protocol.TrickEndPayload
	require.NoError(t, ends[0].Decode(&end))
	assert.Equal(t, 3, end.Winner.Seat)
	assert.Equal(t, "p3", end.WinnerID)
	assert.Len(t, end.Plays, shared.NumPlayers)
}

func TestStickTheDealer(t *testing.T) {
	g, o := humanTable()
	g.Dealer = 2
	g.Upcard = shared.NewCard(shared.Hearts, shared.Queen)
	g.GameState = CallingTrump
	g.PlayerTurnIndex = 2

	g.HandlePlayerAction("p2", protocol.Message{Type: protocol.TypePass})
	g.HandlePlayerAction("p2", callMessage(t, shared.Hearts))
	g.HandlePlayerAction("p2", protocol.Message{Type: protocol.TypeCallTrump, Payload: json.RawMessage(`{"suit":"Stars"}`)})

	errs := o.ofType("p2", protocol.TypeError)
	require.Len(t, errs, 3)
	var payload protocol.ErrorPayload
	require.NoError(t, errs[0].Decode(&payload))
	assert.Equal(t, ErrDealerMustCall.Error(), payload.Message)
	assert.Equal(t, CallingTrump, g.GameState)

	g.HandlePlayerAction("p2", callMessage(t, shared.Clubs))
	assert.Equal(t, Playing, g.GameState)
	assert.Equal(t, shared.Clubs, g.Trump)
	assert.Equal(t, 2, g.Bidder)
	assert.Equal(t, 3, g.PlayerTurnIndex, "left of dealer leads")
	require.NotNil(t, g.Hand)
	assert.Equal(t, 2, g.Hand.Bidder())
	assert.Len(t, o.ofType("p0", protocol.TypeTrumpSelected), 1)
}

func TestBiddingPassesToSecondRound(t *testing.T) {
	g, o := humanTable()
	g.Dealer = 0
	g.Upcard = shared.NewCard(shared.Diamonds, shared.Nine)
	g.GameState = OrderingUp
	g.PlayerTurnIndex = 1

	for _, id := range []string{"p1", "p2", "p3", "p0"} {
		g.HandlePlayerAction(id, protocol.Message{Type: protocol.TypePass})
	}
	assert.Empty(t, o.ofType("p0", protocol.TypeError))
	assert.Equal(t, CallingTrump, g.GameState)
	assert.Equal(t, 1, g.PlayerTurnIndex)

	bids := o.ofType("p1", protocol.TypeBidTurn)
	require.Len(t, bids, 1)
	var bid protocol.BidTurnPayload
	require.NoError(t, bids[0].Decode(&bid))
	assert.Equal(t, 2, bid.Round)
}

func TestOrderUpAndDiscard(t *testing.T) {
	g, o := humanTable()
	g.Dealer = 3
	g.Upcard = shared.NewCard(shared.Spades, shared.Ace)
	g.GameState = OrderingUp
	g.PlayerTurnIndex = 0
	dealerCards := []shared.Card{
		shared.NewCard(shared.Hearts, shared.Nine),
		shared.NewCard(shared.Hearts, shared.Ten),
		shared.NewCard(shared.Clubs, shared.Nine),
		shared.NewCard(shared.Clubs, shared.Ten),
		shared.NewCard(shared.Diamonds, shared.Nine),
	}
	g.Players[3].Cards = append([]shared.Card(nil), dealerCards...)

	g.HandlePlayerAction("p0", protocol.Message{Type: protocol.TypeOrderUp})
	assert.Equal(t, Discarding, g.GameState)
	assert.Equal(t, shared.Spades, g.Trump)
	assert.Equal(t, 0, g.Bidder)
	assert.Equal(t, 3, g.PlayerTurnIndex)
	assert.Len(t, o.ofType("p3", protocol.TypeDiscardRequest), 1)

	g.HandlePlayerAction("p0", cardMessage(t, protocol.TypeDiscard, shared.NewCard(shared.Hearts, shared.Nine)))
	assert.Len(t, o.ofType("p0", protocol.TypeError), 1, "only the dealer discards")

	g.HandlePlayerAction("p3", cardMessage(t, protocol.TypeDiscard, shared.NewCard(shared.Spades, shared.King)))
	assert.Len(t, o.ofType("p3", protocol.TypeError), 1, "not held")

	g.HandlePlayerAction("p3", cardMessage(t, protocol.TypeDiscard, shared.NewCard(shared.Hearts, shared.Nine)))
	assert.Equal(t, Playing, g.GameState)
	assert.Len(t, g.Players[3].Cards, shared.CardsPerPlayer)
	assert.True(t, g.Players[3].HasCard(g.Upcard))
	assert.False(t, g.Players[3].HasCard(shared.NewCard(shared.Hearts, shared.Nine)))
	assert.Equal(t, 0, g.PlayerTurnIndex)
}

func TestDealerMayDiscardUpcard(t *testing.T) {
	g, _ := humanTable()
	g.Dealer = 1
	g.Upcard = shared.NewCard(shared.Clubs, shared.Nine)
	g.GameState = OrderingUp
	g.PlayerTurnIndex = 1
	held := []shared.Card{shared.NewCard(shared.Hearts, shared.Nine)}
	g.Players[1].Cards = append([]shared.Card(nil), held...)

	g.HandlePlayerAction("p1", protocol.Message{Type: protocol.TypeOrderUp})
	g.HandlePlayerAction("p1", cardMessage(t, protocol.TypeDiscard, g.Upcard))
	assert.Equal(t, Playing, g.GameState)
	assert.Equal(t, held, g.Players[1].Cards)
}

func TestDisconnectEndsGame(t *testing.T) {
	g, o := humanTable()
	g.GameState = Playing
	g.HandlePlayerDisconnect("stranger")
	assert.Equal(t, Playing, g.GameState)
	assert.Empty(t, o.msgs)

	g.HandlePlayerDisconnect("p2")

	assert.Equal(t, GameOver, g.GameState)
	var over protocol.GameOverPayload
	require.NoError(t, o.ofType("p0", protocol.TypeGameOver)[0].Decode(&over))
	assert.Equal(t, "Cy left the table", over.Reason)
	assert.Len(t, o.ofType("p0", protocol.TypePlayerLeft), 1)
	assert.Len(t, o.ofType("p0", protocol.TypeGameOver), 1)

	g.HandlePlayerAction("p0", protocol.Message{Type: protocol.TypePass})
	assert.Len(t, o.ofType("p0", protocol.TypeError), 1)
}
