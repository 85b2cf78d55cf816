// Command simulate plays bot-only tables and prints how the hands were scored.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"euchre-game/internal/config"
	"euchre-game/internal/database"
	"euchre-game/internal/game"
	"euchre-game/internal/logging"
	"euchre-game/internal/shared"
	"euchre-game/internal/strategy"
)

func main() {
	hands := flag.Int("hands", 10, "number of hands to play")
	seed := flag.Uint64("seed", 1, "seed for shuffling and bot decisions")
	prob := flag.Float64("prob", strategy.DefaultActionProb, "chance a bot orders up or calls trump")
	dbPath := flag.String("db", "", "sqlite file to record hands in (optional)")
	level := flag.String("log", "warn", "log level")
	flag.Parse()

	logging.Setup(*level)
	if *hands < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s -hands N (N >= 1)\n", os.Args[0])
		os.Exit(2)
	}
	cfg := config.Default()
	cfg.BotActionProb = *prob
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	recorder := &game.MemoryRecorder{}
	var rec game.Recorder = recorder
	if *dbPath != "" {
		db, err := database.New("sqlite3", *dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		rec = teeRecorder{recorder, db}
	}

	var players [shared.NumPlayers]*shared.Player
	var bots [shared.NumPlayers]strategy.Strategy
	for i := range players {
		players[i] = shared.NewPlayer(fmt.Sprintf("bot-%d", i+1), fmt.Sprintf("Bot %d", i+1), i)
		bots[i] = strategy.NewRandom(cfg.BotActionProb, rand.New(rand.NewPCG(*seed, uint64(i))))
	}
	g := game.NewGame(players, bots, game.Options{
		Code:     "SIM",
		MaxHands: *hands,
		Recorder: rec,
		Rand:     rand.New(rand.NewPCG(*seed, *seed)),
	})
	g.StartGameLoop(nil)

	printResults(recorder.Results(), g)
}

// teeRecorder keeps hands in memory for the report and also stores them.
type teeRecorder struct {
	mem *game.MemoryRecorder
	db  *database.Service
}

func (t teeRecorder) Insert(result database.HandResult) error {
	t.mem.Insert(result)
	return t.db.Insert(result)
}

func printResults(results []database.HandResult, g *game.Game) {
	pterm.DefaultSection.Println("Hands")

	data := pterm.TableData{{"#", "Dealer", "Bidder", "Trump", "Tricks", "Winner", "Points", ""}}
	euchres, marches := 0, 0
	for _, r := range results {
		note := ""
		bidderTeam := g.Seating.TeamOf(r.Bidder)
		winnerTricks := r.TeamZeroTricks
		if r.WinningTeam == shared.TeamOne {
			winnerTricks = r.TeamOneTricks
		}
		switch {
		case r.WinningTeam == bidderTeam.Other():
			note = pterm.LightRed("euchre")
			euchres++
		case winnerTricks == shared.NumTricks:
			note = pterm.LightGreen("march")
			marches++
		}
		data = append(data, []string{
			strconv.Itoa(r.HandNumber),
			seatName(g, r.Dealer),
			seatName(g, r.Bidder),
			string(r.Trump),
			fmt.Sprintf("%d-%d", r.TeamZeroTricks, r.TeamOneTricks),
			r.WinningTeam.String(),
			strconv.Itoa(r.Points),
			note,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		log.Printf("Failed to render table: %v", err)
	}

	pterm.DefaultSection.Println("Score")
	pterm.Info.Printfln("%s %d - %d %s", shared.TeamZero, g.Teams[shared.TeamZero].Score, g.Teams[shared.TeamOne].Score, shared.TeamOne)
	pterm.Info.Printfln("%d hand(s), %d euchre(s), %d march(es)", len(results), euchres, marches)
}

func seatName(g *game.Game, seat int) string {
	return g.Players[seat].Name
}
