package main

import (
	"log"
	"net/http"

	"euchre-game/internal/config"
	"euchre-game/internal/database"
	"euchre-game/internal/logging"
	"euchre-game/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel)
	log.Println("Starting Euchre server...")

	db, err := database.New(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open %s database: %v", cfg.DBDriver, err)
	}
	defer db.Close()

	hub := server.NewHub(db, cfg.BotActionProb)
	go hub.Run()

	upgrader := server.NewUpgrader(cfg)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, upgrader, w, r)
	})
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	server.HandleRoutes(mux, db)

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, mux))
}
