package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"euchre-game/internal/database"
)

// ResultStore is the read side of the hand history.
type ResultStore interface {
	GetAll() ([]database.HandResult, error)
	GetByID(id string) (database.HandResult, error)
	GetByGame(gameCode string) ([]database.HandResult, error)
	GetByPlayer(name string) ([]database.HandResult, error)
}

// HandleRoutes registers the history endpoints on mux.
func HandleRoutes(mux *http.ServeMux, db ResultStore) {
	mux.HandleFunc("GET /api/hands", func(w http.ResponseWriter, r *http.Request) {
		GetHandsHandler(db, w, r)
	})
	mux.HandleFunc("GET /api/hands/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetHandHandler(db, w, r)
	})
	mux.HandleFunc("GET /api/results/player/{name}", func(w http.ResponseWriter, r *http.Request) {
		GetResultsByPlayerHandler(db, w, r)
	})
	mux.HandleFunc("GET /api/games/{code}/hands", func(w http.ResponseWriter, r *http.Request) {
		GetGameHandsHandler(db, w, r)
	})

	log.Println("Registered routes: /api/hands, /api/hands/{id}, /api/results/player/{name}, /api/games/{code}/hands")
}

func GetHandsHandler(db ResultStore, w http.ResponseWriter, r *http.Request) {
	results, err := db.GetAll()
	if err != nil {
		log.Printf("Failed to fetch hands: %v", err)
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []database.HandResult{}
	}
	writeJSON(w, results)
}

func GetHandHandler(db ResultStore, w http.ResponseWriter, r *http.Request) {
	result, err := db.GetByID(r.PathValue("id"))
	if err != nil {
		writeLookupError(w, err, "Hand not found")
		return
	}
	writeJSON(w, result)
}

func GetResultsByPlayerHandler(db ResultStore, w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("name")
	if player == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}
	results, err := db.GetByPlayer(player)
	if err != nil {
		writeLookupError(w, err, "No results found for player")
		return
	}
	writeJSON(w, results)
}

func GetGameHandsHandler(db ResultStore, w http.ResponseWriter, r *http.Request) {
	results, err := db.GetByGame(r.PathValue("code"))
	if err != nil {
		writeLookupError(w, err, "No hands found for game")
		return
	}
	writeJSON(w, results)
}

func writeLookupError(w http.ResponseWriter, err error, notFound string) {
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, notFound, http.StatusNotFound)
		return
	}
	log.Printf("Failed to fetch results: %v", err)
	http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
