package server

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"euchre-game/internal/config"

	"github.com/gorilla/websocket"
)

// NewUpgrader builds the websocket upgrader from the server configuration.
// With no allowed origins configured any origin may connect.
func NewUpgrader(cfg config.Config) *websocket.Upgrader {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[strings.ToLower(origin)] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  cfg.WSReadBuffer,
		WriteBufferSize: cfg.WSWriteBuffer,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(allowed, r.Header.Get("Origin"))
		},
	}
}

// originAllowed matches the Origin header's host against allowed.
// Requests without an Origin header come from non-browser clients and pass.
func originAllowed(allowed map[string]bool, origin string) bool {
	if len(allowed) == 0 || origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return allowed[strings.ToLower(u.Host)] || allowed[strings.ToLower(u.Hostname())]
}

// ServeWs upgrades the request and hands the connection to the hub.
func ServeWs(hub *Hub, upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade from %s refused: %v", r.RemoteAddr, err)
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
