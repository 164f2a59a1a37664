package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DebateStream pushes debate messages to websocket subscribers as the
// session advances.
type DebateStream struct {
	store   DebateStore
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]bool
}

// NewDebateStream creates a stream hub bound to a session store.
func NewDebateStream(store DebateStore) *DebateStream {
	return &DebateStream{
		store:   store,
		clients: make(map[string]map[*websocket.Conn]bool),
	}
}

// Broadcast fans a new message out to every subscriber of a debate.
func (ds *DebateStream) Broadcast(debateID string, msg DebateMessage) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":      "message",
		"debate_id": debateID,
		"message":   msg,
		"time":      time.Now().Format(time.RFC3339),
	})
	if err != nil {
		Logger().Error("Failed to marshal stream message: %v", err)
		return
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	for conn := range ds.clients[debateID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(ds.clients[debateID], conn)
		}
	}
}

// ServeHTTP upgrades GET /api/debates/{id}/ws to a websocket that
// replays history and then streams new messages.
func (ds *DebateStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	debateID := mux.Vars(r)["id"]
	state, ok := ds.store.Get(debateID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Debate not found")
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger().Error("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	init, err := json.Marshal(map[string]interface{}{
		"type":      "init",
		"debate_id": debateID,
		"messages":  state.Messages,
	})
	if err == nil {
		if err := conn.WriteMessage(websocket.TextMessage, init); err != nil {
			return
		}
	}

	ds.mu.Lock()
	if ds.clients[debateID] == nil {
		ds.clients[debateID] = make(map[*websocket.Conn]bool)
	}
	ds.clients[debateID][conn] = true
	ds.mu.Unlock()

	defer func() {
		ds.mu.Lock()
		delete(ds.clients[debateID], conn)
		ds.mu.Unlock()
	}()

	// Pings are answered by the default handler; incoming data frames
	// are drained until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
