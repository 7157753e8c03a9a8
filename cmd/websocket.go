package main

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// KioskHub pushes content-change notifications to connected kiosk displays
// so long-lived screens refresh without polling.
type KioskHub struct {
	clients    map[int64]*websocket.Conn
	register   chan kioskClient
	unregister chan int64
	broadcast  chan kioskEvent
	nextID     int64
}

type kioskClient struct {
	ID     int64
	Socket *websocket.Conn
}

type kioskEvent struct {
	Event string `json:"event"`
}

func NewKioskHub() *KioskHub {
	return &KioskHub{
		clients:    make(map[int64]*websocket.Conn),
		register:   make(chan kioskClient),
		unregister: make(chan int64),
		broadcast:  make(chan kioskEvent),
	}
}

func (h *KioskHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.ID] = client.Socket
		case clientID := <-h.unregister:
			if conn, ok := h.clients[clientID]; ok {
				conn.Close()
				delete(h.clients, clientID)
			}
		case event := <-h.broadcast:
			for id, conn := range h.clients {
				if err := conn.WriteJSON(event); err != nil {
					conn.Close()
					delete(h.clients, id)
				}
			}
		}
	}
}

// Broadcast never blocks the caller: if the hub loop is not draining (e.g.
// it was never started), the event is dropped.
func (h *KioskHub) Broadcast(event string) {
	select {
	case h.broadcast <- kioskEvent{Event: event}:
	default:
	}
}

func (app *application) KioskSocketHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade error: %v", err)
		return
	}

	id := atomic.AddInt64(&app.kioskHub.nextID, 1)
	app.kioskHub.register <- kioskClient{ID: id, Socket: conn}

	go func() {
		defer func() {
			app.kioskHub.unregister <- id
		}()
		for {
			// Kiosks only listen; the read loop just detects disconnects.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
