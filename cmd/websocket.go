package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"khstayBack/internal/store"
	"khstayBack/utils"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
)

type Client struct {
	ID     string
	Socket *websocket.Conn
}

type unreg struct {
	userID string
	conn   *websocket.Conn
}

type directEvent struct {
	userID  string
	payload interface{}
}

type WebSocketManager struct {
	clients    map[string]*websocket.Conn
	direct     chan directEvent
	register   chan Client
	unregister chan unreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*websocket.Conn),
		direct:     make(chan directEvent),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

// All access to clients happens on this goroutine.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// A newer socket for the same user replaces the old one.
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register user=%s", client.ID)

		case u := <-ws.unregister:
			// Only drop the entry if it still points at this socket.
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister user=%s", u.userID)
			}

		case ev := <-ws.direct:
			if conn, ok := ws.clients[ev.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(ev.payload); err != nil {
					log.Printf("direct send error to=%s: %v", ev.userID, err)
					_ = conn.Close()
					delete(ws.clients, ev.userID)
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// wsEvent is one notification feed change pushed to the client.
type wsEvent struct {
	Event string                 `json:"event"`
	ID    string                 `json:"id"`
	Data  map[string]interface{} `json:"data"`
}

// The first frame must carry the access token: {"token": "<jwt>"}.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var hello struct {
		Token string `json:"token"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.Token == "" {
		log.Println("invalid hello payload:", err)
		_ = writeClose(conn, websocket.ClosePolicyViolation, "hello required")
		_ = conn.Close()
		return
	}
	uid, err := app.tokenManager.Parse(hello.Token)
	if err != nil {
		_ = writeClose(conn, websocket.ClosePolicyViolation, "invalid token")
		_ = conn.Close()
		return
	}
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	app.wsManager.register <- Client{ID: uid, Socket: conn}

	ctx, cancel := context.WithCancel(context.Background())
	go app.streamNotifications(ctx, uid)
	go pingLoop(app.wsManager, conn, uid)

	// Clients send nothing after the hello frame; the read loop only
	// detects disconnects.
	go func() {
		defer func() {
			cancel()
			app.wsManager.unregister <- unreg{userID: uid, conn: conn}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			conn.SetReadDeadline(time.Now().Add(readDeadline))
		}
	}()
}

// streamNotifications forwards the user's notification changes to their
// socket until ctx is cancelled.
func (app *application) streamNotifications(ctx context.Context, uid string) {
	events, err := app.notificationService.Subscribe(utils.ContextWithUserID(ctx, uid))
	if err != nil {
		app.errorLog.Printf("subscribe notifications for %s: %v", uid, err)
		return
	}
	for ev := range events {
		app.wsManager.direct <- directEvent{userID: uid, payload: wsEvent{
			Event: eventName(ev.Kind),
			ID:    ev.Doc.ID,
			Data:  ev.Doc.Data,
		}}
	}
}

func eventName(kind store.EventKind) string {
	switch kind {
	case store.EventAdded:
		return "added"
	case store.EventModified:
		return "modified"
	case store.EventRemoved:
		return "removed"
	}
	return "unknown"
}

func pingLoop(ws *WebSocketManager, conn *websocket.Conn, uid string) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			ws.unregister <- unreg{userID: uid, conn: conn}
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
}
