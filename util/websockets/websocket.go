package websockets

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketManager initializes a WebSocketManager
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan PlanMessage),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
		send:       make(chan DirectMessage),
	}
}

// Run starts the WebSocket manager
func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.Conn] = client
			manager.mu.Unlock()

		case conn := <-manager.unregister:
			manager.mu.Lock()
			if client, exists := manager.clients[conn]; exists {
				delete(manager.clients, conn)
				conn.Close()
				log.Printf("Client %s disconnected", client.UserID)
			}
			manager.mu.Unlock()

		case message := <-manager.broadcast:
			manager.mu.Lock()
			for _, client := range manager.clients {
				if !client.Plans[message.PlanID] {
					continue
				}
				if err := client.Conn.WriteMessage(websocket.TextMessage, message.Payload); err != nil {
					client.Conn.Close()
					delete(manager.clients, client.Conn)
				}
			}
			manager.mu.Unlock()

		case direct := <-manager.send:
			manager.mu.Lock()
			for _, client := range manager.clients {
				if client.UserID == direct.ReceiverID {
					if err := client.Conn.WriteMessage(websocket.TextMessage, []byte(direct.Message)); err != nil {
						client.Conn.Close()
						delete(manager.clients, client.Conn)
					}
					break
				}
			}
			manager.mu.Unlock()
		}
	}
}

// HandleConnections upgrades HTTP requests to WebSocket connections
func (manager *WebSocketManager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket Upgrade Error:", err)
		return
	}

	client := &Client{Conn: conn, Plans: make(map[string]bool)}
	manager.register <- client

	defer func() {
		manager.unregister <- conn
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			manager.unregister <- conn
			break
		}

		var message Message
		if err := json.Unmarshal(msg, &message); err != nil {
			log.Println("Invalid JSON:", err)
			continue
		}

		switch message.Type {
		case MsgTypeSubscribe:
			manager.subscribe(client, message)
		}
	}
}

// subscribe records the client's identity and plan subscriptions. UserID is
// read by Run under the same mutex when routing direct pushes, so the
// assignment must happen inside the lock.
func (manager *WebSocketManager) subscribe(client *Client, message Message) {
	manager.mu.Lock()
	client.UserID = message.UserID
	for _, planID := range message.PlanIDs {
		client.Plans[planID] = true
	}
	manager.mu.Unlock()
}

// BroadcastPlanMessage pushes a chat message to every subscriber of the plan
func (manager *WebSocketManager) BroadcastPlanMessage(planID string, payload []byte) {
	manager.broadcast <- PlanMessage{PlanID: planID, Payload: payload}
}

// NotifyUser pushes a notification payload to a single connected user, if
// they are online. Persistence is the caller's job.
func (manager *WebSocketManager) NotifyUser(userID string, payload []byte) {
	manager.send <- DirectMessage{ReceiverID: userID, Message: string(payload)}
}
