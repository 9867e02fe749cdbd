package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message types
const (
	MsgTypeSubscribe    = "subscribe"
	MsgTypePlanMessage  = "plan_message"
	MsgTypeNotification = "notification"
)

// Client represents a connected WebSocket user
type Client struct {
	Conn   *websocket.Conn
	UserID string
	// Plans the client is subscribed to for chat updates
	Plans map[string]bool
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan PlanMessage
	register   chan *Client
	unregister chan *websocket.Conn
	send       chan DirectMessage
	mu         sync.Mutex
}

// DirectMessage struct for per-user pushes (notifications)
type DirectMessage struct {
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

// PlanMessage is fanned out to every subscriber of a plan
type PlanMessage struct {
	PlanID  string `json:"plan_id"`
	Payload []byte `json:"-"`
}

// Message struct for incoming WebSocket messages
type Message struct {
	Type    string   `json:"type"`
	UserID  string   `json:"user_id"`
	PlanIDs []string `json:"plan_ids,omitempty"`
	Content string   `json:"content,omitempty"`
}
