package controller

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
	"github.com/raobaba/SkillBridge-Pro-sub006/middleware"
)

// ChatMessage is the wire format relayed between authenticated connections.
type ChatMessage struct {
	From   string `json:"from"`
	Email  string `json:"email"`
	Body   string `json:"body"`
	SentAt int64  `json:"sentAt"`
}

// ChatController relays messages between authenticated WebSocket
// connections. Identity comes from the handshake gate via connection
// locals; messages on an established connection are not re-authenticated.
type ChatController struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*dto.AuthUser
}

func NewChatController() *ChatController {
	return &ChatController{conns: make(map[*websocket.Conn]*dto.AuthUser)}
}

// Socket is the connection handler mounted behind middleware.SocketAuth.
func (cc *ChatController) Socket(conn *websocket.Conn) {
	user, ok := conn.Locals(middleware.UserKey).(*dto.AuthUser)
	if !ok {
		// SocketAuth refused the handshake or never ran; nothing to serve.
		conn.Close()
		return
	}

	cc.register(conn, user)
	defer cc.unregister(conn)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		msg := ChatMessage{
			From:   user.UserID,
			Email:  user.Email,
			Body:   string(raw),
			SentAt: time.Now().Unix(),
		}
		cc.broadcast(&msg)
	}
}

func (cc *ChatController) register(conn *websocket.Conn, user *dto.AuthUser) {
	cc.mu.Lock()
	cc.conns[conn] = user
	cc.mu.Unlock()
	log.Printf("[CHAT] user %s connected (%d online)", user.UserID, cc.online())
}

func (cc *ChatController) unregister(conn *websocket.Conn) {
	cc.mu.Lock()
	user := cc.conns[conn]
	delete(cc.conns, conn)
	cc.mu.Unlock()
	conn.Close()
	if user != nil {
		log.Printf("[CHAT] user %s disconnected", user.UserID)
	}
}

func (cc *ChatController) broadcast(msg *ChatMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	// Full lock: a connection must never see two concurrent writers.
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for conn := range cc.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("[CHAT] write failed: %v", err)
		}
	}
}

func (cc *ChatController) online() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.conns)
}
