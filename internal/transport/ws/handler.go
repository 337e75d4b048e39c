package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"appraisals/internal/service"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler drives stateful quiz sessions over a WebSocket connection. Each
// connection holds at most one session id; the session itself lives in the
// session cache, so a dropped connection can resume where it left off.
type Handler struct {
	sessions *service.SessionService
}

// NewHandler creates a new WebSocket handler.
func NewHandler(sessions *service.SessionService) *Handler {
	return &Handler{
		sessions: sessions,
	}
}

// Session handles GET /v1/ws/session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &connection{
		ws:   wsConn,
		send: make(chan []byte, 16),
	}

	go conn.writePump()
	h.readPump(r.Context(), conn)
}

// connection wraps one WebSocket client.
type connection struct {
	ws   *websocket.Conn
	send chan []byte
}

func (h *Handler) readPump(ctx context.Context, conn *connection) {
	defer func() {
		close(conn.send)
		conn.ws.Close()
	}()

	conn.ws.SetReadLimit(maxMessageSize)
	conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		conn.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	sessionID := ""
	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			conn.sendError("invalid message")
			continue
		}

		sessionID = h.handleMessage(ctx, conn, sessionID, &msg)
	}
}

// handleMessage processes one client message and returns the session id the
// connection should carry forward.
func (h *Handler) handleMessage(ctx context.Context, conn *connection, sessionID string, msg *Message) string {
	switch msg.Type {
	case MsgStart:
		var payload StartPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			conn.sendError("invalid start payload")
			return sessionID
		}
		session, err := h.sessions.Start(ctx, payload.Role, payload.NumQuestions)
		if err != nil {
			conn.sendError(h.errorMessage(payload.Role, err))
			return sessionID
		}
		conn.sendMessage(MsgStarted, StartedPayload{
			SessionID:      session.ID,
			Role:           session.Role,
			TotalQuestions: len(session.Questions),
		})
		conn.sendMessage(MsgQuestion, questionPayload(session))
		return session.ID

	case MsgResume:
		var payload ResumePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			conn.sendError("invalid resume payload")
			return sessionID
		}
		session, err := h.sessions.Get(ctx, payload.SessionID)
		if err != nil {
			conn.sendError(h.errorMessage("", err))
			return sessionID
		}
		conn.sendMessage(MsgStarted, StartedPayload{
			SessionID:      session.ID,
			Role:           session.Role,
			TotalQuestions: len(session.Questions),
		})
		conn.sendMessage(MsgQuestion, questionPayload(session))
		return session.ID

	case MsgAnswer:
		if sessionID == "" {
			conn.sendError("no active session")
			return sessionID
		}
		var payload AnswerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			conn.sendError("invalid answer payload")
			return sessionID
		}
		session, err := h.sessions.Answer(ctx, sessionID, payload.Choice)
		if err != nil {
			conn.sendError(h.errorMessage("", err))
			return sessionID
		}
		conn.sendMessage(MsgQuestion, questionPayload(session))
		return sessionID

	case MsgNext, MsgPrev:
		if sessionID == "" {
			conn.sendError("no active session")
			return sessionID
		}
		move := h.sessions.Next
		if msg.Type == MsgPrev {
			move = h.sessions.Prev
		}
		session, err := move(ctx, sessionID)
		if err != nil {
			conn.sendError(h.errorMessage("", err))
			return sessionID
		}
		conn.sendMessage(MsgQuestion, questionPayload(session))
		return sessionID

	case MsgSubmit:
		if sessionID == "" {
			conn.sendError("no active session")
			return sessionID
		}
		result, err := h.sessions.Submit(ctx, sessionID)
		if err != nil {
			conn.sendError(h.errorMessage("", err))
			return sessionID
		}
		conn.sendMessage(MsgResult, result)
		return sessionID

	default:
		conn.sendError(fmt.Sprintf("unknown message type: %s", msg.Type))
		return sessionID
	}
}

func (h *Handler) errorMessage(role string, err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownRole):
		return fmt.Sprintf("role '%s' not found. Available roles: %s",
			role, strings.Join(h.sessions.Roles(), ", "))
	case errors.Is(err, service.ErrNoQuestions):
		return fmt.Sprintf("no questions found for role: %s", role)
	case errors.Is(err, service.ErrSessionNotFound):
		return "session not found or expired"
	case errors.Is(err, service.ErrIndexUnavailable):
		return "question index unavailable"
	default:
		return err.Error()
	}
}

func (c *connection) sendMessage(msgType MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	envelope, err := json.Marshal(&Message{Type: msgType, Payload: data})
	if err != nil {
		return
	}
	select {
	case c.send <- envelope:
	default:
		// Drop message if buffer full
	}
}

func (c *connection) sendError(message string) {
	c.sendMessage(MsgError, ErrorPayload{Message: message})
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
