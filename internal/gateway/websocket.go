package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	mdwerror "github.com/msto63/vmel/foundation/core/error"
	"github.com/msto63/vmel/internal/evalsvc"
	"github.com/msto63/vmel/internal/journal"
	"github.com/msto63/vmel/pkg/core/logging"
)

const (
	wsReadTimeout  = 120 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WSMessage is a client message. ID is echoed in the reply.
type WSMessage struct {
	Type    string          `json:"type"` // "run", "tokenize", "ping"
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse is a server message
type WSResponse struct {
	Type    string      `json:"type"` // "result", "tokens", "pong", "error"
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload is the payload of an error message
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler evaluates sources sent over a websocket. Messages on one
// connection are handled in order.
type WebSocketHandler struct {
	service  *evalsvc.Service
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

// NewWebSocketHandler creates a websocket handler. allowedOrigins empty
// accepts same-host requests only; "*" accepts every origin.
func NewWebSocketHandler(svc *evalsvc.Service, allowedOrigins []string) *WebSocketHandler {
	h := &WebSocketHandler{
		service: svc,
		logger:  logging.New("gateway-websocket"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return origin == ""
		}
	}
	return h
}

// ServeHTTP handles the websocket upgrade and the connection
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(resp WSResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(resp)
}

func (h *WebSocketHandler) handleConnection(parent context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	defer cancel()

	maxMessage := int64(h.service.Engine().Options().MaxSourceLength)*2 + 1024
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	c := &wsConn{conn: conn}
	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if err := c.send(h.dispatch(ctx, msg)); err != nil {
			h.logger.Error("WebSocket send error", "error", err)
			return
		}
	}
}

func (h *WebSocketHandler) dispatch(ctx context.Context, msg WSMessage) WSResponse {
	switch msg.Type {
	case "ping":
		return WSResponse{Type: "pong", ID: msg.ID}

	case "run", "tokenize":
		var payload RunRequest
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return wsError(msg.ID, "invalid_payload", "Invalid "+msg.Type+" payload")
		}
		if msg.Type == "tokenize" {
			resp, err := h.service.Tokenize(payload.Source)
			if err != nil {
				return wsFailure(msg.ID, err)
			}
			return WSResponse{Type: "tokens", ID: msg.ID, Payload: resp}
		}
		resp, err := h.service.Run(ctx, journal.OriginWS, payload.Source)
		if err != nil {
			return wsFailure(msg.ID, err)
		}
		return WSResponse{Type: "result", ID: msg.ID, Payload: resp}

	default:
		return wsError(msg.ID, "unknown_type", "Unknown message type: "+msg.Type)
	}
}

func wsFailure(id string, err error) WSResponse {
	return wsError(id, string(mdwerror.GetCode(err)), err.Error())
}

func wsError(id, code, message string) WSResponse {
	return WSResponse{
		Type:    "error",
		ID:      id,
		Payload: WSErrorPayload{Code: code, Message: message},
	}
}
