package chatHandler

import (
	"ShopAssist/internal/api/chat"
	"ShopAssist/internal/entity"
	"ShopAssist/internal/middleware"
	contextPkg "ShopAssist/pkg/context"
	"ShopAssist/pkg/log"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"
)

const wsIdleTimeout = 5 * time.Minute

// handleWebSocket treats every text frame as one turn and answers each with a
// message response. Bad frames get an error frame and the socket stays open.
func (h *ChatHandler) handleWebSocket(c *websocket.Conn) {
	user, _ := c.Locals("user").(entity.UserLoginData)
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	base := contextPkg.WithRequestID(context.Background(), requestID)

	fields := log.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}
	h.log.WithFields(fields).Info("Chat WebSocket client connected")
	defer h.log.WithFields(fields).Info("Chat WebSocket client disconnected")

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsIdleTimeout)); err != nil {
			h.log.WithFields(fields).Errorf("Error setting read deadline: %v", err)
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(fields).Errorf("Chat WebSocket error: %v", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var req chat.MessageRequest
		if err := jsoniter.Unmarshal(message, &req); err != nil {
			if !h.writeFrame(c, map[string]string{"error": "invalid message format"}) {
				return
			}
			continue
		}

		if err := h.validator.Struct(req); err != nil {
			if !h.writeFrame(c, map[string]string{"error": "Validation failed: " + err.Error()}) {
				return
			}
			continue
		}

		turn := h.newTurn(req, user.ID)

		ctx, cancel := context.WithTimeout(base, turnTimeout)
		result := h.chatService.HandleMessage(ctx, turn)
		cancel()

		if !h.writeFrame(c, chat.NewMessageResponse(turn, result)) {
			return
		}
	}
}

func (h *ChatHandler) writeFrame(c *websocket.Conn, payload interface{}) bool {
	if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
		h.log.Errorf("Error setting write deadline: %v", err)
		return false
	}

	data, err := jsoniter.Marshal(payload)
	if err != nil {
		h.log.Errorf("Error encoding chat frame: %v", err)
		return false
	}

	if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
		h.log.Errorf("Error sending chat frame: %v", err)
		return false
	}
	return true
}
