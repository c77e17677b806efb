package chatHandler

import (
	"ShopAssist/internal/api/chat"
	contextPkg "ShopAssist/pkg/context"
	"ShopAssist/pkg/handlerUtil"
	jwtPkg "ShopAssist/pkg/jwt"
	"ShopAssist/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const turnTimeout = 30 * time.Second

func (h *ChatHandler) SendMessage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), turnTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var req chat.MessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, chat.ErrInvalidRequest, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	turn := h.newTurn(req, userData.ID)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": turn.SessionID,
		"user_id":    turn.UserID,
	}).Debug("Processing chat message")

	// Classification failures are already folded into the reply.
	result := h.chatService.HandleMessage(c, turn)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.NewMessageResponse(turn, result))
}

func (h *ChatHandler) ClassifyText(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), turnTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req chat.ClassifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, chat.ErrInvalidRequest, ctx.Path())
	}

	req.Text = h.utils.NormalizeText(req.Text)
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	intent, err := h.chatService.ClassifyText(c, req.Text)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "classify_text")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.ClassifyResponse{Intent: intent})
	}
}

func (h *ChatHandler) GetStats(ctx *fiber.Ctx) error {
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, h.chatService.Stats())
}

func (h *ChatHandler) newTurn(req chat.MessageRequest, userID string) chat.DialogueTurn {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = h.utils.NewSessionID()
	}

	return chat.DialogueTurn{
		SessionID: sessionID,
		UserID:    userID,
		Text:      h.utils.NormalizeText(req.Text),
	}
}
