package chatHandler

import (
	chatService "ShopAssist/internal/api/chat/service"
	"ShopAssist/internal/middleware"
	"ShopAssist/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
	utils utils.IUtils,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: cs,
		utils:       utils,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	chat := srv.Group("/chat")

	chat.Use(h.middleware.NewTokenMiddleware)

	chat.Post("/message", h.middleware.NewRateLimiter, h.SendMessage)
	chat.Post("/classify", h.middleware.NewRateLimiter, h.ClassifyText)
	chat.Get("/stats", h.GetStats)

	chat.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	chat.Get("/ws", websocket.New(h.handleWebSocket))
}
