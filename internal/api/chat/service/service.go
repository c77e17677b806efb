package chatService

import (
	"ShopAssist/internal/api/chat"
	"ShopAssist/pkg/nlp"
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type IChatService interface {
	// HandleMessage never fails; a classification failure yields the fallback
	// reply with empty metadata.
	HandleMessage(ctx context.Context, turn chat.DialogueTurn) chat.TurnResult

	ClassifyText(ctx context.Context, text string) (*nlp.Intent, error)
	Stats() nlp.Stats
}

type chatService struct {
	log       *logrus.Logger
	nlpClient nlp.INLPClient
	config    *ChatConfig
}

type ChatConfig struct {
	MinConfidence float64 `envconfig:"MIN_CONFIDENCE" default:"0.35"`
}

func DefaultChatConfig() *ChatConfig {
	return &ChatConfig{MinConfidence: 0.35}
}

func LoadChatConfig() (*ChatConfig, error) {
	var cfg ChatConfig
	if err := envconfig.Process("CHAT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load chat config: %w", err)
	}
	return &cfg, nil
}

func NewChatService(
	log *logrus.Logger,
	nlpClient nlp.INLPClient,
	config *ChatConfig,
) IChatService {
	if config == nil {
		config = DefaultChatConfig()
	}

	return &chatService{
		log:       log,
		nlpClient: nlpClient,
		config:    config,
	}
}
