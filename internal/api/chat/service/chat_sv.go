package chatService

import (
	"ShopAssist/internal/api/chat"
	"ShopAssist/pkg/log"
	"ShopAssist/pkg/nlp"
	"context"

	"github.com/sirupsen/logrus"
)

func (s *chatService) HandleMessage(ctx context.Context, turn chat.DialogueTurn) chat.TurnResult {
	logger := log.WithRequestID(s.log, ctx)

	result, err := s.nlpClient.ParseText(ctx, turn.Text)
	if err != nil {
		kind := nlp.KindOf(err)
		logger.WithFields(logrus.Fields{
			"session_id": turn.SessionID,
			"user_id":    turn.UserID,
			"kind":       kind,
			"error":      err.Error(),
		}).Warn("Classification failed, replying in degraded mode")

		return chat.TurnResult{
			Reply:       chat.FallbackReply,
			Metadata:    chat.Metadata{},
			FailureKind: kind,
		}
	}

	strategy := s.selectStrategy(result.Intent)

	var query string
	if strategy == strategySearch {
		query = extractQuery(result, turn.Text)
	}

	logger.WithFields(logrus.Fields{
		"session_id": turn.SessionID,
		"intent":     result.Intent.Name,
		"action":     result.Intent.Action,
		"confidence": result.Intent.Confidence,
		"strategy":   strategy,
	}).Info("Dispatching chat message")

	return chat.TurnResult{
		Reply:    buildReply(strategy, query),
		Strategy: string(strategy),
		Query:    query,
		Metadata: chat.Metadata{ClassificationResult: result},
	}
}

func (s *chatService) ClassifyText(ctx context.Context, text string) (*nlp.Intent, error) {
	intent, err := s.nlpClient.ClassifyText(ctx, text)
	if err != nil {
		log.WithRequestID(s.log, ctx).WithFields(logrus.Fields{
			"kind":       nlp.KindOf(err),
			"error":      err.Error(),
		}).Warn("Intent classification failed")
		return nil, err
	}

	return intent, nil
}

func (s *chatService) Stats() nlp.Stats {
	return s.nlpClient.Stats()
}
