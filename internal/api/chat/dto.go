package chat

import (
	"ShopAssist/pkg/nlp"

	jsoniter "github.com/json-iterator/go"
)

const FallbackReply = "Sorry, I'm having trouble understanding right now. Please try again in a moment."

// DialogueTurn is one incoming message. The dispatcher keeps nothing from it
// once the reply is built.
type DialogueTurn struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
}

type TurnResult struct {
	Reply       string        `json:"reply"`
	Strategy    string        `json:"strategy,omitempty"`
	Query       string        `json:"query,omitempty"`
	Metadata    Metadata      `json:"metadata"`
	FailureKind nlp.ErrorKind `json:"-"`
}

func (r TurnResult) Degraded() bool {
	return r.FailureKind != nlp.KindNone
}

// Metadata is the full classification on success and encodes as {} when
// classification failed.
type Metadata struct {
	*nlp.ClassificationResult
}

func (m Metadata) IsEmpty() bool {
	return m.ClassificationResult == nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.ClassificationResult == nil {
		return []byte("{}"), nil
	}
	return jsoniter.Marshal(m.ClassificationResult)
}

type MessageRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	Text      string `json:"text" validate:"max=2000"`
}

type MessageResponse struct {
	SessionID string   `json:"session_id"`
	Reply     string   `json:"reply"`
	Strategy  string   `json:"strategy,omitempty"`
	Query     string   `json:"query,omitempty"`
	Metadata  Metadata `json:"metadata"`
}

type ClassifyRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type ClassifyResponse struct {
	Intent *nlp.Intent `json:"intent"`
}

func NewMessageResponse(turn DialogueTurn, result TurnResult) MessageResponse {
	return MessageResponse{
		SessionID: turn.SessionID,
		Reply:     result.Reply,
		Strategy:  result.Strategy,
		Query:     result.Query,
		Metadata:  result.Metadata,
	}
}
