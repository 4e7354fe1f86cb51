package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one turn in a citizen's conversation with the
// assistant. Assistant replies are generated from a canned guidance
// table; there is no real language model behind them.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Sender    string             `json:"sender" bson:"sender"` // user, assistant
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

const (
	ChatSenderUser      = "user"
	ChatSenderAssistant = "assistant"
)

type SendChatMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type ChatExchange struct {
	UserMessage      ChatMessage `json:"userMessage"`
	AssistantMessage ChatMessage `json:"assistantMessage"`
}
