package ai

import (
	"TechAssist/entity"
	"context"
)

type Core interface {
	Chat(ctx context.Context, req entity.ChatRequest) entity.ChatResponse
	Suggestions() []string
	History(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error)
}
