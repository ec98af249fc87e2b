package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatRequest is the inbound shopper question.
type ChatRequest struct {
	Question  string `json:"question" validate:"required"`
	UserID    int    `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the reply contract: at most one related product, always
// well-formed, never a raw error.
type ChatResponse struct {
	Answer          string              `json:"answer"`
	RelatedProducts []ProductSuggestion `json:"related_products"`
	Success         bool                `json:"success"`
	ErrorMessage    string              `json:"error_message,omitempty"`
}

// ChatMessage is one resolved question/answer pair kept for history.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID string             `json:"session_id" bson:"session_id"`
	UserID    int                `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Question  string             `json:"question" bson:"question"`
	Answer    string             `json:"answer" bson:"answer"`
	ProductID int                `json:"product_id,omitempty" bson:"product_id,omitempty"`
	Success   bool               `json:"success" bson:"success"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
