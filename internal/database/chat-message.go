package repository

import (
	"TechAssist/entity"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveChatMessage(ctx context.Context, msg entity.ChatMessage) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	collection := connection.Database(m.database).Collection(messagesCollection)
	_, err = collection.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

// ChatHistory returns a session's messages oldest first.
func (m *MongoDB) ChatHistory(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	collection := connection.Database(m.database).Collection(messagesCollection)
	cursor, err := collection.Find(ctx, bson.D{{Key: "session_id", Value: sessionID}}, opts)
	if err != nil {
		return nil, m.findError(err)
	}
	defer cursor.Close(ctx)

	var messages []entity.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return messages, nil
}
