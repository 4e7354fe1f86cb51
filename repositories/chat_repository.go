package repositories

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venkatesh1545/drone-x-alert-now/models"
)

type ChatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(database *mongo.Database) *ChatRepository {
	return &ChatRepository{
		collection: database.Collection("chat_messages"),
	}
}

func (cr *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	_, err := cr.collection.InsertOne(ctx, message)
	if err != nil {
		logrus.Errorf("Failed to create chat message: %v", err)
		return err
	}

	return nil
}

// GetHistory returns a user's conversation, oldest first.
func (cr *ChatRepository) GetHistory(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := cr.collection.Find(ctx, bson.M{"userId": userObjectID}, opts)
	if err != nil {
		logrus.Errorf("Failed to get chat history: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (cr *ChatRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := cr.collection.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
