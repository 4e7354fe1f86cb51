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

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(database *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: database.Collection("notifications"),
	}
}

func (nr *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()

	if notification.Status == "" {
		notification.Status = models.NotificationStatusPending
	}

	_, err := nr.collection.InsertOne(ctx, notification)
	if err != nil {
		logrus.Errorf("Failed to create notification: %v", err)
		return err
	}

	return nil
}

func (nr *NotificationRepository) GetByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Notification, int64, error) {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, 0, ErrInvalidID
	}

	query := bson.M{"userId": userObjectID}

	total, err := nr.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := nr.collection.Find(ctx, query, opts)
	if err != nil {
		logrus.Errorf("Failed to get user notifications: %v", err)
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// GetPending returns queued notifications for the delivery worker.
func (nr *NotificationRepository) GetPending(ctx context.Context, limit int) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := nr.collection.Find(ctx, bson.M{"status": models.NotificationStatusPending}, opts)
	if err != nil {
		logrus.Errorf("Failed to get pending notifications: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (nr *NotificationRepository) MarkSent(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := nr.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.NotificationStatusSent, "sentAt": now}},
	)
	return err
}

func (nr *NotificationRepository) MarkFailed(ctx context.Context, id primitive.ObjectID) error {
	_, err := nr.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.NotificationStatusFailed}},
	)
	return err
}

func (nr *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return ErrInvalidID
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	now := time.Now()
	result, err := nr.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "userId": userObjectID},
		bson.M{"$set": bson.M{"status": models.NotificationStatusRead, "readAt": now}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (nr *NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := nr.collection.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
