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

type DroneRepository struct {
	collection *mongo.Collection
}

func NewDroneRepository(database *mongo.Database) *DroneRepository {
	return &DroneRepository{
		collection: database.Collection("drone_streams"),
	}
}

func (dr *DroneRepository) Create(ctx context.Context, stream *models.DroneStream) error {
	stream.ID = primitive.NewObjectID()
	stream.CreatedAt = time.Now()
	stream.UpdatedAt = time.Now()
	stream.LastSeenAt = time.Now()

	if stream.Status == "" {
		stream.Status = models.StreamStatusOffline
	}

	_, err := dr.collection.InsertOne(ctx, stream)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		logrus.Errorf("Failed to create drone stream: %v", err)
		return err
	}

	return nil
}

func (dr *DroneRepository) GetByID(ctx context.Context, id string) (*models.DroneStream, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var stream models.DroneStream
	err = dr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&stream)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		logrus.Errorf("Failed to get drone stream by ID: %v", err)
		return nil, err
	}

	return &stream, nil
}

func (dr *DroneRepository) Update(ctx context.Context, id string, updateFields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	updateFields["updatedAt"] = time.Now()

	result, err := dr.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		logrus.Errorf("Failed to update drone stream: %v", err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (dr *DroneRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := dr.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		logrus.Errorf("Failed to delete drone stream: %v", err)
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (dr *DroneRepository) List(ctx context.Context, status string) ([]models.DroneStream, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := dr.collection.Find(ctx, query, opts)
	if err != nil {
		logrus.Errorf("Failed to list drone streams: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var streams []models.DroneStream
	if err = cursor.All(ctx, &streams); err != nil {
		return nil, err
	}

	return streams, nil
}

// MarkStaleOffline flips online streams that have not been seen since
// the cutoff. Run by the cleanup worker.
func (dr *DroneRepository) MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := dr.collection.UpdateMany(
		ctx,
		bson.M{"status": models.StreamStatusOnline, "lastSeenAt": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.StreamStatusOffline, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (dr *DroneRepository) CountByStatus(ctx context.Context) (total int64, online int64, err error) {
	total, err = dr.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, err
	}

	online, err = dr.collection.CountDocuments(ctx, bson.M{"status": models.StreamStatusOnline})
	if err != nil {
		return 0, 0, err
	}

	return total, online, nil
}
