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

type EmergencyRequestRepository struct {
	collection *mongo.Collection
}

func NewEmergencyRequestRepository(database *mongo.Database) *EmergencyRequestRepository {
	return &EmergencyRequestRepository{
		collection: database.Collection("emergency_requests"),
	}
}

func (er *EmergencyRequestRepository) Create(ctx context.Context, request *models.EmergencyRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}

	_, err := er.collection.InsertOne(ctx, request)
	if err != nil {
		logrus.Errorf("Failed to create emergency request: %v", err)
		return err
	}

	return nil
}

func (er *EmergencyRequestRepository) GetByID(ctx context.Context, id string) (*models.EmergencyRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var request models.EmergencyRequest
	err = er.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		logrus.Errorf("Failed to get emergency request by ID: %v", err)
		return nil, err
	}

	return &request, nil
}

func (er *EmergencyRequestRepository) Update(ctx context.Context, id string, updateFields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	updateFields["updatedAt"] = time.Now()

	result, err := er.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		logrus.Errorf("Failed to update emergency request: %v", err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateStatusIf sets the status only when the request currently holds
// the expected status. Used by the assignment transaction so two
// concurrent dispatchers cannot both claim a pending request.
func (er *EmergencyRequestRepository) UpdateStatusIf(ctx context.Context, id, expected, next string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := er.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "status": expected},
		bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.Errorf("Failed to transition emergency request %s: %v", id, err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (er *EmergencyRequestRepository) GetByReporter(ctx context.Context, reporterID string) ([]models.EmergencyRequest, error) {
	reporterObjectID, err := primitive.ObjectIDFromHex(reporterID)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := er.collection.Find(ctx, bson.M{"reporterId": reporterObjectID}, opts)
	if err != nil {
		logrus.Errorf("Failed to get reporter requests: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.EmergencyRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (er *EmergencyRequestRepository) List(ctx context.Context, filter models.EmergencyRequestFilter, page, pageSize int) ([]models.EmergencyRequest, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Type != "" {
		query["emergencyType"] = filter.Type
	}

	total, err := er.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := er.collection.Find(ctx, query, opts)
	if err != nil {
		logrus.Errorf("Failed to list emergency requests: %v", err)
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var requests []models.EmergencyRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (er *EmergencyRequestRepository) GetPending(ctx context.Context) ([]models.EmergencyRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := er.collection.Find(ctx, bson.M{"status": models.RequestStatusPending}, opts)
	if err != nil {
		logrus.Errorf("Failed to get pending requests: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.EmergencyRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (er *EmergencyRequestRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)

	for _, status := range []string{
		models.RequestStatusPending,
		models.RequestStatusAssigned,
		models.RequestStatusInProgress,
		models.RequestStatusResolved,
		models.RequestStatusCancelled,
	} {
		count, err := er.collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, nil
}
