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

var missionActiveStatuses = bson.A{
	models.MissionStatusAssigned,
	models.MissionStatusInProgress,
}

type RescueMissionRepository struct {
	collection *mongo.Collection
}

func NewRescueMissionRepository(database *mongo.Database) *RescueMissionRepository {
	return &RescueMissionRepository{
		collection: database.Collection("rescue_missions"),
	}
}

func (mr *RescueMissionRepository) Create(ctx context.Context, mission *models.RescueMission) error {
	mission.ID = primitive.NewObjectID()
	mission.CreatedAt = time.Now()
	mission.UpdatedAt = time.Now()

	if mission.Status == "" {
		mission.Status = models.MissionStatusAssigned
	}

	_, err := mr.collection.InsertOne(ctx, mission)
	if err != nil {
		// The partial unique indexes reject a second active mission
		// for the same request or team.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		logrus.Errorf("Failed to create rescue mission: %v", err)
		return err
	}

	return nil
}

func (mr *RescueMissionRepository) GetByID(ctx context.Context, id string) (*models.RescueMission, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var mission models.RescueMission
	err = mr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		logrus.Errorf("Failed to get rescue mission by ID: %v", err)
		return nil, err
	}

	return &mission, nil
}

// GetActiveByRequest returns the single non-terminal mission bound to
// a request, if any.
func (mr *RescueMissionRepository) GetActiveByRequest(ctx context.Context, requestID string) (*models.RescueMission, error) {
	requestObjectID, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, ErrInvalidID
	}

	var mission models.RescueMission
	err = mr.collection.FindOne(ctx, bson.M{
		"emergencyRequestId": requestObjectID,
		"status":             bson.M{"$in": missionActiveStatuses},
	}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		logrus.Errorf("Failed to get active mission for request: %v", err)
		return nil, err
	}

	return &mission, nil
}

// GetActiveByTeam returns the team's current non-terminal mission, if
// any.
func (mr *RescueMissionRepository) GetActiveByTeam(ctx context.Context, teamID string) (*models.RescueMission, error) {
	teamObjectID, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, ErrInvalidID
	}

	var mission models.RescueMission
	err = mr.collection.FindOne(ctx, bson.M{
		"rescueTeamId": teamObjectID,
		"status":       bson.M{"$in": missionActiveStatuses},
	}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		logrus.Errorf("Failed to get active mission for team: %v", err)
		return nil, err
	}

	return &mission, nil
}

func (mr *RescueMissionRepository) GetByTeam(ctx context.Context, teamID string) ([]models.RescueMission, error) {
	teamObjectID, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := mr.collection.Find(ctx, bson.M{"rescueTeamId": teamObjectID}, opts)
	if err != nil {
		logrus.Errorf("Failed to get team missions: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var missions []models.RescueMission
	if err = cursor.All(ctx, &missions); err != nil {
		return nil, err
	}

	return missions, nil
}

// Replace persists the full mission document after an in-memory state
// transition, guarded by the status the transition started from.
func (mr *RescueMissionRepository) Replace(ctx context.Context, mission *models.RescueMission, expectedStatus string) error {
	result, err := mr.collection.ReplaceOne(
		ctx,
		bson.M{"_id": mission.ID, "status": expectedStatus},
		mission,
	)
	if err != nil {
		logrus.Errorf("Failed to replace rescue mission: %v", err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (mr *RescueMissionRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := mr.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "status": bson.M{"$in": missionActiveStatuses}},
		bson.M{"$set": bson.M{"notes": notes, "updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.Errorf("Failed to update mission notes: %v", err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (mr *RescueMissionRepository) List(ctx context.Context, status string, page, pageSize int) ([]models.RescueMission, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	total, err := mr.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := mr.collection.Find(ctx, query, opts)
	if err != nil {
		logrus.Errorf("Failed to list rescue missions: %v", err)
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var missions []models.RescueMission
	if err = cursor.All(ctx, &missions); err != nil {
		return nil, 0, err
	}

	return missions, total, nil
}

func (mr *RescueMissionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)

	for _, status := range []string{
		models.MissionStatusAssigned,
		models.MissionStatusInProgress,
		models.MissionStatusCompleted,
		models.MissionStatusCancelled,
	} {
		count, err := mr.collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, nil
}
