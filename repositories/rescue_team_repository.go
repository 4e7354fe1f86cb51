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

type RescueTeamRepository struct {
	collection *mongo.Collection
}

func NewRescueTeamRepository(database *mongo.Database) *RescueTeamRepository {
	return &RescueTeamRepository{
		collection: database.Collection("rescue_teams"),
	}
}

func (tr *RescueTeamRepository) Create(ctx context.Context, team *models.RescueTeam) error {
	team.ID = primitive.NewObjectID()
	team.CreatedAt = time.Now()
	team.UpdatedAt = time.Now()

	if team.Status == "" {
		team.Status = models.TeamStatusAvailable
	}

	_, err := tr.collection.InsertOne(ctx, team)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		logrus.Errorf("Failed to create rescue team: %v", err)
		return err
	}

	return nil
}

func (tr *RescueTeamRepository) GetByID(ctx context.Context, id string) (*models.RescueTeam, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var team models.RescueTeam
	err = tr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		logrus.Errorf("Failed to get rescue team by ID: %v", err)
		return nil, err
	}

	return &team, nil
}

func (tr *RescueTeamRepository) GetByOwner(ctx context.Context, ownerID string) (*models.RescueTeam, error) {
	ownerObjectID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrInvalidID
	}

	var team models.RescueTeam
	err = tr.collection.FindOne(ctx, bson.M{"ownerId": ownerObjectID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		logrus.Errorf("Failed to get rescue team by owner: %v", err)
		return nil, err
	}

	return &team, nil
}

func (tr *RescueTeamRepository) Update(ctx context.Context, id string, updateFields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	updateFields["updatedAt"] = time.Now()

	result, err := tr.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		logrus.Errorf("Failed to update rescue team: %v", err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateStatusIf flips the team status only from an expected current
// value, so the assignment transaction can claim an available team
// without racing another dispatcher.
func (tr *RescueTeamRepository) UpdateStatusIf(ctx context.Context, id, expected, next string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := tr.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "status": expected},
		bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.Errorf("Failed to transition rescue team %s: %v", id, err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateLocation overwrites the last-known position. No history is
// kept.
func (tr *RescueTeamRepository) UpdateLocation(ctx context.Context, id string, latitude, longitude float64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := tr.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"latitude":  latitude,
			"longitude": longitude,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		logrus.Errorf("Failed to update team location: %v", err)
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// GetAvailable returns all teams eligible for assignment, oldest
// registration first so the no-coordinates tie-break is stable.
func (tr *RescueTeamRepository) GetAvailable(ctx context.Context) ([]models.RescueTeam, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := tr.collection.Find(ctx, bson.M{"status": models.TeamStatusAvailable}, opts)
	if err != nil {
		logrus.Errorf("Failed to get available teams: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []models.RescueTeam
	if err = cursor.All(ctx, &teams); err != nil {
		return nil, err
	}

	return teams, nil
}

func (tr *RescueTeamRepository) List(ctx context.Context, status string, page, pageSize int) ([]models.RescueTeam, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	total, err := tr.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := tr.collection.Find(ctx, query, opts)
	if err != nil {
		logrus.Errorf("Failed to list rescue teams: %v", err)
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var teams []models.RescueTeam
	if err = cursor.All(ctx, &teams); err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

func (tr *RescueTeamRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)

	for _, status := range []string{
		models.TeamStatusAvailable,
		models.TeamStatusDeployed,
		models.TeamStatusBusy,
		models.TeamStatusOffDuty,
	} {
		count, err := tr.collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, nil
}
