package repositories

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/models"
)

// RoleRepository stores capability rows in user_roles. Grant/revoke
// are explicit operations, never delete-then-insert.
type RoleRepository struct {
	collection *mongo.Collection
}

func NewRoleRepository(database *mongo.Database) *RoleRepository {
	return &RoleRepository{
		collection: database.Collection("user_roles"),
	}
}

func (rr *RoleRepository) Grant(ctx context.Context, userID, role string, grantedBy string) error {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	record := models.UserRole{
		ID:        primitive.NewObjectID(),
		UserID:    userObjectID,
		Role:      role,
		CreatedAt: time.Now(),
	}

	if grantedBy != "" {
		grantorID, err := primitive.ObjectIDFromHex(grantedBy)
		if err == nil {
			record.GrantedBy = grantorID
		}
	}

	_, err = rr.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		logrus.Errorf("Failed to grant role %s to user %s: %v", role, userID, err)
		return err
	}

	return nil
}

func (rr *RoleRepository) Revoke(ctx context.Context, userID, role string) error {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	result, err := rr.collection.DeleteOne(ctx, bson.M{"userId": userObjectID, "role": role})
	if err != nil {
		logrus.Errorf("Failed to revoke role %s from user %s: %v", role, userID, err)
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// HasRole is the role check every guarded endpoint goes through.
func (rr *RoleRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, ErrInvalidID
	}

	count, err := rr.collection.CountDocuments(ctx, bson.M{"userId": userObjectID, "role": role})
	if err != nil {
		logrus.Errorf("Failed to check role %s for user %s: %v", role, userID, err)
		return false, err
	}

	return count > 0, nil
}

func (rr *RoleRepository) GetUserRoles(ctx context.Context, userID string) ([]string, error) {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	cursor, err := rr.collection.Find(ctx, bson.M{"userId": userObjectID})
	if err != nil {
		logrus.Errorf("Failed to get roles for user %s: %v", userID, err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.UserRole
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(records))
	for _, record := range records {
		roles = append(roles, record.Role)
	}

	return roles, nil
}
