package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/venkatesh1545/drone-x-alert-now/models"
)

// RunSeeders inserts development fixtures: an admin account and a few
// rescue teams spread around a city center. Safe to run repeatedly.
func RunSeeders(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seedAdminUser(ctx, db); err != nil {
		return err
	}
	if err := seedRescueTeams(ctx, db); err != nil {
		return err
	}

	logrus.Info("🌱 Seeders completed")
	return nil
}

func seedAdminUser(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")

	count, err := users.CountDocuments(ctx, bson.M{"email": "admin@dronexalert.local"})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.User{
		ID:        primitive.NewObjectID(),
		Email:     "admin@dronexalert.local",
		Password:  string(hashed),
		FirstName: "Ops",
		LastName:  "Admin",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := users.InsertOne(ctx, admin); err != nil {
		return err
	}

	_, err = db.Collection("user_roles").InsertOne(ctx, models.UserRole{
		ID:        primitive.NewObjectID(),
		UserID:    admin.ID,
		Role:      models.RoleAdmin,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	logrus.Info("🌱 Seeded admin user admin@dronexalert.local")
	return nil
}

func seedRescueTeams(ctx context.Context, db *mongo.Database) error {
	teams := db.Collection("rescue_teams")

	count, err := teams.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type fixture struct {
		name           string
		specialization string
		email          string
		lat, lng       float64
	}

	fixtures := []fixture{
		{"Alpha Flood Response", "swift water rescue", "alpha@dronexalert.local", 17.3850, 78.4867},
		{"Bravo Medical Unit", "field medicine", "bravo@dronexalert.local", 17.4012, 78.4721},
		{"Charlie Search & Rescue", "urban search and rescue", "charlie@dronexalert.local", 17.3620, 78.5010},
	}

	now := time.Now()
	users := db.Collection("users")
	roles := db.Collection("user_roles")

	for _, f := range fixtures {
		hashed, err := bcrypt.GenerateFromPassword([]byte("team12345"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		owner := models.User{
			ID:        primitive.NewObjectID(),
			Email:     f.email,
			Password:  string(hashed),
			FirstName: f.name,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := users.InsertOne(ctx, owner); err != nil {
			return err
		}

		if _, err := roles.InsertOne(ctx, models.UserRole{
			ID:        primitive.NewObjectID(),
			UserID:    owner.ID,
			Role:      models.RoleRescueTeam,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		lat, lng := f.lat, f.lng
		team := models.RescueTeam{
			ID:             primitive.NewObjectID(),
			OwnerID:        owner.ID,
			TeamName:       f.name,
			Specialization: f.specialization,
			Status:         models.TeamStatusAvailable,
			Latitude:       &lat,
			Longitude:      &lng,
			ContactEmail:   f.email,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := teams.InsertOne(ctx, team); err != nil {
			return err
		}
	}

	logrus.Infof("🌱 Seeded %d rescue teams", len(fixtures))
	return nil
}
