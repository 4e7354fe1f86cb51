package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

// LocationQueueKey is the redis list the location worker drains.
const LocationQueueKey = "team_location_updates"

// LocationUpdate is the queued payload for one position report.
type LocationUpdate struct {
	TeamID     string    `json:"teamId"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reportedAt"`
}

type TeamService struct {
	teamRepo    *repositories.RescueTeamRepository
	missionRepo *repositories.RescueMissionRepository
	redisClient *redis.Client
	hub         *websocket.Hub
	validator   *utils.ValidationService
}

func NewTeamService(
	teamRepo *repositories.RescueTeamRepository,
	missionRepo *repositories.RescueMissionRepository,
	redisClient *redis.Client,
	hub *websocket.Hub,
) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		missionRepo: missionRepo,
		redisClient: redisClient,
		hub:         hub,
		validator:   utils.NewValidationService(),
	}
}

// RegisterTeam creates the caller's rescue team. One team per owner.
func (ts *TeamService) RegisterTeam(ctx context.Context, ownerID string, req models.RegisterTeamRequest) (*models.RescueTeam, error) {
	if validationErrors := ts.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	if _, err := ts.teamRepo.GetByOwner(ctx, ownerID); err == nil {
		return nil, utils.NewTeamAlreadyRegisteredError()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewBadRequestError("Invalid owner ID")
		}
		return nil, utils.WrapDatabaseError(err, "check existing team")
	}

	ownerObjectID, err := utils.ParseObjectID(ownerID)
	if err != nil {
		return nil, utils.NewBadRequestError("Invalid owner ID")
	}

	team := &models.RescueTeam{
		OwnerID:        ownerObjectID,
		TeamName:       req.TeamName,
		Specialization: req.Specialization,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		Status:         models.TeamStatusAvailable,
	}

	if err := ts.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.NewTeamAlreadyRegisteredError()
		}
		return nil, utils.WrapDatabaseError(err, "create rescue team")
	}

	logrus.Infof("🚑 Rescue team registered: %s (%s)", team.TeamName, team.ID.Hex())

	ts.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueTeams,
		Action:   models.ChangeActionInsert,
		RowID:    team.ID.Hex(),
		Row:      team,
	})

	return team, nil
}

func (ts *TeamService) GetTeam(ctx context.Context, teamID string) (*models.RescueTeam, error) {
	team, err := ts.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewTeamNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue team")
	}
	return team, nil
}

func (ts *TeamService) GetMyTeam(ctx context.Context, ownerID string) (*models.RescueTeam, error) {
	team, err := ts.teamRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewTeamNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue team by owner")
	}
	return team, nil
}

func (ts *TeamService) ListTeams(ctx context.Context, status string, page, pageSize int) ([]models.RescueTeam, int64, error) {
	if status != "" && !models.IsValidTeamStatus(status) {
		return nil, 0, utils.NewBadRequestError("Unknown team status")
	}

	page, pageSize = utils.DefaultPagination(page, pageSize)

	teams, total, err := ts.teamRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, utils.WrapDatabaseError(err, "list rescue teams")
	}

	return teams, total, nil
}

func (ts *TeamService) UpdateTeam(ctx context.Context, ownerID string, req models.UpdateTeamRequest) (*models.RescueTeam, error) {
	if validationErrors := ts.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	team, err := ts.GetMyTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	updateFields := bson.M{}
	if req.TeamName != nil {
		updateFields["teamName"] = *req.TeamName
		team.TeamName = *req.TeamName
	}
	if req.Specialization != nil {
		updateFields["specialization"] = *req.Specialization
		team.Specialization = *req.Specialization
	}
	if req.ContactPhone != nil {
		updateFields["contactPhone"] = *req.ContactPhone
		team.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		updateFields["contactEmail"] = *req.ContactEmail
		team.ContactEmail = *req.ContactEmail
	}
	if len(updateFields) == 0 {
		return team, nil
	}

	if err := ts.teamRepo.Update(ctx, team.ID.Hex(), updateFields); err != nil {
		return nil, utils.WrapDatabaseError(err, "update rescue team")
	}

	ts.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueTeams,
		Action:   models.ChangeActionUpdate,
		RowID:    team.ID.Hex(),
		Row:      team,
	})

	return team, nil
}

// UpdateStatus changes the owner's team status. Deployed is dispatch
// controlled: it can be neither set nor left manually while a mission
// is active.
func (ts *TeamService) UpdateStatus(ctx context.Context, ownerID string, req models.UpdateTeamStatusRequest) (*models.RescueTeam, error) {
	if validationErrors := ts.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	if req.Status == models.TeamStatusDeployed {
		return nil, utils.NewBadRequestError("Deployed status is set by dispatch, not manually")
	}

	team, err := ts.GetMyTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := ts.missionRepo.GetActiveByTeam(ctx, team.ID.Hex()); err == nil {
		return nil, utils.NewTeamDeployedError()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.WrapDatabaseError(err, "check active mission")
	}

	if err := ts.teamRepo.UpdateStatusIf(ctx, team.ID.Hex(), team.Status, req.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewInvalidStateError("Team status changed concurrently, retry")
		}
		return nil, utils.WrapDatabaseError(err, "update team status")
	}

	team.Status = req.Status

	ts.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueTeams,
		Action:   models.ChangeActionUpdate,
		RowID:    team.ID.Hex(),
		Row:      team,
	})

	return team, nil
}

// ReportLocation records the team's position. Updates go through the
// redis queue so bursts from many teams are absorbed; without redis
// the write is applied inline.
func (ts *TeamService) ReportLocation(ctx context.Context, ownerID string, req models.ReportLocationRequest) error {
	if !utils.IsValidCoordinate(req.Latitude, req.Longitude) {
		return utils.NewValidationError("Coordinates out of range")
	}

	team, err := ts.GetMyTeam(ctx, ownerID)
	if err != nil {
		return err
	}

	update := LocationUpdate{
		TeamID:     team.ID.Hex(),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		ReportedAt: time.Now(),
	}

	if ts.redisClient != nil {
		payload, err := json.Marshal(update)
		if err == nil {
			if err := ts.redisClient.RPush(ctx, LocationQueueKey, payload).Err(); err == nil {
				return nil
			}
			logrus.Warnf("Location queue unavailable, applying inline: %v", err)
		}
	}

	return ts.ApplyLocationUpdate(ctx, update)
}

// ApplyLocationUpdate persists one position report and broadcasts it.
// Called by the location worker and by the inline fallback.
func (ts *TeamService) ApplyLocationUpdate(ctx context.Context, update LocationUpdate) error {
	if err := ts.teamRepo.UpdateLocation(ctx, update.TeamID, update.Latitude, update.Longitude); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return utils.NewTeamNotFoundError()
		}
		return utils.WrapDatabaseError(err, "update team location")
	}

	ts.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueTeams,
		Action:   models.ChangeActionUpdate,
		RowID:    update.TeamID,
		Row:      update,
	})

	return nil
}
