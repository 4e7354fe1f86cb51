package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

// DroneService manages the stream registry. Metadata only; nothing
// here touches video.
type DroneService struct {
	droneRepo *repositories.DroneRepository
	hub       *websocket.Hub
	validator *utils.ValidationService
}

func NewDroneService(droneRepo *repositories.DroneRepository, hub *websocket.Hub) *DroneService {
	return &DroneService{
		droneRepo: droneRepo,
		hub:       hub,
		validator: utils.NewValidationService(),
	}
}

func (ds *DroneService) RegisterStream(ctx context.Context, adminID string, req models.RegisterStreamRequest) (*models.DroneStream, error) {
	if validationErrors := ds.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, utils.NewValidationError("Latitude and longitude must be provided together")
	}

	adminObjectID, err := utils.ParseObjectID(adminID)
	if err != nil {
		return nil, utils.NewBadRequestError("Invalid admin ID")
	}

	stream := &models.DroneStream{
		Name:        req.Name,
		Description: req.Description,
		StreamURL:   req.StreamURL,
		Status:      models.StreamStatusOffline,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		CreatedBy:   adminObjectID,
	}

	if err := ds.droneRepo.Create(ctx, stream); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.NewConflictError("A stream with this URL already exists")
		}
		return nil, utils.WrapDatabaseError(err, "create drone stream")
	}

	logrus.Infof("🎥 Drone stream registered: %s", stream.Name)

	ds.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationDroneStreams,
		Action:   models.ChangeActionInsert,
		RowID:    stream.ID.Hex(),
		Row:      stream,
	})

	return stream, nil
}

func (ds *DroneService) GetStream(ctx context.Context, streamID string) (*models.DroneStream, error) {
	stream, err := ds.droneRepo.GetByID(ctx, streamID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewNotFoundError("Drone stream")
		}
		return nil, utils.WrapDatabaseError(err, "get drone stream")
	}
	return stream, nil
}

func (ds *DroneService) ListStreams(ctx context.Context, status string) ([]models.DroneStream, error) {
	streams, err := ds.droneRepo.List(ctx, status)
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "list drone streams")
	}
	return streams, nil
}

// UpdateStatus flips a stream between online/offline/maintenance and
// refreshes its heartbeat.
func (ds *DroneService) UpdateStatus(ctx context.Context, streamID string, req models.UpdateStreamStatusRequest) (*models.DroneStream, error) {
	if validationErrors := ds.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	stream, err := ds.GetStream(ctx, streamID)
	if err != nil {
		return nil, err
	}

	updateFields := bson.M{"status": req.Status}
	if req.Status == models.StreamStatusOnline {
		updateFields["lastSeenAt"] = time.Now()
	}

	if err := ds.droneRepo.Update(ctx, streamID, updateFields); err != nil {
		return nil, utils.WrapDatabaseError(err, "update drone stream")
	}

	stream.Status = req.Status

	ds.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationDroneStreams,
		Action:   models.ChangeActionUpdate,
		RowID:    stream.ID.Hex(),
		Row:      stream,
	})

	return stream, nil
}

func (ds *DroneService) DeleteStream(ctx context.Context, streamID string) error {
	err := ds.droneRepo.Delete(ctx, streamID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return utils.NewNotFoundError("Drone stream")
		}
		return utils.WrapDatabaseError(err, "delete drone stream")
	}

	ds.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationDroneStreams,
		Action:   models.ChangeActionDelete,
		RowID:    streamID,
	})

	return nil
}
