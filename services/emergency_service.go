package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/database"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

type EmergencyService struct {
	requestRepo     *repositories.EmergencyRequestRepository
	missionRepo     *repositories.RescueMissionRepository
	teamRepo        *repositories.RescueTeamRepository
	roleRepo        *repositories.RoleRepository
	notificationSvc *NotificationService
	hub             *websocket.Hub
	validator       *utils.ValidationService
}

func NewEmergencyService(
	requestRepo *repositories.EmergencyRequestRepository,
	missionRepo *repositories.RescueMissionRepository,
	teamRepo *repositories.RescueTeamRepository,
	roleRepo *repositories.RoleRepository,
	notificationSvc *NotificationService,
	hub *websocket.Hub,
) *EmergencyService {
	return &EmergencyService{
		requestRepo:     requestRepo,
		missionRepo:     missionRepo,
		teamRepo:        teamRepo,
		roleRepo:        roleRepo,
		notificationSvc: notificationSvc,
		hub:             hub,
		validator:       utils.NewValidationService(),
	}
}

// CreateRequest files a new emergency request for the reporter. The
// request starts pending; dispatch happens separately.
func (es *EmergencyService) CreateRequest(ctx context.Context, reporterID string, req models.CreateEmergencyRequestRequest) (*models.EmergencyRequest, error) {
	if validationErrors := es.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	// Coordinates are both-or-neither.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, utils.NewValidationError("Latitude and longitude must be provided together")
	}

	reporterObjectID, err := utils.ParseObjectID(reporterID)
	if err != nil {
		return nil, utils.NewBadRequestError("Invalid reporter ID")
	}

	request := &models.EmergencyRequest{
		ReporterID:    reporterObjectID,
		EmergencyType: req.EmergencyType,
		Description:   req.Description,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Priority:      req.Priority,
		Status:        models.RequestStatusPending,
	}

	if err := es.requestRepo.Create(ctx, request); err != nil {
		return nil, utils.WrapDatabaseError(err, "create emergency request")
	}

	logrus.Infof("🚨 Emergency request %s filed: %s/%s", request.ID.Hex(), request.EmergencyType, request.Priority)

	es.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationEmergencyRequests,
		Action:   models.ChangeActionInsert,
		RowID:    request.ID.Hex(),
		Row:      request,
	})

	return request, nil
}

// GetRequest returns a request to its reporter, any rescue team
// member, or an admin.
func (es *EmergencyService) GetRequest(ctx context.Context, userID, requestID string) (*models.EmergencyRequest, error) {
	request, err := es.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewRequestNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get emergency request")
	}

	if request.ReporterID.Hex() != userID && !es.hasResponderAccess(ctx, userID) {
		return nil, utils.NewInsufficientPermissionsError()
	}

	return request, nil
}

func (es *EmergencyService) GetMyRequests(ctx context.Context, reporterID string) ([]models.EmergencyRequest, error) {
	requests, err := es.requestRepo.GetByReporter(ctx, reporterID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewBadRequestError("Invalid reporter ID")
		}
		return nil, utils.WrapDatabaseError(err, "get reporter requests")
	}
	return requests, nil
}

// ListRequests is the responder/admin view with filters and
// pagination.
func (es *EmergencyService) ListRequests(ctx context.Context, filter models.EmergencyRequestFilter, page, pageSize int) ([]models.EmergencyRequest, int64, error) {
	page, pageSize = utils.DefaultPagination(page, pageSize)

	requests, total, err := es.requestRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, utils.WrapDatabaseError(err, "list emergency requests")
	}

	return requests, total, nil
}

// UpdateRequest lets the reporter adjust description or priority while
// the request is still pending. Status changes go through the mission
// lifecycle, never through this endpoint.
func (es *EmergencyService) UpdateRequest(ctx context.Context, userID, requestID string, req models.UpdateEmergencyRequestRequest) (*models.EmergencyRequest, error) {
	if validationErrors := es.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}
	if req.Status != nil {
		return nil, utils.NewBadRequestError("Status cannot be edited directly")
	}

	request, err := es.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewRequestNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get emergency request")
	}

	if request.ReporterID.Hex() != userID {
		return nil, utils.NewInsufficientPermissionsError()
	}
	if request.Status != models.RequestStatusPending {
		return nil, utils.NewInvalidStateError("Only pending requests can be edited")
	}

	updateFields := bson.M{}
	if req.Description != nil {
		updateFields["description"] = *req.Description
		request.Description = *req.Description
	}
	if req.Priority != nil {
		updateFields["priority"] = *req.Priority
		request.Priority = *req.Priority
	}
	if len(updateFields) == 0 {
		return request, nil
	}

	if err := es.requestRepo.Update(ctx, requestID, updateFields); err != nil {
		return nil, utils.WrapDatabaseError(err, "update emergency request")
	}

	es.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationEmergencyRequests,
		Action:   models.ChangeActionUpdate,
		RowID:    request.ID.Hex(),
		Row:      request,
	})

	return request, nil
}

// CancelRequest moves a non-terminal request to cancelled. If a
// mission is active for it, the mission is cancelled and the team is
// released in the same transaction.
func (es *EmergencyService) CancelRequest(ctx context.Context, userID, requestID string, isAdmin bool) (*models.EmergencyRequest, error) {
	request, err := es.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewRequestNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get emergency request")
	}

	if request.ReporterID.Hex() != userID && !isAdmin {
		return nil, utils.NewInsufficientPermissionsError()
	}

	if !models.CanRequestTransition(request.Status, models.RequestStatusCancelled) {
		return nil, utils.NewInvalidStateError("Request is already closed")
	}

	mission, err := es.missionRepo.GetActiveByRequest(ctx, requestID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.WrapDatabaseError(err, "get active mission")
	}

	previousStatus := request.Status

	missionFrom := ""
	if mission != nil {
		missionFrom = mission.Status
		if err := mission.ApplyTransition(models.MissionStatusCancelled, time.Now()); err != nil {
			return nil, utils.NewInvalidStateError("Mission cannot be cancelled")
		}
	}

	session, err := database.GetClient().StartSession()
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "start session")
	}
	defer session.EndSession(ctx)

	// The in-memory transition happened above; the callback only issues
	// writes so the driver can re-run it on transient aborts.
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if mission != nil {
			if err := es.missionRepo.Replace(sessCtx, mission, missionFrom); err != nil {
				return nil, err
			}
			if err := es.teamRepo.UpdateStatusIf(sessCtx, mission.RescueTeamID.Hex(), models.TeamStatusDeployed, models.TeamStatusAvailable); err != nil {
				// Team may have gone off duty through an admin path;
				// cancellation still proceeds.
				logrus.Warnf("Could not release team %s on cancellation: %v", mission.RescueTeamID.Hex(), err)
			}
		}

		return nil, es.requestRepo.UpdateStatusIf(sessCtx, requestID, previousStatus, models.RequestStatusCancelled)
	})
	if err != nil {
		if utils.IsServiceError(err) {
			return nil, err
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewInvalidStateError("Request changed while cancelling, retry")
		}
		return nil, utils.WrapDatabaseError(err, "cancel request")
	}

	request.Status = models.RequestStatusCancelled

	logrus.Infof("🛑 Emergency request %s cancelled", requestID)

	es.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationEmergencyRequests,
		Action:   models.ChangeActionUpdate,
		RowID:    request.ID.Hex(),
		Row:      request,
	})
	if mission != nil {
		es.hub.PublishChange(models.ChangeEvent{
			Relation: models.RelationRescueMissions,
			Action:   models.ChangeActionUpdate,
			RowID:    mission.ID.Hex(),
			Row:      mission,
		})
	}

	return request, nil
}

func (es *EmergencyService) hasResponderAccess(ctx context.Context, userID string) bool {
	for _, role := range []string{models.RoleAdmin, models.RoleRescueTeam} {
		ok, err := es.roleRepo.HasRole(ctx, userID, role)
		if err == nil && ok {
			return true
		}
	}
	return false
}
