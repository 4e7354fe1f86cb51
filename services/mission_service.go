package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/database"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

type MissionService struct {
	missionRepo     *repositories.RescueMissionRepository
	requestRepo     *repositories.EmergencyRequestRepository
	teamRepo        *repositories.RescueTeamRepository
	roleRepo        *repositories.RoleRepository
	notificationSvc *NotificationService
	hub             *websocket.Hub
	validator       *utils.ValidationService
}

func NewMissionService(
	missionRepo *repositories.RescueMissionRepository,
	requestRepo *repositories.EmergencyRequestRepository,
	teamRepo *repositories.RescueTeamRepository,
	roleRepo *repositories.RoleRepository,
	notificationSvc *NotificationService,
	hub *websocket.Hub,
) *MissionService {
	return &MissionService{
		missionRepo:     missionRepo,
		requestRepo:     requestRepo,
		teamRepo:        teamRepo,
		roleRepo:        roleRepo,
		notificationSvc: notificationSvc,
		hub:             hub,
		validator:       utils.NewValidationService(),
	}
}

func (ms *MissionService) GetMission(ctx context.Context, userID, missionID string) (*models.RescueMission, error) {
	mission, err := ms.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewMissionNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue mission")
	}

	if !ms.canViewMission(ctx, userID, mission) {
		return nil, utils.NewInsufficientPermissionsError()
	}

	return mission, nil
}

// GetMyMissions returns the full mission history for the caller's
// team, newest first.
func (ms *MissionService) GetMyMissions(ctx context.Context, ownerID string) ([]models.RescueMission, error) {
	team, err := ms.teamRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewTeamNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue team by owner")
	}

	missions, err := ms.missionRepo.GetByTeam(ctx, team.ID.Hex())
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "get team missions")
	}

	return missions, nil
}

// GetActiveMission returns the caller team's current mission, or a
// not-found error when the team is idle.
func (ms *MissionService) GetActiveMission(ctx context.Context, ownerID string) (*models.RescueMission, error) {
	team, err := ms.teamRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewTeamNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue team by owner")
	}

	mission, err := ms.missionRepo.GetActiveByTeam(ctx, team.ID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewMissionNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get active mission")
	}

	return mission, nil
}

func (ms *MissionService) ListMissions(ctx context.Context, status string, page, pageSize int) ([]models.RescueMission, int64, error) {
	page, pageSize = utils.DefaultPagination(page, pageSize)

	missions, total, err := ms.missionRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, utils.WrapDatabaseError(err, "list rescue missions")
	}

	return missions, total, nil
}

// UpdateStatus moves a mission through its lifecycle. The parent
// request follows in lockstep inside the same transaction, and a
// terminal transition releases the team.
//
// A cancelled mission re-opens its request to pending so dispatch can
// try again; a completed mission resolves it.
func (ms *MissionService) UpdateStatus(ctx context.Context, ownerID, missionID string, req models.UpdateMissionStatusRequest) (*models.RescueMission, error) {
	if validationErrors := ms.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	mission, err := ms.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewMissionNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue mission")
	}

	team, err := ms.teamRepo.GetByID(ctx, mission.RescueTeamID.Hex())
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "get rescue team")
	}

	if team.OwnerID.Hex() != ownerID && !ms.isAdmin(ctx, ownerID) {
		return nil, utils.NewInsufficientPermissionsError()
	}

	// Idempotent repeat: reporting in_progress while already in
	// progress succeeds without touching arrival.
	if mission.Status == req.Status && req.Status == models.MissionStatusInProgress {
		return mission, nil
	}

	fromStatus := mission.Status
	if err := mission.ApplyTransition(req.Status, time.Now()); err != nil {
		return nil, utils.NewInvalidStateError("Mission cannot move from " + fromStatus + " to " + req.Status)
	}
	if req.EstimatedArrival != nil {
		mission.EstimatedArrival = req.EstimatedArrival
	}

	request, err := ms.requestRepo.GetByID(ctx, mission.EmergencyRequestID.Hex())
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "get parent request")
	}

	requestFrom := request.Status
	nextRequestStatus, moveRequest := nextRequestStatusForMission(req.Status, requestFrom)

	session, err := database.GetClient().StartSession()
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "start session")
	}
	defer session.EndSession(ctx)

	// The callback only issues writes from state computed above: the
	// driver re-runs it on transient aborts, so it must not mutate
	// anything it captures.
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := ms.missionRepo.Replace(sessCtx, mission, fromStatus); err != nil {
			return nil, err
		}

		if moveRequest {
			if err := ms.requestRepo.UpdateStatusIf(sessCtx, request.ID.Hex(), requestFrom, nextRequestStatus); err != nil {
				return nil, err
			}
		}

		if mission.IsTerminal() {
			if err := ms.teamRepo.UpdateStatusIf(sessCtx, team.ID.Hex(), models.TeamStatusDeployed, models.TeamStatusAvailable); err != nil {
				// Tolerated: an admin may have moved the team already.
				logrus.Warnf("Could not release team %s after mission %s: %v", team.ID.Hex(), missionID, err)
			}
		}

		return nil, nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewInvalidStateError("Mission changed concurrently, retry")
		}
		return nil, utils.WrapDatabaseError(err, "apply mission transition")
	}

	if moveRequest {
		request.Status = nextRequestStatus
	}

	logrus.Infof("🎯 Mission %s: %s -> %s", missionID, fromStatus, mission.Status)

	ms.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueMissions,
		Action:   models.ChangeActionUpdate,
		RowID:    mission.ID.Hex(),
		Row:      mission,
	})
	ms.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationEmergencyRequests,
		Action:   models.ChangeActionUpdate,
		RowID:    request.ID.Hex(),
		Row:      request,
	})

	if mission.Status == models.MissionStatusCompleted && ms.notificationSvc != nil {
		go ms.notificationSvc.NotifyRequestResolved(context.Background(), request)
	}

	return mission, nil
}

// UpdateNotes edits mission notes without touching the lifecycle.
// Active missions only.
func (ms *MissionService) UpdateNotes(ctx context.Context, ownerID, missionID string, req models.UpdateMissionNotesRequest) (*models.RescueMission, error) {
	if validationErrors := ms.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	mission, err := ms.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewMissionNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue mission")
	}

	team, err := ms.teamRepo.GetByID(ctx, mission.RescueTeamID.Hex())
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "get rescue team")
	}
	if team.OwnerID.Hex() != ownerID && !ms.isAdmin(ctx, ownerID) {
		return nil, utils.NewInsufficientPermissionsError()
	}

	if mission.IsTerminal() {
		return nil, utils.NewInvalidStateError("Notes are frozen once the mission is closed")
	}

	if err := ms.missionRepo.UpdateNotes(ctx, missionID, req.Notes); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewInvalidStateError("Mission closed concurrently")
		}
		return nil, utils.WrapDatabaseError(err, "update mission notes")
	}

	mission.Notes = req.Notes

	ms.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueMissions,
		Action:   models.ChangeActionUpdate,
		RowID:    mission.ID.Hex(),
		Row:      mission,
	})

	return mission, nil
}

// nextRequestStatusForMission maps a mission transition onto the
// parent request's lockstep move. Cancellation re-opens the request so
// dispatch can try another team. Returns false when the request should
// not move.
func nextRequestStatusForMission(missionStatus, currentRequestStatus string) (string, bool) {
	next := ""
	if missionStatus == models.MissionStatusCancelled {
		next = models.RequestStatusPending
	} else if mapped, ok := models.RequestStatusForMission(missionStatus); ok {
		next = mapped
	}

	if next == "" || next == currentRequestStatus {
		return "", false
	}
	return next, true
}

func (ms *MissionService) canViewMission(ctx context.Context, userID string, mission *models.RescueMission) bool {
	team, err := ms.teamRepo.GetByID(ctx, mission.RescueTeamID.Hex())
	if err == nil && team.OwnerID.Hex() == userID {
		return true
	}

	request, err := ms.requestRepo.GetByID(ctx, mission.EmergencyRequestID.Hex())
	if err == nil && request.ReporterID.Hex() == userID {
		return true
	}

	return ms.isAdmin(ctx, userID)
}

func (ms *MissionService) isAdmin(ctx context.Context, userID string) bool {
	ok, err := ms.roleRepo.HasRole(ctx, userID, models.RoleAdmin)
	return err == nil && ok
}
