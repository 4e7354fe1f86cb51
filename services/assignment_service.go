package services

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/database"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

// AssignmentService pairs pending emergency requests with available
// rescue teams. Selection is nearest-first when the request carries
// coordinates, oldest-registered-first otherwise.
type AssignmentService struct {
	requestRepo     *repositories.EmergencyRequestRepository
	teamRepo        *repositories.RescueTeamRepository
	missionRepo     *repositories.RescueMissionRepository
	notificationSvc *NotificationService
	hub             *websocket.Hub
}

func NewAssignmentService(
	requestRepo *repositories.EmergencyRequestRepository,
	teamRepo *repositories.RescueTeamRepository,
	missionRepo *repositories.RescueMissionRepository,
	notificationSvc *NotificationService,
	hub *websocket.Hub,
) *AssignmentService {
	return &AssignmentService{
		requestRepo:     requestRepo,
		teamRepo:        teamRepo,
		missionRepo:     missionRepo,
		notificationSvc: notificationSvc,
		hub:             hub,
	}
}

// RankedTeam is one candidate with its distance to the incident, when
// both sides have coordinates.
type RankedTeam struct {
	Team       models.RescueTeam
	DistanceKm *float64
}

// RankTeams orders available teams for a request. With request
// coordinates, teams with a known position come first by ascending
// distance; teams without one follow in registration order. Without
// request coordinates the incoming registration order is kept.
func RankTeams(request *models.EmergencyRequest, teams []models.RescueTeam) []RankedTeam {
	ranked := make([]RankedTeam, 0, len(teams))
	for _, team := range teams {
		if !team.IsEligibleForAssignment() {
			continue
		}

		candidate := RankedTeam{Team: team}
		if request.HasCoordinates() && team.HasKnownPosition() {
			distance := utils.CalculateDistanceKm(
				*request.Latitude, *request.Longitude,
				*team.Latitude, *team.Longitude,
			)
			candidate.DistanceKm = &distance
		}
		ranked = append(ranked, candidate)
	}

	if !request.HasCoordinates() {
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := ranked[i].DistanceKm, ranked[j].DistanceKm
		if di != nil && dj != nil {
			return *di < *dj
		}
		// Known positions rank ahead of unknown ones.
		return di != nil && dj == nil
	})

	return ranked
}

// AutoAssign dispatches the best available team to a pending request.
// A nil-assigned result without error means no team was available; the
// request stays pending.
func (s *AssignmentService) AutoAssign(ctx context.Context, requestID string) (*models.AssignmentResult, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewRequestNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get emergency request")
	}

	if request.Status != models.RequestStatusPending {
		return nil, utils.NewInvalidStateError("Only pending requests can be assigned")
	}

	teams, err := s.teamRepo.GetAvailable(ctx)
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "get available teams")
	}

	candidates := RankTeams(request, teams)
	if len(candidates) == 0 {
		logrus.Infof("📭 No available team for request %s, staying pending", requestID)
		return &models.AssignmentResult{Assigned: false}, nil
	}

	// Candidates are tried in rank order. A claim that loses a race to
	// another dispatcher moves on to the next team.
	for _, candidate := range candidates {
		result, err := s.dispatch(ctx, request, candidate)
		if err != nil {
			if isClaimConflict(err) {
				logrus.Debugf("Team %s claimed concurrently, trying next candidate", candidate.Team.ID.Hex())
				continue
			}
			return nil, err
		}
		return result, nil
	}

	return &models.AssignmentResult{Assigned: false}, nil
}

// ManualAssign lets an admin dispatch a specific team, bypassing
// ranking but not eligibility.
func (s *AssignmentService) ManualAssign(ctx context.Context, requestID string, req models.ManualAssignRequest) (*models.AssignmentResult, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewRequestNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get emergency request")
	}

	if request.Status != models.RequestStatusPending {
		return nil, utils.NewInvalidStateError("Only pending requests can be assigned")
	}

	team, err := s.teamRepo.GetByID(ctx, req.RescueTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewTeamNotFoundError()
		}
		return nil, utils.WrapDatabaseError(err, "get rescue team")
	}

	if !team.IsEligibleForAssignment() {
		return nil, utils.NewInvalidStateError("Team is not available for assignment")
	}

	candidate := RankedTeam{Team: *team}
	if request.HasCoordinates() && team.HasKnownPosition() {
		distance := utils.CalculateDistanceKm(
			*request.Latitude, *request.Longitude,
			*team.Latitude, *team.Longitude,
		)
		candidate.DistanceKm = &distance
	}

	result, err := s.dispatch(ctx, request, candidate)
	if err != nil {
		if isClaimConflict(err) {
			return nil, utils.NewInvalidStateError("Request or team was claimed concurrently")
		}
		return nil, err
	}
	return result, nil
}

// dispatch performs the three-way claim in one transaction: the
// mission insert, the request pending->assigned flip, and the team
// available->deployed flip. Any precondition miss aborts all three.
func (s *AssignmentService) dispatch(ctx context.Context, request *models.EmergencyRequest, candidate RankedTeam) (*models.AssignmentResult, error) {
	team := candidate.Team

	mission := &models.RescueMission{
		EmergencyRequestID: request.ID,
		RescueTeamID:       team.ID,
		Status:             models.MissionStatusAssigned,
		Priority:           request.Priority,
	}

	session, err := database.GetClient().StartSession()
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.missionRepo.Create(sessCtx, mission); err != nil {
			return nil, err
		}
		if err := s.teamRepo.UpdateStatusIf(sessCtx, team.ID.Hex(), models.TeamStatusAvailable, models.TeamStatusDeployed); err != nil {
			return nil, err
		}
		return nil, s.requestRepo.UpdateStatusIf(sessCtx, request.ID.Hex(), models.RequestStatusPending, models.RequestStatusAssigned)
	})
	if err != nil {
		return nil, err
	}

	request.Status = models.RequestStatusAssigned
	team.Status = models.TeamStatusDeployed

	logrus.Infof("🚁 Request %s assigned to team %s (mission %s)",
		request.ID.Hex(), team.TeamName, mission.ID.Hex())

	s.publishDispatch(request, &team, mission)

	if s.notificationSvc != nil {
		go s.notificationSvc.NotifyAssignment(context.Background(), request, &team, mission)
	}

	return &models.AssignmentResult{
		Assigned:   true,
		TeamID:     team.ID.Hex(),
		MissionID:  mission.ID.Hex(),
		DistanceKm: candidate.DistanceKm,
		Mission:    mission,
	}, nil
}

func (s *AssignmentService) publishDispatch(request *models.EmergencyRequest, team *models.RescueTeam, mission *models.RescueMission) {
	s.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueMissions,
		Action:   models.ChangeActionInsert,
		RowID:    mission.ID.Hex(),
		Row:      mission,
	})
	s.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationEmergencyRequests,
		Action:   models.ChangeActionUpdate,
		RowID:    request.ID.Hex(),
		Row:      request,
	})
	s.hub.PublishChange(models.ChangeEvent{
		Relation: models.RelationRescueTeams,
		Action:   models.ChangeActionUpdate,
		RowID:    team.ID.Hex(),
		Row:      team,
	})
}

// DispatchPendingRequests sweeps pending requests oldest-first and
// assigns what it can. Run by the dispatch cron as a safety net for
// requests filed while no team was free.
func (s *AssignmentService) DispatchPendingRequests(ctx context.Context) (int, error) {
	pending, err := s.requestRepo.GetPending(ctx)
	if err != nil {
		return 0, utils.WrapDatabaseError(err, "get pending requests")
	}

	assigned := 0
	for i := range pending {
		result, err := s.AutoAssign(ctx, pending[i].ID.Hex())
		if err != nil {
			// An invalid-state error means someone else just handled
			// this request; keep sweeping.
			if serviceErr, ok := utils.GetServiceError(err); ok && serviceErr.Code == "INVALID_STATE" {
				continue
			}
			return assigned, err
		}
		if result.Assigned {
			assigned++
		} else {
			// No team left for the rest of the sweep either.
			break
		}
	}

	if assigned > 0 {
		logrus.Infof("📦 Dispatch sweep assigned %d pending request(s)", assigned)
	}

	return assigned, nil
}

// isClaimConflict reports whether a dispatch transaction failed only
// because a precondition was claimed by a concurrent writer.
func isClaimConflict(err error) bool {
	return errors.Is(err, repositories.ErrDuplicate) || errors.Is(err, repositories.ErrNotFound)
}
