package services

import (
	"context"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

// StatsService aggregates counts for the operations dashboard.
type StatsService struct {
	requestRepo *repositories.EmergencyRequestRepository
	teamRepo    *repositories.RescueTeamRepository
	missionRepo *repositories.RescueMissionRepository
	droneRepo   *repositories.DroneRepository
}

func NewStatsService(
	requestRepo *repositories.EmergencyRequestRepository,
	teamRepo *repositories.RescueTeamRepository,
	missionRepo *repositories.RescueMissionRepository,
	droneRepo *repositories.DroneRepository,
) *StatsService {
	return &StatsService{
		requestRepo: requestRepo,
		teamRepo:    teamRepo,
		missionRepo: missionRepo,
		droneRepo:   droneRepo,
	}
}

func (ss *StatsService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	requestCounts, err := ss.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "count requests")
	}

	teamCounts, err := ss.teamRepo.CountByStatus(ctx)
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "count teams")
	}

	missionCounts, err := ss.missionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "count missions")
	}

	streamTotal, streamOnline, err := ss.droneRepo.CountByStatus(ctx)
	if err != nil {
		return nil, utils.WrapDatabaseError(err, "count streams")
	}

	stats := &models.DashboardStats{
		Requests: models.RequestStats{
			Pending:    requestCounts[models.RequestStatusPending],
			Assigned:   requestCounts[models.RequestStatusAssigned],
			InProgress: requestCounts[models.RequestStatusInProgress],
			Resolved:   requestCounts[models.RequestStatusResolved],
			Cancelled:  requestCounts[models.RequestStatusCancelled],
		},
		Teams: models.TeamStats{
			Available: teamCounts[models.TeamStatusAvailable],
			Deployed:  teamCounts[models.TeamStatusDeployed],
			OffDuty:   teamCounts[models.TeamStatusOffDuty] + teamCounts[models.TeamStatusBusy],
		},
		Missions: models.MissionStats{
			Active:    missionCounts[models.MissionStatusAssigned] + missionCounts[models.MissionStatusInProgress],
			Completed: missionCounts[models.MissionStatusCompleted],
			Cancelled: missionCounts[models.MissionStatusCancelled],
		},
		Streams: models.StreamStats{
			Total:  streamTotal,
			Online: streamOnline,
		},
	}

	for _, count := range requestCounts {
		stats.Requests.Total += count
	}
	for _, count := range teamCounts {
		stats.Teams.Total += count
	}
	for _, count := range missionCounts {
		stats.Missions.Total += count
	}

	return stats, nil
}
