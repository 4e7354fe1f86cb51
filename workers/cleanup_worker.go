// workers/cleanup_worker.go
package workers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/config"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

// CleanupWorker runs the scheduled maintenance jobs: the dispatch
// sweep for pending requests, stale drone stream detection, and
// retention cleanup for chat and notification history.
type CleanupWorker struct {
	cfg *config.Config

	assignmentService *services.AssignmentService
	chatRepo          *repositories.ChatRepository
	notificationRepo  *repositories.NotificationRepository
	droneRepo         *repositories.DroneRepository
	droneService      *services.DroneService

	cron *cron.Cron
}

func StartCleanupWorker(cfg *config.Config, db *mongo.Database, hub *websocket.Hub, sender *utils.NotificationSender) *CleanupWorker {
	requestRepo := repositories.NewEmergencyRequestRepository(db)
	teamRepo := repositories.NewRescueTeamRepository(db)
	missionRepo := repositories.NewRescueMissionRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	userRepo := repositories.NewUserRepository(db)
	droneRepo := repositories.NewDroneRepository(db)

	notificationService := services.NewNotificationService(notificationRepo, userRepo, sender)

	worker := &CleanupWorker{
		cfg:               cfg,
		assignmentService: services.NewAssignmentService(requestRepo, teamRepo, missionRepo, notificationService, hub),
		chatRepo:          repositories.NewChatRepository(db),
		notificationRepo:  notificationRepo,
		droneRepo:         droneRepo,
		droneService:      services.NewDroneService(droneRepo, hub),
		cron:              cron.New(),
	}

	worker.schedule()
	worker.cron.Start()

	logrus.Info("🧹 Cleanup worker started")
	return worker
}

func (cw *CleanupWorker) schedule() {
	// Requests left pending because no team was free get retried as
	// teams come back.
	cw.cron.AddFunc("@every 1m", cw.sweepPendingRequests)

	cw.cron.AddFunc("@every 5m", cw.markStaleStreams)

	// Retention runs off-peak.
	cw.cron.AddFunc("0 3 * * *", cw.purgeOldRecords)
}

func (cw *CleanupWorker) sweepPendingRequests() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	assigned, err := cw.assignmentService.DispatchPendingRequests(ctx)
	if err != nil {
		logrus.WithError(err).Error("Dispatch sweep failed")
		return
	}

	if assigned > 0 {
		logrus.WithField("assigned", assigned).Info("🚁 Dispatch sweep assigned pending requests")
	}
}

func (cw *CleanupWorker) markStaleStreams() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-time.Duration(cw.cfg.StreamOfflineAfterMinutes) * time.Minute)
	marked, err := cw.droneRepo.MarkStaleOffline(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("Stale stream check failed")
		return
	}

	if marked > 0 {
		logrus.WithField("count", marked).Warn("Marked silent drone streams offline")
	}
}

func (cw *CleanupWorker) purgeOldRecords() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	chatCutoff := time.Now().AddDate(0, 0, -cw.cfg.ChatRetentionDays)
	if deleted, err := cw.chatRepo.DeleteOlderThan(ctx, chatCutoff); err != nil {
		logrus.WithError(err).Error("Chat history cleanup failed")
	} else if deleted > 0 {
		logrus.WithField("count", deleted).Info("Purged old chat messages")
	}

	notificationCutoff := time.Now().AddDate(0, 0, -cw.cfg.NotificationRetentionDays)
	if deleted, err := cw.notificationRepo.DeleteOlderThan(ctx, notificationCutoff); err != nil {
		logrus.WithError(err).Error("Notification cleanup failed")
	} else if deleted > 0 {
		logrus.WithField("count", deleted).Info("Purged old notifications")
	}
}

// Stop halts the schedule and waits for running jobs.
func (cw *CleanupWorker) Stop() {
	ctx := cw.cron.Stop()
	<-ctx.Done()
}
