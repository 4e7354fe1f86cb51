// workers/notification_worker.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

const deliveryInterval = 15 * time.Second

// NotificationWorker pushes queued notifications out through FCM and
// Twilio. Services only ever enqueue; delivery happens here so a slow
// provider never blocks dispatch.
type NotificationWorker struct {
	notificationService *services.NotificationService
	batchSize           int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func StartNotificationWorker(db *mongo.Database, sender *utils.NotificationSender, batchSize int) *NotificationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	notificationRepo := repositories.NewNotificationRepository(db)
	userRepo := repositories.NewUserRepository(db)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, sender)

	worker := &NotificationWorker{
		notificationService: notificationService,
		batchSize:           batchSize,
		ctx:                 ctx,
		cancel:              cancel,
	}

	worker.wg.Add(1)
	go worker.run()

	logrus.Info("🔔 Notification worker started")
	return worker
}

func (nw *NotificationWorker) run() {
	defer nw.wg.Done()

	ticker := time.NewTicker(deliveryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-nw.ctx.Done():
			return
		case <-ticker.C:
			nw.deliverBatch()
		}
	}
}

func (nw *NotificationWorker) deliverBatch() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	delivered, err := nw.notificationService.DeliverPending(ctx, nw.batchSize)
	if err != nil {
		logrus.WithError(err).Error("Notification delivery pass failed")
		return
	}

	if delivered > 0 {
		logrus.WithField("count", delivered).Info("Delivered notifications")
	}
}

// Stop halts the delivery loop and waits for the current batch.
func (nw *NotificationWorker) Stop() {
	nw.cancel()
	nw.wg.Wait()
}
