// workers/location_worker.go
package workers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

// LocationWorker drains the team location queue and applies updates to
// the team documents. Position reports are queued by the API layer so
// a burst of pings from teams in the field never stalls a request.
type LocationWorker struct {
	redis       *redis.Client
	teamService *services.TeamService

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// StartLocationWorker builds the worker and begins draining the queue.
// Without redis there is no queue: reports were applied inline and the
// worker has nothing to do.
func StartLocationWorker(db *mongo.Database, redisClient *redis.Client, hub *websocket.Hub) *LocationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	teamRepo := repositories.NewRescueTeamRepository(db)
	missionRepo := repositories.NewRescueMissionRepository(db)
	teamService := services.NewTeamService(teamRepo, missionRepo, redisClient, hub)

	worker := &LocationWorker{
		redis:       redisClient,
		teamService: teamService,
		ctx:         ctx,
		cancel:      cancel,
	}

	if redisClient == nil {
		logrus.Warn("Location worker disabled: no redis client")
		return worker
	}

	worker.wg.Add(1)
	go worker.run()

	logrus.Info("📍 Location worker started")
	return worker
}

func (lw *LocationWorker) run() {
	defer lw.wg.Done()

	for {
		select {
		case <-lw.ctx.Done():
			return
		default:
		}

		// The pop timeout doubles as the shutdown poll interval.
		result, err := lw.redis.BLPop(lw.ctx, 5*time.Second, services.LocationQueueKey).Result()
		if err != nil {
			if err == redis.Nil || lw.ctx.Err() != nil {
				continue
			}
			logrus.WithError(err).Error("Location queue pop failed")
			time.Sleep(time.Second)
			continue
		}

		// BLPop returns [key, value].
		if len(result) < 2 {
			continue
		}

		lw.process(result[1])
	}
}

func (lw *LocationWorker) process(payload string) {
	var update services.LocationUpdate
	if err := json.Unmarshal([]byte(payload), &update); err != nil {
		logrus.WithError(err).Warn("Dropping malformed location update")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := lw.teamService.ApplyLocationUpdate(ctx, update); err != nil {
		logrus.WithFields(logrus.Fields{
			"team_id": update.TeamID,
			"error":   err.Error(),
		}).Error("Failed to apply location update")
	}
}

// Stop halts the drain loop and waits for in-flight work.
func (lw *LocationWorker) Stop() {
	lw.cancel()
	lw.wg.Wait()
}
