package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

// NotificationService queues notification rows and delivers them
// through the configured push/SMS channels. Queuing never fails the
// business operation that triggered it.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	sender           *utils.NotificationSender
}

func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo *repositories.UserRepository,
	sender *utils.NotificationSender,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
	}
}

// NotifyAssignment fans out the dispatch side effects: a notification
// row for the reporter, one for the team owner, and a best-effort SMS
// to the team's contact phone.
func (ns *NotificationService) NotifyAssignment(ctx context.Context, request *models.EmergencyRequest, team *models.RescueTeam, mission *models.RescueMission) {
	data := map[string]interface{}{
		"missionId":     mission.ID.Hex(),
		"requestId":     request.ID.Hex(),
		"teamId":        team.ID.Hex(),
		"teamName":      team.TeamName,
		"emergencyType": request.EmergencyType,
	}

	ns.queue(ctx, &models.Notification{
		UserID:   request.ReporterID,
		Type:     models.NotificationTypeMissionAssigned,
		Title:    "Help is on the way",
		Body:     team.TeamName + " has been dispatched to your " + request.EmergencyType + " request",
		Priority: request.Priority,
		Data:     data,
	})

	ns.queue(ctx, &models.Notification{
		UserID:   team.OwnerID,
		Type:     models.NotificationTypeMissionAssigned,
		Title:    "New mission assigned",
		Body:     "Your team was dispatched to a " + request.EmergencyType + " incident",
		Priority: request.Priority,
		Data:     data,
	})

	if ns.sender != nil && team.ContactPhone != "" && request.HasCoordinates() {
		sms := utils.SMSMessage{
			To:      team.ContactPhone,
			Message: ns.sender.CreateAssignmentSMS(team.TeamName, request.EmergencyType, *request.Latitude, *request.Longitude),
		}
		if _, err := ns.sender.SendSMS(ctx, sms); err != nil {
			logrus.Warnf("Assignment SMS to %s failed: %v", team.ContactPhone, err)
		}
	}
}

func (ns *NotificationService) NotifyRequestResolved(ctx context.Context, request *models.EmergencyRequest) {
	ns.queue(ctx, &models.Notification{
		UserID:   request.ReporterID,
		Type:     models.NotificationTypeRequestResolved,
		Title:    "Request resolved",
		Body:     "Your " + request.EmergencyType + " emergency request has been resolved",
		Priority: request.Priority,
		Data: map[string]interface{}{
			"requestId":     request.ID.Hex(),
			"emergencyType": request.EmergencyType,
		},
	})
}

func (ns *NotificationService) queue(ctx context.Context, notification *models.Notification) {
	if err := ns.notificationRepo.Create(ctx, notification); err != nil {
		logrus.Errorf("Failed to queue %s notification: %v", notification.Type, err)
	}
}

// DeliverPending drains a batch of queued notifications through the
// push channel. Called by the notification worker on its tick.
func (ns *NotificationService) DeliverPending(ctx context.Context, batchSize int) (int, error) {
	pending, err := ns.notificationRepo.GetPending(ctx, batchSize)
	if err != nil {
		return 0, utils.WrapDatabaseError(err, "get pending notifications")
	}

	delivered := 0
	for i := range pending {
		notification := pending[i]
		if ns.deliver(ctx, &notification) {
			delivered++
		}
	}

	return delivered, nil
}

func (ns *NotificationService) deliver(ctx context.Context, notification *models.Notification) bool {
	user, err := ns.userRepo.GetByID(ctx, notification.UserID.Hex())

	deviceToken := ""
	if user != nil {
		deviceToken = user.DeviceToken
	}

	switch deliveryAction(err, ns.sender != nil, deviceToken) {
	case deliveryRetry:
		// Transient lookup failure; leave the row pending for the next
		// tick instead of losing it.
		logrus.Warnf("Recipient lookup failed for notification %s: %v", notification.ID.Hex(), err)
		return false
	case deliverySkip:
		// Nobody to push to; mark sent so the row does not spin in the
		// queue forever.
		if err := ns.notificationRepo.MarkSent(ctx, notification.ID); err != nil {
			logrus.Errorf("Failed to mark notification %s sent: %v", notification.ID.Hex(), err)
		}
		return true
	}

	data := make(map[string]string, len(notification.Data))
	for key, value := range notification.Data {
		if s, ok := value.(string); ok {
			data[key] = s
		}
	}

	push := utils.PushNotification{
		Title: notification.Title,
		Body:  notification.Body,
		Data:  data,
		Sound: "default",
	}

	result, err := ns.sender.SendPushNotification(ctx, user.DeviceToken, push)
	if err != nil || !result.Success {
		logrus.Warnf("Push delivery failed for notification %s: %v", notification.ID.Hex(), err)
		if err := ns.notificationRepo.MarkFailed(ctx, notification.ID); err != nil {
			logrus.Errorf("Failed to mark notification %s failed: %v", notification.ID.Hex(), err)
		}
		return false
	}

	if err := ns.notificationRepo.MarkSent(ctx, notification.ID); err != nil {
		logrus.Errorf("Failed to mark notification %s sent: %v", notification.ID.Hex(), err)
	}
	return true
}

const (
	deliveryPush = iota
	deliverySkip
	deliveryRetry
)

// deliveryAction classifies a queued notification from the recipient
// lookup outcome. A recipient that no longer exists or has no device
// token is skipped for good; a failed lookup stays queued.
func deliveryAction(lookupErr error, senderReady bool, deviceToken string) int {
	if lookupErr != nil {
		if errors.Is(lookupErr, repositories.ErrNotFound) || errors.Is(lookupErr, repositories.ErrInvalidID) {
			return deliverySkip
		}
		return deliveryRetry
	}
	if !senderReady || deviceToken == "" {
		return deliverySkip
	}
	return deliveryPush
}

func (ns *NotificationService) GetMyNotifications(ctx context.Context, userID string, page, pageSize int) ([]models.Notification, int64, error) {
	page, pageSize = utils.DefaultPagination(page, pageSize)

	notifications, total, err := ns.notificationRepo.GetByUser(ctx, userID, page, pageSize)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, 0, utils.NewBadRequestError("Invalid user ID")
		}
		return nil, 0, utils.WrapDatabaseError(err, "get notifications")
	}

	return notifications, total, nil
}

func (ns *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	err := ns.notificationRepo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NewNotFoundError("Notification")
		}
		if errors.Is(err, repositories.ErrInvalidID) {
			return utils.NewBadRequestError("Invalid notification ID")
		}
		return utils.WrapDatabaseError(err, "mark notification read")
	}
	return nil
}
