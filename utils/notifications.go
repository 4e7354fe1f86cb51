package utils

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"google.golang.org/api/option"
)

// NotificationSender delivers push and SMS side effects. Either
// channel may be nil when the corresponding credentials are missing;
// sends then degrade to a no-op result.
type NotificationSender struct {
	fcmClient    *messaging.Client
	twilioClient *twilio.RestClient
	twilioNumber string
}

type PushNotification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
	Sound string            `json:"sound,omitempty"`
}

type SMSMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type NotificationResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func NewNotificationSender(firebaseCredentials, twilioSID, twilioToken, twilioNumber string) (*NotificationSender, error) {
	sender := &NotificationSender{twilioNumber: twilioNumber}

	if firebaseCredentials != "" {
		opt := option.WithCredentialsFile(firebaseCredentials)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
		}

		fcmClient, err := app.Messaging(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize FCM client: %w", err)
		}
		sender.fcmClient = fcmClient
	}

	if twilioSID != "" && twilioToken != "" {
		sender.twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: twilioSID,
			Password: twilioToken,
		})
	}

	return sender, nil
}

// SendPushNotification delivers a push message to one device token.
func (ns *NotificationSender) SendPushNotification(ctx context.Context, deviceToken string, notification PushNotification) (*NotificationResult, error) {
	if ns.fcmClient == nil {
		return &NotificationResult{Success: false, Error: "push not configured"}, nil
	}

	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Sound: notification.Sound,
				Icon:  "ic_notification",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: notification.Title,
						Body:  notification.Body,
					},
					Sound: notification.Sound,
				},
			},
		},
	}

	response, err := ns.fcmClient.Send(ctx, message)
	if err != nil {
		return &NotificationResult{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	return &NotificationResult{
		Success:   true,
		MessageID: response,
	}, nil
}

// SendSMS delivers an SMS through Twilio.
func (ns *NotificationSender) SendSMS(ctx context.Context, sms SMSMessage) (*NotificationResult, error) {
	if ns.twilioClient == nil {
		return &NotificationResult{Success: false, Error: "SMS not configured"}, nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(sms.To)
	params.SetFrom(ns.twilioNumber)
	params.SetBody(sms.Message)

	resp, err := ns.twilioClient.Api.CreateMessage(params)
	if err != nil {
		return &NotificationResult{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	return &NotificationResult{
		Success:   true,
		MessageID: *resp.Sid,
	}, nil
}

// CreateAssignmentSMS formats the dispatch text sent to a team's
// contact phone.
func (ns *NotificationSender) CreateAssignmentSMS(teamName, emergencyType string, lat, lon float64) string {
	return fmt.Sprintf("DISPATCH: %s assigned to %s incident at %.5f,%.5f", teamName, emergencyType, lat, lon)
}
