package services

import (
	"context"
	"errors"
	"strings"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

const chatHistoryLimit = 200

// guidanceEntry is one canned assistant answer, matched on any of its
// keywords.
type guidanceEntry struct {
	keywords []string
	response string
}

// The assistant is a keyword table, not a language model. Entries are
// checked in order; first match wins.
var guidanceTable = []guidanceEntry{
	{
		keywords: []string{"flood", "flooding", "water level"},
		response: "Move to higher ground immediately. Avoid walking or driving through flood water — 15 cm of moving water can knock you down. If you are trapped, file an emergency request with your location and we will dispatch the nearest rescue team.",
	},
	{
		keywords: []string{"fire", "smoke", "burning"},
		response: "Evacuate the building now and stay low to avoid smoke. Do not use elevators. Once you are safe, file a high-priority emergency request so a team can be dispatched to the site.",
	},
	{
		keywords: []string{"earthquake", "tremor", "aftershock"},
		response: "Drop, cover, and hold on. Stay away from windows and heavy furniture. After the shaking stops, move to open ground and watch for aftershocks. Report injuries or trapped people through an emergency request.",
	},
	{
		keywords: []string{"cyclone", "hurricane", "storm", "typhoon"},
		response: "Stay indoors away from windows, and keep emergency supplies within reach. Follow official evacuation orders. If your area is cut off, file an emergency request with coordinates so teams can reach you.",
	},
	{
		keywords: []string{"injury", "injured", "bleeding", "medical", "hurt"},
		response: "Apply direct pressure to any bleeding and keep the person still and warm. File a critical-priority emergency request with your location — medical rescue teams are prioritized by distance.",
	},
	{
		keywords: []string{"trapped", "stuck", "collapsed"},
		response: "Stay where you are and conserve energy. Tap on pipes or walls so rescuers can locate you. If you can reach this app, file a critical emergency request with your coordinates now.",
	},
	{
		keywords: []string{"help", "emergency", "sos"},
		response: "To get help fast: file an emergency request with your type of emergency, priority, and location. The dispatcher assigns the nearest available rescue team automatically and you can track the mission status live.",
	},
}

const guidanceFallback = "I can share safety guidance for floods, fires, earthquakes, storms, medical emergencies, and being trapped. Describe your situation, or file an emergency request and a rescue team will be dispatched."

// RespondToMessage picks the canned guidance for a user message.
func RespondToMessage(content string) string {
	lowered := strings.ToLower(content)
	for _, entry := range guidanceTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.response
			}
		}
	}
	return guidanceFallback
}

type ChatService struct {
	chatRepo  *repositories.ChatRepository
	hub       *websocket.Hub
	validator *utils.ValidationService
}

func NewChatService(chatRepo *repositories.ChatRepository, hub *websocket.Hub) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		hub:       hub,
		validator: utils.NewValidationService(),
	}
}

// SendMessage stores the user's message, generates the assistant
// reply, stores it, and echoes both over the change feed.
func (cs *ChatService) SendMessage(ctx context.Context, userID string, req models.SendChatMessageRequest) (*models.ChatExchange, error) {
	if validationErrors := cs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	userObjectID, err := utils.ParseObjectID(userID)
	if err != nil {
		return nil, utils.NewBadRequestError("Invalid user ID")
	}

	userMessage := &models.ChatMessage{
		UserID:  userObjectID,
		Sender:  models.ChatSenderUser,
		Content: req.Content,
	}
	if err := cs.chatRepo.Create(ctx, userMessage); err != nil {
		return nil, utils.WrapDatabaseError(err, "store chat message")
	}

	assistantMessage := &models.ChatMessage{
		UserID:  userObjectID,
		Sender:  models.ChatSenderAssistant,
		Content: RespondToMessage(req.Content),
	}
	if err := cs.chatRepo.Create(ctx, assistantMessage); err != nil {
		return nil, utils.WrapDatabaseError(err, "store assistant reply")
	}

	for _, message := range []*models.ChatMessage{userMessage, assistantMessage} {
		cs.hub.PublishChange(models.ChangeEvent{
			Relation: models.RelationChatMessages,
			Action:   models.ChangeActionInsert,
			RowID:    message.ID.Hex(),
			Row:      message,
		})
	}

	return &models.ChatExchange{
		UserMessage:      *userMessage,
		AssistantMessage: *assistantMessage,
	}, nil
}

func (cs *ChatService) GetHistory(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	messages, err := cs.chatRepo.GetHistory(ctx, userID, chatHistoryLimit)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, utils.NewBadRequestError("Invalid user ID")
		}
		return nil, utils.WrapDatabaseError(err, "get chat history")
	}
	return messages, nil
}
