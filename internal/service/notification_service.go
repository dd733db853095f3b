package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"research-assistant-be/internal/model"
	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/repository"
	"research-assistant-be/pkg/events"
	pktNats "research-assistant-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// Strip "events." prefix from type if present (NATS subject includes stream name)
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	userID, ok := s.parseUserID(payload)
	if !ok {
		s.logger.Warn("NotificationService", "Event has no user_id, skipping", map[string]interface{}{"type": typeCode})
		return nil
	}

	var notif *model.Notification
	switch typeCode {
	case events.TypeDocumentStatusChanged:
		notif = s.buildDocumentStatusNotification(userID, payload)
	case events.TypeResearchCompleted:
		notif = s.buildResearchCompletedNotification(userID, payload)
	default:
		s.logger.Info("NotificationService", fmt.Sprintf("No handler for event type: %s", typeCode), nil)
		return nil
	}
	if notif == nil {
		return nil
	}

	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		s.logger.Error("NotificationService", "Failed to save notification", map[string]interface{}{"error": err.Error()})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userID, *notif)
	}
	return nil
}

func (s *NotificationService) buildDocumentStatusNotification(userID uuid.UUID, payload map[string]interface{}) *model.Notification {
	status, _ := payload["status"].(string)
	fileName, _ := payload["file_name"].(string)

	// Intermediate transitions are pushed live but not worth an inbox row
	if status == "processing" || status == "pending" {
		return nil
	}

	var title, message string
	switch status {
	case "done":
		title = "Document Ready"
		message = fmt.Sprintf("\"%s\" has been processed and is now searchable.", fileName)
	case "failed":
		title = "Document Processing Failed"
		errMsg, _ := payload["error"].(string)
		message = fmt.Sprintf("\"%s\" could not be processed: %s", fileName, errMsg)
	default:
		return nil
	}

	return s.newNotification(userID, events.TypeDocumentStatusChanged, title, message, payload)
}

func (s *NotificationService) buildResearchCompletedNotification(userID uuid.UUID, payload map[string]interface{}) *model.Notification {
	sourceCount := 0
	if v, ok := payload["source_count"].(float64); ok {
		sourceCount = int(v)
	}

	title := "Research Complete"
	message := fmt.Sprintf("Your research finished with %d sources.", sourceCount)
	return s.newNotification(userID, events.TypeResearchCompleted, title, message, payload)
}

func (s *NotificationService) newNotification(userID uuid.UUID, typeCode, title, message string, payload map[string]interface{}) *model.Notification {
	notif := &model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	if entityType, ok := payload["entity_type"].(string); ok {
		notif.EntityType = entityType
	}
	if raw, ok := payload["entity_id"].(string); ok {
		if entityID, err := uuid.Parse(raw); err == nil {
			notif.EntityID = &entityID
		}
	}
	if metaJSON, err := json.Marshal(payload); err == nil {
		notif.Metadata = datatypes.JSON(metaJSON)
	}

	return notif
}

func (s *NotificationService) parseUserID(payload map[string]interface{}) (uuid.UUID, bool) {
	raw, ok := payload["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// --- Inbox API ---

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
