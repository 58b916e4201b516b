package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mcq-writer-be/internal/model"
	"mcq-writer-be/internal/pkg/logger"
	"mcq-writer-be/pkg/events"
	pktNats "mcq-writer-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID string, notification model.Notification)
	Broadcast(notification model.Notification)
}

// NotificationService turns domain events from the bus into push
// notifications. Deliveries are ephemeral; nothing is persisted.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("mcq.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to mcq.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects carry the stream prefix; strip it back to the event code.
	typeCode := strings.TrimPrefix(event.EventType(), "mcq.")

	notif := s.buildNotification(typeCode, event)

	if s.delivery == nil {
		return nil
	}

	// Events carrying a user_id go to that user, everything else is a
	// broadcast to all review clients.
	if userId, ok := event.Payload()["user_id"].(string); ok && userId != "" {
		notif.UserID = userId
		s.delivery.Send(userId, notif)
		return nil
	}

	s.delivery.Broadcast(notif)
	return nil
}

func (s *NotificationService) buildNotification(typeCode string, event events.Event) model.Notification {
	payload := event.Payload()

	var title, message string
	switch typeCode {
	case events.TypeSourceRegistered:
		title = "Source registered"
		message = fmt.Sprintf("%v ingested into the knowledge base", payload["title"])
	case events.TypeMCQApproved:
		title = "Question approved"
		message = fmt.Sprintf("MCQ %v was approved", payload["mcq_id"])
	case events.TypeImageAttached:
		title = "Image ready"
		message = fmt.Sprintf("Illustration stored for MCQ %v", payload["mcq_id"])
	default:
		title = typeCode
		message = fmt.Sprintf("Event %s received", typeCode)
	}

	return model.Notification{
		ID:        uuid.New(),
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  payload,
		CreatedAt: time.Now(),
	}
}
