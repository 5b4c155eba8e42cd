package service

import (
	"time"

	"revhub/internal/model"
	"revhub/internal/repository"
	"revhub/internal/util"
	"revhub/pkg/logger"
)

// WSBroadcaster is the slice of the websocket hub the notification
// pipeline needs.
type WSBroadcaster interface {
	BroadcastToUser(userID string, payload map[string]interface{})
}

// NotificationService persists notifications and fans them out through
// RabbitMQ to the websocket worker. Delivery is best-effort; engagement
// flows never fail because a notification did not go out.
type NotificationService interface {
	NotifyLiked(recipientID, senderID, kindName, targetID string)
	NotifyAnswered(recipientID, senderID, kindName, questionID string)
	NotifyCommented(recipientID, senderID, kindName, reviewID string)
	NotifyAccepted(recipientID, senderID, kindName, questionID string)
	NotifyAcceptRevoked(recipientID, senderID, kindName, questionID string)

	List(userID string, limit, offset int) ([]*model.Notification, error)
	UnreadCount(userID string) (int64, error)
	MarkAsRead(id, userID string) error
	MarkAllAsRead(userID string) error
	SetWSHub(hub WSBroadcaster)
}

// NotificationMessage is the wire shape published to RabbitMQ.
type NotificationMessage struct {
	UserID    string    `json:"user_id"`
	SenderID  string    `json:"sender_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	TargetID  string    `json:"target_id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	NotificationQueueName  = "notification_queue"
	NotificationExchange   = "notification_exchange"
	NotificationRoutingKey = "notification"
)

type notificationService struct {
	notifRepo repository.NotificationRepository
	rabbitMQ  *util.RabbitMQClient
	wsHub     WSBroadcaster
}

func NewNotificationService(notifRepo repository.NotificationRepository, rabbitMQ *util.RabbitMQClient) NotificationService {
	return &notificationService{notifRepo: notifRepo, rabbitMQ: rabbitMQ}
}

func (s *notificationService) SetWSHub(hub WSBroadcaster) {
	s.wsHub = hub
}

func (s *notificationService) NotifyLiked(recipientID, senderID, kindName, targetID string) {
	s.send(recipientID, senderID, model.NotificationTypeLiked, "New like", "Someone liked your "+kindName, targetID)
}

func (s *notificationService) NotifyAnswered(recipientID, senderID, kindName, questionID string) {
	s.send(recipientID, senderID, model.NotificationTypeAnswered, "New answer", "Your question got a new answer", questionID)
}

func (s *notificationService) NotifyCommented(recipientID, senderID, kindName, reviewID string) {
	s.send(recipientID, senderID, model.NotificationTypeCommented, "New comment", "Your review got a new comment", reviewID)
}

func (s *notificationService) NotifyAccepted(recipientID, senderID, kindName, questionID string) {
	s.send(recipientID, senderID, model.NotificationTypeAnswerAccepted, "Answer accepted", "Your answer was accepted", questionID)
}

func (s *notificationService) NotifyAcceptRevoked(recipientID, senderID, kindName, questionID string) {
	s.send(recipientID, senderID, model.NotificationTypeAcceptRevoked, "Acceptance revoked", "Your answer is no longer the accepted one", questionID)
}

func (s *notificationService) send(recipientID, senderID, notifType, title, message, targetID string) {
	if recipientID == "" || recipientID == senderID {
		return
	}

	notification := &model.Notification{
		UserID:   recipientID,
		SenderID: &senderID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		TargetID: &targetID,
	}
	if err := s.notifRepo.Create(notification); err != nil {
		logger.Warnf("failed to persist notification for %s: %v", recipientID, err)
		return
	}

	msg := NotificationMessage{
		UserID:    recipientID,
		SenderID:  senderID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		TargetID:  targetID,
		Timestamp: time.Now(),
	}

	if s.rabbitMQ != nil {
		if err := s.rabbitMQ.Publish(NotificationExchange, NotificationRoutingKey, msg); err != nil {
			logger.Warnf("failed to publish notification: %v", err)
		}
		return
	}

	// No broker: push straight to the websocket hub.
	if s.wsHub != nil {
		s.wsHub.BroadcastToUser(recipientID, map[string]interface{}{
			"type":      notifType,
			"title":     title,
			"message":   message,
			"target_id": targetID,
			"sender_id": senderID,
		})
	}
}

func (s *notificationService) List(userID string, limit, offset int) ([]*model.Notification, error) {
	return s.notifRepo.ListByUser(userID, limit, offset)
}

func (s *notificationService) UnreadCount(userID string) (int64, error) {
	return s.notifRepo.UnreadCount(userID)
}

func (s *notificationService) MarkAsRead(id, userID string) error {
	return s.notifRepo.MarkAsRead(id, userID)
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	return s.notifRepo.MarkAllAsRead(userID)
}
