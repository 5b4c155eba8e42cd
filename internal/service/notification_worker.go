package service

import (
	"encoding/json"

	"revhub/internal/util"
	"revhub/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationWorker consumes notification messages from RabbitMQ and
// pushes them to the websocket hub for realtime delivery.
type NotificationWorker struct {
	rabbitMQ *util.RabbitMQClient
	wsHub    WSBroadcaster
	stopChan chan bool
}

func NewNotificationWorker(rabbitMQ *util.RabbitMQClient, wsHub WSBroadcaster) *NotificationWorker {
	return &NotificationWorker{
		rabbitMQ: rabbitMQ,
		wsHub:    wsHub,
		stopChan: make(chan bool),
	}
}

// Start declares the exchange/queue pair and begins consuming.
func (w *NotificationWorker) Start() error {
	if w.rabbitMQ == nil {
		return nil // broker not available, worker stays idle
	}

	channel := w.rabbitMQ.GetChannel()
	if channel == nil {
		return nil
	}

	if err := channel.ExchangeDeclare(
		NotificationExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	queue, err := channel.QueueDeclare(
		NotificationQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	if err := channel.QueueBind(
		NotificationQueueName,
		NotificationRoutingKey,
		NotificationExchange,
		false,
		nil,
	); err != nil {
		return err
	}

	msgs, err := channel.Consume(
		queue.Name,
		"notification_worker",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.Info("notification worker started, consuming messages")
		for {
			select {
			case <-w.stopChan:
				logger.Info("notification worker stopped")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("notification queue closed")
					return
				}
				if err := w.process(msg); err != nil {
					logger.Errorf("error processing notification message: %v", err)
					msg.Nack(false, true)
				} else {
					msg.Ack(false)
				}
			}
		}
	}()

	return nil
}

func (w *NotificationWorker) process(msg amqp.Delivery) error {
	var notifMsg NotificationMessage
	if err := json.Unmarshal(msg.Body, &notifMsg); err != nil {
		return err
	}

	if w.wsHub != nil {
		w.wsHub.BroadcastToUser(notifMsg.UserID, map[string]interface{}{
			"type":      notifMsg.Type,
			"title":     notifMsg.Title,
			"message":   notifMsg.Message,
			"target_id": notifMsg.TargetID,
			"sender_id": notifMsg.SenderID,
		})
	}
	return nil
}

// Stop stops the worker
func (w *NotificationWorker) Stop() {
	close(w.stopChan)
}
