package events

import (
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Publisher emits document lifecycle events for the chat-platform
// collaborator to consume. Delivery is best-effort; callback processing
// never fails because a notification could not be queued.
type Publisher interface {
	PublishDocumentEvent(fileID, teamID, userID, action string) error
}

type publisher struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

func NewPublisher(channel *amqp.Channel, cfg *config.Configuration) Publisher {
	return &publisher{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

func (p *publisher) PublishDocumentEvent(fileID, teamID, userID, action string) error {
	message := models.DocumentEventMessage{
		FileID:    fileID,
		TeamID:    teamID,
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal document event: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish document event")
		return fmt.Errorf("failed to publish document event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"file_id":     fileID,
		"team_id":     teamID,
		"user_id":     userID,
		"action":      action,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Document event published")

	return nil
}
