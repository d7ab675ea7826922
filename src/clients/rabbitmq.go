package clients

import (
	"docbridge-svc/src/internal/config"
	"fmt"

	"github.com/streadway/amqp"
)

type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	cfg     *config.QueueConfig
}

func NewRabbitMQ(cfg *config.QueueConfig) (*RabbitMQ, error) {
	log.WithField("url", "url:"+cfg.RabbitMQ.Url).Info("Connecting to RabbitMQ...")
	conn, err := amqp.Dial(cfg.RabbitMQ.Url)
	if err != nil {
		log.WithError(err).Errorf("Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		log.WithError(err).Errorf("Failed to open a channel: %v", err)
		return nil, err
	}

	log.Infof("Connected to RabbitMQ at %s", cfg.RabbitMQ.Url)

	return &RabbitMQ{
		Conn:    conn,
		Channel: channel,
		cfg:     cfg,
	}, nil
}

func (r *RabbitMQ) Close() error {
	if r.Channel != nil {
		if err := r.Channel.Close(); err != nil {
			log.WithError(err).Error("Failed to close RabbitMQ channel")
			return err
		} else {
			log.Info("RabbitMQ channel closed")
			return nil
		}
	}

	if r.Conn != nil {
		if err := r.Conn.Close(); err != nil {
			log.WithError(err).Error("Failed to close RabbitMQ connection")
			return err
		} else {
			log.Info("RabbitMQ connection closed")
			return nil
		}
	}

	return nil
}

// SetupQueue declares the document-events exchange and the queue the
// chat collaborator consumes, bound by the lifecycle routing key.
func (r *RabbitMQ) SetupQueue() error {
	mq := r.cfg.RabbitMQ

	err := r.Channel.ExchangeDeclare(
		mq.Exchange,
		mq.ExchangeType,
		mq.Durable,
		mq.AutoDelete,
		mq.Internal,
		mq.NoWait,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %v", err)
	}

	queue, err := r.Channel.QueueDeclare(
		mq.DocumentQueue,
		mq.Durable,
		mq.AutoDelete,
		false, // exclusive
		mq.NoWait,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare document queue: %v", err)
	}

	err = r.Channel.QueueBind(queue.Name, mq.RoutingKey, mq.Exchange, mq.NoWait, nil)
	if err != nil {
		return fmt.Errorf("failed to bind document queue: %v", err)
	}

	log.WithField("queue", queue.Name).Info("RabbitMQ document queue ready")

	return nil
}
