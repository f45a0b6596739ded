package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

type RabbitProducer struct {
	Channel ChannelInterface
	Queue   string
	Logger  *zap.SugaredLogger

	conn *amqp.Connection
}

// NewRabbitProducer открывает канал и объявляет очередь, чтобы публикация
// не падала из-за отсутствующей инфраструктуры
func NewRabbitProducer(conn *amqp.Connection, queue string, logger *zap.SugaredLogger) (*RabbitProducer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}

	return &RabbitProducer{
		Channel: ch,
		Queue:   queue,
		Logger:  logger,
		conn:    conn,
	}, nil
}

func (p *RabbitProducer) SendEvent(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.Channel.PublishWithContext(
		pubCtx,
		"",      // default exchange
		p.Queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.Timestamp,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		p.Logger.Errorf("Failed to publish RabbitMQ message: %v", err)
		return err
	}

	return nil
}

// Close закрывает канал и соединение, если оно открыто конструктором
func (p *RabbitProducer) Close() error {
	err := p.Channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
