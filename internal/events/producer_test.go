package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// fakeWriter реализует WriterInterface и запоминает переданные сообщения
type fakeWriter struct {
	lastMessages []kafka.Message
	returnError  error
	closed       bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.lastMessages = append(f.lastMessages, msgs...)
	return f.returnError
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaProducer_SendEvent_Success(t *testing.T) {
	fw := &fakeWriter{}
	p := &KafkaProducer{
		Writer: fw,
		Logger: zap.NewNop().Sugar(),
	}

	evt := NewEvent(EventTypeAddToCart)
	evt.ProductID = "product_1"
	evt.Quantity = 2
	evt.CartCount = 2
	evt.CartTotal = 20000

	if err := p.SendEvent(context.Background(), evt); err != nil {
		t.Fatalf("ожидали, что SendEvent не вернёт ошибку, но получили: %v", err)
	}

	if len(fw.lastMessages) != 1 {
		t.Fatalf("ожидали 1 записанное сообщение, но получили %d", len(fw.lastMessages))
	}
	msg := fw.lastMessages[0]
	if string(msg.Key) != "product_1" {
		t.Errorf("ключ сообщения: ожидали %q, получили %q", "product_1", msg.Key)
	}

	var decoded Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("не удалось разобрать записанное сообщение как JSON: %v", err)
	}
	if decoded.ID != evt.ID || decoded.Type != evt.Type || decoded.CartTotal != evt.CartTotal {
		t.Errorf("разобранное событие не совпало: ожидали %+v, получили %+v", evt, decoded)
	}
}

func TestKafkaProducer_SendEvent_WriteError(t *testing.T) {
	writeErr := errors.New("broker unavailable")
	fw := &fakeWriter{returnError: writeErr}
	p := &KafkaProducer{
		Writer: fw,
		Logger: zap.NewNop().Sugar(),
	}

	err := p.SendEvent(context.Background(), NewEvent(EventTypeClearCart))
	if !errors.Is(err, writeErr) {
		t.Fatalf("ожидали ошибку %v, получили %v", writeErr, err)
	}

	if err := p.Close(); err != nil || !fw.closed {
		t.Errorf("Close должен закрыть writer")
	}
}

func TestRabbitProducer_SendEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ch := NewMockChannelInterface(ctrl)
	p := &RabbitProducer{
		Channel: ch,
		Queue:   "cart-events",
		Logger:  zap.NewNop().Sugar(),
	}

	evt := NewEvent(EventTypePurchase)
	evt.OrderID = "ORD-1"

	ch.EXPECT().
		PublishWithContext(gomock.Any(), "", "cart-events", false, false, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
			if msg.MessageId != evt.ID {
				t.Errorf("MessageId: ожидали %q, получили %q", evt.ID, msg.MessageId)
			}
			if msg.Type != string(EventTypePurchase) {
				t.Errorf("Type: ожидали %q, получили %q", EventTypePurchase, msg.Type)
			}
			if msg.DeliveryMode != amqp.Persistent {
				t.Errorf("сообщение должно быть persistent")
			}
			var decoded Event
			if err := json.Unmarshal(msg.Body, &decoded); err != nil {
				t.Fatalf("тело не JSON: %v", err)
			}
			if decoded.OrderID != "ORD-1" {
				t.Errorf("OrderID: ожидали ORD-1, получили %q", decoded.OrderID)
			}
			return nil
		})

	if err := p.SendEvent(context.Background(), evt); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	publishErr := errors.New("channel closed")
	ch.EXPECT().
		PublishWithContext(gomock.Any(), "", "cart-events", false, false, gomock.Any()).
		Return(publishErr)
	if err := p.SendEvent(context.Background(), evt); !errors.Is(err, publishErr) {
		t.Fatalf("ожидали ошибку %v, получили %v", publishErr, err)
	}

	ch.EXPECT().Close().Return(nil)
	if err := p.Close(); err != nil {
		t.Fatalf("неожиданная ошибка при закрытии: %v", err)
	}
}

func TestNopProducer(t *testing.T) {
	var p EventProducer = NopProducer{}
	if err := p.SendEvent(context.Background(), NewEvent(EventTypeAddToCart)); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
