package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeAddToCart      EventType = "addToCart"
	EventTypeRemoveFromCart EventType = "removeFromCart"
	EventTypeUpdateQuantity EventType = "updateQuantity"
	EventTypeClearCart      EventType = "clearCart"
	EventTypePurchase       EventType = "purchase"
)

type Event struct {
	ID        string    `json:"event_id"`
	Type      EventType `json:"type"`
	ProductID string    `json:"product_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	CartCount int       `json:"cart_count"`
	CartTotal int64     `json:"cart_total"`
	OrderID   string    `json:"order_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent заполняет id и время
func NewEvent(t EventType) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
	}
}
