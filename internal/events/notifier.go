package events

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/cart"
)

const DefaultQueueSize = 256

// Notifier переводит изменения корзины в события и отправляет их в фоне.
// Observe вызывается под блокировкой корзины, поэтому только кладёт событие
// в очередь; при переполнении событие отбрасывается.
type Notifier struct {
	Producer EventProducer
	Logger   *zap.SugaredLogger
	queue    chan Event
}

func NewNotifier(producer EventProducer, logger *zap.SugaredLogger, queueSize int) *Notifier {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Notifier{
		Producer: producer,
		Logger:   logger,
		queue:    make(chan Event, queueSize),
	}
}

// EventFromChange событие для изменения корзины; false - изменение не публикуется
func EventFromChange(change cart.Change) (Event, bool) {
	var event Event

	switch change.Op {
	case cart.OpAdd:
		event = NewEvent(EventTypeAddToCart)
	case cart.OpRemove:
		event = NewEvent(EventTypeRemoveFromCart)
	case cart.OpSetQuantity, cart.OpAdjustQuantity:
		event = NewEvent(EventTypeUpdateQuantity)
		if _, ok := change.After.Line(change.ProductID); !ok {
			event.Type = EventTypeRemoveFromCart
		}
	case cart.OpClear:
		event = NewEvent(EventTypeClearCart)
	default:
		return Event{}, false
	}

	// no-op на отсутствующем товаре не публикуем
	_, existed := change.Before.Line(change.ProductID)
	if change.Op != cart.OpAdd && change.Op != cart.OpClear && !existed {
		return Event{}, false
	}
	if change.Op == cart.OpClear && change.Before.Len() == 0 {
		return Event{}, false
	}

	event.ProductID = change.ProductID
	if line, ok := change.After.Line(change.ProductID); ok {
		event.Quantity = line.Quantity
	}
	event.CartCount = change.After.Count()
	event.CartTotal = change.After.Total()

	return event, true
}

func (n *Notifier) Observe(change cart.Change) {
	event, ok := EventFromChange(change)
	if !ok {
		return
	}
	n.Enqueue(event)
}

// Enqueue кладёт событие в очередь без блокировки
func (n *Notifier) Enqueue(event Event) {
	select {
	case n.queue <- event:
	default:
		n.Logger.Warnw("event queue is full, dropping event", "type", event.Type, "product_id", event.ProductID)
	}
}

// Run отправляет события до отмены контекста, затем дописывает очередь
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			n.drain()
			return
		case event := <-n.queue:
			n.send(ctx, event)
		}
	}
}

func (n *Notifier) drain() {
	for {
		select {
		case event := <-n.queue:
			n.send(context.Background(), event)
		default:
			return
		}
	}
}

func (n *Notifier) send(ctx context.Context, event Event) {
	if err := n.Producer.SendEvent(ctx, event); err != nil {
		n.Logger.Warnf("failed to send %s event: %v", event.Type, err)
	}
}
