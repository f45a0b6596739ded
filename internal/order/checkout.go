package order

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/events"
	myErr "storefront/internal/types/errors"
)

// EventSink получатель аналитических событий
type EventSink interface {
	Enqueue(event events.Event)
}

// Service оформляет заказ из корзины. Оформленные позиции убираются из корзины
// только после успешного ответа API, при любой ошибке корзина остаётся как была.
type Service struct {
	Cart       cart.CartStore
	Submitter  Submitter
	LastOrders *LastOrderRepository
	Events     EventSink
	Logger     *zap.SugaredLogger

	mu       sync.Mutex
	inFlight bool
}

func NewService(
	store cart.CartStore,
	submitter Submitter,
	lastOrders *LastOrderRepository,
	sink EventSink,
	logger *zap.SugaredLogger,
) *Service {
	return &Service{
		Cart:       store,
		Submitter:  submitter,
		LastOrders: lastOrders,
		Events:     sink,
		Logger:     logger,
	}
}

func (s *Service) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Service) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *Service) Checkout(ctx context.Context, customer CustomerInfo) (*Info, error) {
	if !s.begin() {
		return nil, myErr.ErrCheckoutInProgress
	}
	defer s.end()

	snapshot := s.Cart.Snapshot()
	req, err := BuildRequest(snapshot, customer)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("submitting order",
		"items", len(req.OrderItems),
		"total", req.TotalAmount,
	)

	orderID, err := s.Submitter.Submit(ctx, req)
	if err != nil {
		s.Logger.Warnw("order submission failed, cart kept", "err", err)
		return nil, err
	}
	if orderID == "" {
		orderID = ID(uuid.NewString())
	}

	// заказ принят: дальнейшие записи не должны обрываться вместе с запросом
	ctx = context.WithoutCancel(ctx)

	info := Info{
		CustomerInfo: req.CustomerInfo,
		OrderItems:   req.OrderItems,
		TotalAmount:  req.TotalAmount,
		OrderID:      orderID,
	}

	// ошибка записи не откатывает принятый заказ
	if err := s.LastOrders.Save(ctx, info); err != nil {
		s.Logger.Errorw("failed to save last order info", "order_id", orderID, "err", err)
	}

	s.Cart.Deduct(ctx, snapshot.Lines())

	if s.Events != nil {
		event := events.NewEvent(events.EventTypePurchase)
		event.OrderID = string(orderID)
		event.Quantity = snapshot.Count()
		event.CartTotal = req.TotalAmount
		s.Events.Enqueue(event)
	}

	s.Logger.Infow("order created", "order_id", orderID, "total", req.TotalAmount)
	return &info, nil
}

func (s *Service) LastOrder(ctx context.Context) (*Info, error) {
	return s.LastOrders.Get(ctx)
}
