package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrQuantityOverflow = errors.New("quantity overflow")

// Op тип операции над корзиной
type Op string

const (
	OpAdd            Op = "add"
	OpRemove         Op = "remove"
	OpSetQuantity    Op = "set_quantity"
	OpAdjustQuantity Op = "adjust_quantity"
	OpClear          Op = "clear"
	OpCheckout       Op = "checkout"
)

// Change описывает применённую операцию. PersistErr != nil, если запись в
// хранилище не удалась (состояние в памяти при этом уже изменено).
type Change struct {
	Op         Op
	ProductID  string
	Before     Cart
	After      Cart
	PersistErr error
}

// Durability хранилище корзины между перезапусками.
// Load возвращает nil, nil если корзина ещё не сохранялась.
//
//go:generate mockgen -source=store.go -destination=../mocks/mock_cart_store.go -package=mocks
type Durability interface {
	Load(ctx context.Context) ([]CartLine, error)
	Save(ctx context.Context, lines []CartLine) error
}

// CartStore интерфейс корзины для ручек и сервисов
type CartStore interface {
	// Snapshot текущее состояние
	Snapshot() Cart
	// Add добавляет позицию или увеличивает количество существующей
	Add(ctx context.Context, line CartLine) Cart
	// TryAdd как Add, но возвращает причину отказа для отклонённой позиции
	TryAdd(ctx context.Context, line CartLine) (Cart, error)
	// Remove удаляет позицию
	Remove(ctx context.Context, productID string) Cart
	// SetQuantity задаёт количество, <= 0 удаляет позицию
	SetQuantity(ctx context.Context, productID string, quantity int) Cart
	// AdjustQuantity меняет количество на delta, результат <= 0 удаляет позицию
	AdjustQuantity(ctx context.Context, productID string, delta int) Cart
	// Clear очищает корзину
	Clear(ctx context.Context) Cart
	// Deduct убирает из корзины оформленные позиции
	Deduct(ctx context.Context, ordered []CartLine) Cart
	// Subscribe подписка на изменения, возвращает функцию отписки
	Subscribe(fn func(Change)) func()
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// Store единственный владелец состояния корзины в процессе.
// Каждая операция целиком (изменение, запись, уведомление) выполняется под mu,
// поэтому операции не перемежаются и подписчики видят их в порядке применения.
// Подписчики не должны вызывать методы Store.
type Store struct {
	mu          sync.RWMutex
	cart        Cart
	durability  Durability
	subscribers []subscriber
	nextSubID   uint64

	Logger *zap.SugaredLogger
}

// NewStore загружает сохранённую корзину. Ошибки чтения и битые данные
// не прерывают инициализацию: корзина начинается пустой.
func NewStore(ctx context.Context, durability Durability, logger *zap.SugaredLogger) *Store {
	s := &Store{
		cart:       Empty(),
		durability: durability,
		Logger:     logger,
	}

	lines, err := durability.Load(ctx)
	switch {
	case errors.Is(err, ErrMalformed):
		logger.Warnw("stored cart is malformed, starting with empty cart", "err", err)
	case err != nil:
		logger.Errorw("failed to load cart, starting with empty cart", "err", err)
	default:
		s.cart = FromLines(lines)
		if s.cart.Len() != len(lines) {
			logger.Warnw("stored cart had invalid or duplicate lines",
				"stored", len(lines),
				"kept", s.cart.Len(),
			)
		}
	}

	logger.Infow("cart loaded", "lines", s.cart.Len(), "total", s.cart.Total())

	return s
}

func (s *Store) Snapshot() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

func (s *Store) Add(ctx context.Context, line CartLine) Cart {
	c, _ := s.TryAdd(ctx, line)
	return c
}

func (s *Store) TryAdd(ctx context.Context, line CartLine) (Cart, error) {
	return s.apply(ctx, OpAdd, line.ProductID, func(c Cart) (Cart, error) {
		if err := ValidateLine(line); err != nil {
			return c, err
		}
		next, ok := c.add(line)
		if !ok {
			return c, ErrQuantityOverflow
		}
		return next, nil
	})
}

func (s *Store) Remove(ctx context.Context, productID string) Cart {
	result, _ := s.apply(ctx, OpRemove, productID, func(c Cart) (Cart, error) {
		if productID == "" {
			return c, ErrEmptyProductID
		}
		return c.remove(productID), nil
	})
	return result
}

func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) Cart {
	result, _ := s.apply(ctx, OpSetQuantity, productID, func(c Cart) (Cart, error) {
		if productID == "" {
			return c, ErrEmptyProductID
		}
		return c.setQuantity(productID, quantity), nil
	})
	return result
}

func (s *Store) AdjustQuantity(ctx context.Context, productID string, delta int) Cart {
	result, _ := s.apply(ctx, OpAdjustQuantity, productID, func(c Cart) (Cart, error) {
		if productID == "" {
			return c, ErrEmptyProductID
		}
		next, ok := c.adjustQuantity(productID, delta)
		if !ok {
			return c, ErrQuantityOverflow
		}
		return next, nil
	})
	return result
}

func (s *Store) Clear(ctx context.Context) Cart {
	result, _ := s.apply(ctx, OpClear, "", func(Cart) (Cart, error) {
		return Empty(), nil
	})
	return result
}

// Deduct вычитает из корзины позиции принятого заказа. Позиции, добавленные
// пока заказ отправлялся, остаются в корзине.
func (s *Store) Deduct(ctx context.Context, ordered []CartLine) Cart {
	result, _ := s.apply(ctx, OpCheckout, "", func(c Cart) (Cart, error) {
		return c.deduct(ordered), nil
	})
	return result
}

func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			subs := make([]subscriber, 0, len(s.subscribers))
			for _, sub := range s.subscribers {
				if sub.id != id {
					subs = append(subs, sub)
				}
			}
			s.subscribers = subs
		})
	}
}

// apply применяет операцию, сохраняет результат и уведомляет подписчиков.
// Отклонённый ввод не меняет корзину и не пишется в хранилище.
// Запись не отменяется вместе с ctx: состояние в памяти уже изменено.
func (s *Store) apply(ctx context.Context, op Op, productID string, fn func(Cart) (Cart, error)) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.cart
	after, err := fn(before)
	if err != nil {
		s.Logger.Warnw("cart operation rejected",
			"op", op,
			"product_id", productID,
			"err", err,
		)
		return before, err
	}

	s.cart = after

	persistErr := s.durability.Save(context.WithoutCancel(ctx), after.Lines())
	if persistErr != nil {
		// в памяти остаётся новое состояние
		s.Logger.Errorw("failed to persist cart",
			"op", op,
			"product_id", productID,
			"err", persistErr,
		)
	}

	change := Change{
		Op:         op,
		ProductID:  productID,
		Before:     before,
		After:      after,
		PersistErr: persistErr,
	}
	for _, sub := range s.subscribers {
		sub.fn(change)
	}

	return after, nil
}
