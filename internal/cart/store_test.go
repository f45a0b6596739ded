package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeDurability хранит корзину в памяти в том же JSON-виде, что и StorageAdapter
type fakeDurability struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeDurability) Load(context.Context) ([]CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.data == nil {
		return nil, nil
	}
	var lines []CartLine
	if err := json.Unmarshal(f.data, &lines); err != nil {
		return nil, ErrMalformed
	}
	return lines, nil
}

func (f *fakeDurability) Save(ctx context.Context, lines []CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	f.data = data
	return nil
}

func (f *fakeDurability) stored(t *testing.T) []CartLine {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	var lines []CartLine
	assert.NoError(t, json.Unmarshal(f.data, &lines))
	return lines
}

func newTestStore(t *testing.T, d *fakeDurability) *Store {
	t.Helper()
	return NewStore(context.Background(), d, zap.NewNop().Sugar())
}

func TestStore_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)

	c := s.Add(ctx, line("product_1", 10000, 1))
	assert.Equal(t, 1, c.Len())

	c = s.Add(ctx, line("product_1", 10000, 2))
	assert.Equal(t, 1, c.Len())
	l, _ := c.Line("product_1")
	assert.Equal(t, 3, l.Quantity)
	assert.Equal(t, int64(30000), c.Total())

	c = s.AdjustQuantity(ctx, "product_1", -3)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Total())

	assert.Empty(t, d.stored(t))
	assert.Equal(t, 3, d.saves)
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)

	first := line("product_1", 10000, 2)
	first.Product.Image = "/img/1.png"
	s.Add(ctx, first)
	s.Add(ctx, line("product_2", 2500, 1))
	s.SetQuantity(ctx, "product_2", 4)

	reloaded := newTestStore(t, d)

	assert.ElementsMatch(t, s.Snapshot().Lines(), reloaded.Snapshot().Lines())
	assert.Equal(t, s.Snapshot().Total(), reloaded.Snapshot().Total())
}

func TestStore_ClearPersistsEmpty(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)

	s.Add(ctx, line("product_1", 100, 1))
	s.Add(ctx, line("product_2", 100, 1))
	c := s.Clear(ctx)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "[]", string(d.data))
	assert.Equal(t, 0, newTestStore(t, d).Snapshot().Len())
}

func TestStore_MissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)
	s.Add(ctx, line("product_1", 100, 2))
	before := s.Snapshot()

	assert.Equal(t, before, s.Remove(ctx, "product_9"))
	assert.Equal(t, before, s.SetQuantity(ctx, "product_9", 5))
	assert.Equal(t, before, s.AdjustQuantity(ctx, "product_9", 1))
	assert.Equal(t, before, s.Snapshot())
}

func TestStore_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)
	s.Add(ctx, line("product_1", 100, 2))

	var notified int
	s.Subscribe(func(Change) { notified++ })
	savesBefore := d.saves
	before := s.Snapshot()

	assert.Equal(t, before, s.Add(ctx, line("", 100, 1)))
	assert.Equal(t, before, s.Add(ctx, line("product_2", 100, 0)))
	assert.Equal(t, before, s.Add(ctx, line("product_2", -1, 1)))
	assert.Equal(t, before, s.Remove(ctx, ""))
	assert.Equal(t, before, s.SetQuantity(ctx, "", 1))
	assert.Equal(t, before, s.AdjustQuantity(ctx, "", 1))

	assert.Equal(t, savesBefore, d.saves)
	assert.Equal(t, 0, notified)
}

func TestStore_SetQuantityNonPositiveRemoves(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeDurability{})
	s.Add(ctx, line("product_1", 100, 2))

	c := s.SetQuantity(ctx, "product_1", 0)
	_, found := c.Line("product_1")
	assert.False(t, found)
}

func TestStore_LoadMalformed(t *testing.T) {
	d := &fakeDurability{data: []byte("{not json")}
	s := newTestStore(t, d)

	assert.Equal(t, 0, s.Snapshot().Len())

	// после битых данных корзина работает и перезаписывает хранилище
	s.Add(context.Background(), line("product_1", 100, 1))
	assert.Len(t, d.stored(t), 1)
}

func TestStore_LoadError(t *testing.T) {
	d := &fakeDurability{loadErr: errors.New("disk is gone")}
	s := newTestStore(t, d)

	assert.Equal(t, 0, s.Snapshot().Len())
}

func TestStore_LoadSanitizes(t *testing.T) {
	d := &fakeDurability{data: []byte(`[
		{"product":{"id":"1","name":"A","price":100},"product_id":"product_1","quantity":1},
		{"product":{"id":"1","name":"A","price":100},"product_id":"product_1","quantity":2},
		{"product":{"id":"2","name":"B","price":100},"product_id":"product_2","quantity":0},
		{"product":{"id":"","name":"C","price":100},"product_id":"","quantity":1}
	]`)}
	s := newTestStore(t, d)

	c := s.Snapshot()
	assert.Equal(t, 1, c.Len())
	l, _ := c.Line("product_1")
	assert.Equal(t, 3, l.Quantity)
}

func TestStore_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	saveErr := errors.New("quota exceeded")
	d := &fakeDurability{saveErr: saveErr}
	s := newTestStore(t, d)

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	c := s.Add(ctx, line("product_1", 100, 1))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, s.Snapshot().Len())
	assert.Len(t, changes, 1)
	assert.ErrorIs(t, changes[0].PersistErr, saveErr)
}

func TestStore_CancelledContextStillPersists(t *testing.T) {
	d := &fakeDurability{}
	s := newTestStore(t, d)
	s.Add(context.Background(), line("product_1", 100, 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Add(ctx, line("product_2", 50, 1))
	s.Clear(ctx)

	assert.Len(t, changes, 2)
	for _, c := range changes {
		assert.NoError(t, c.PersistErr)
	}
	assert.Equal(t, "[]", string(d.data))
	assert.Equal(t, 0, newTestStore(t, d).Snapshot().Len())
}

func TestStore_TryAdd(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)

	c, err := s.TryAdd(ctx, line("product_1", 100, math.MaxInt))
	assert.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	savesBefore := d.saves

	c, err = s.TryAdd(ctx, line("product_1", 100, 1))
	assert.ErrorIs(t, err, ErrQuantityOverflow)
	l, _ := c.Line("product_1")
	assert.Equal(t, math.MaxInt, l.Quantity)

	_, err = s.TryAdd(ctx, line("product_2", 100, 0))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Equal(t, savesBefore, d.saves)
}

func TestStore_DeductKeepsLinesAddedDuringCheckout(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)

	s.Add(ctx, line("product_1", 100, 2))
	s.Add(ctx, line("product_2", 50, 1))
	ordered := s.Snapshot().Lines()

	// пока заказ отправлялся
	s.Add(ctx, line("product_1", 100, 1))
	s.Add(ctx, line("product_3", 10, 4))

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	c := s.Deduct(ctx, ordered)

	assert.Equal(t, 2, c.Len())
	l, _ := c.Line("product_1")
	assert.Equal(t, 1, l.Quantity)
	_, found := c.Line("product_2")
	assert.False(t, found)
	l, _ = c.Line("product_3")
	assert.Equal(t, 4, l.Quantity)

	assert.ElementsMatch(t, c.Lines(), d.stored(t))
	assert.Len(t, changes, 1)
	assert.Equal(t, OpCheckout, changes[0].Op)
}

func TestStore_DeductWholeCartPersistsEmpty(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)

	s.Add(ctx, line("product_1", 100, 2))
	s.Add(ctx, line("product_2", 50, 1))

	c := s.Deduct(ctx, s.Snapshot().Lines())

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "[]", string(d.data))
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeDurability{})

	var first, second []Change
	unsubscribe := s.Subscribe(func(c Change) { first = append(first, c) })
	s.Subscribe(func(c Change) { second = append(second, c) })

	s.Add(ctx, line("product_1", 100, 1))
	s.AdjustQuantity(ctx, "product_1", 1)

	assert.Len(t, first, 2)
	assert.Len(t, second, 2)
	assert.Equal(t, OpAdd, first[0].Op)
	assert.Equal(t, OpAdjustQuantity, first[1].Op)
	assert.Equal(t, "product_1", first[1].ProductID)
	assert.Equal(t, 1, first[1].Before.Count())
	assert.Equal(t, 2, first[1].After.Count())

	unsubscribe()
	unsubscribe()
	s.Clear(ctx)

	assert.Len(t, first, 2)
	assert.Len(t, second, 3)
	assert.Equal(t, OpClear, second[2].Op)
}

func TestStore_ObserverSeesSameStateAsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeDurability{})

	var seen Cart
	s.Subscribe(func(c Change) { seen = c.After })

	returned := s.Add(ctx, line("product_1", 100, 2))
	assert.Equal(t, returned, seen)
	assert.Equal(t, s.Snapshot(), seen)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	d := &fakeDurability{}
	s := newTestStore(t, d)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(ctx, line("product_1", 10, 1))
		}()
	}
	wg.Wait()

	l, _ := s.Snapshot().Line("product_1")
	assert.Equal(t, 50, l.Quantity)
	assert.Equal(t, 50, d.stored(t)[0].Quantity)
}
