package cart

import (
	"errors"
	"math"
)

var (
	ErrEmptyProductID  = errors.New("product id is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrMalformed       = errors.New("malformed cart data")
)

// ProductSnapshot копия данных товара на момент добавления в корзину
type ProductSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image,omitempty"`
}

// CartLine одна позиция корзины
type CartLine struct {
	Product   ProductSnapshot `json:"product"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
}

// Subtotal - quantity * price
func (l CartLine) Subtotal() int64 {
	return int64(l.Quantity) * l.Product.Price
}

// ValidateLine проверяет позицию перед добавлением
func ValidateLine(l CartLine) error {
	if l.ProductID == "" {
		return ErrEmptyProductID
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.Product.Price < 0 {
		return ErrInvalidPrice
	}

	return nil
}

// Cart неизменяемое состояние корзины.
// Любая операция возвращает новое значение, исходное не меняется.
type Cart struct {
	lines []CartLine
}

// Empty пустая корзина
func Empty() Cart {
	return Cart{}
}

// FromLines строит корзину из сохранённых позиций: пустые id и неположительные
// количества отбрасываются, повторяющиеся id сливаются.
func FromLines(lines []CartLine) Cart {
	c := Empty()
	for _, l := range lines {
		if ValidateLine(l) != nil {
			continue
		}
		if next, ok := c.add(l); ok {
			c = next
		}
	}

	return c
}

// Lines копия позиций в порядке добавления
func (c Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) Len() int {
	return len(c.lines)
}

// Count суммарное количество единиц товара (счётчик на иконке корзины)
func (c Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total всегда пересчитывается из позиций
func (c Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Line ищет позицию по id товара
func (c Cart) Line(productID string) (CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return CartLine{}, false
	}
	return c.lines[i], true
}

func (c Cart) index(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// add сливает количество с существующей позицией или добавляет новую.
// false - переполнение количества.
func (c Cart) add(line CartLine) (Cart, bool) {
	i := c.index(line.ProductID)
	if i < 0 {
		lines := make([]CartLine, len(c.lines), len(c.lines)+1)
		copy(lines, c.lines)
		return Cart{lines: append(lines, line)}, true
	}

	if c.lines[i].Quantity > math.MaxInt-line.Quantity {
		return c, false
	}

	lines := c.Lines()
	lines[i].Quantity += line.Quantity
	return Cart{lines: lines}, true
}

func (c Cart) remove(productID string) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}

	lines := make([]CartLine, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	return Cart{lines: lines}
}

// setQuantity: quantity <= 0 удаляет позицию
func (c Cart) setQuantity(productID string, quantity int) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	if quantity <= 0 {
		return c.remove(productID)
	}

	lines := c.Lines()
	lines[i].Quantity = quantity
	return Cart{lines: lines}
}

// adjustQuantity: результат <= 0 удаляет позицию. false - переполнение.
func (c Cart) adjustQuantity(productID string, delta int) (Cart, bool) {
	i := c.index(productID)
	if i < 0 {
		return c, true
	}

	q := c.lines[i].Quantity
	if (delta > 0 && q > math.MaxInt-delta) || (delta < 0 && q < math.MinInt-delta) {
		return c, false
	}

	return c.setQuantity(productID, q+delta), true
}

// deduct вычитает оформленные количества; позиции с остатком <= 0 удаляются,
// позиции, которых не было в заказе, не трогаются.
func (c Cart) deduct(ordered []CartLine) Cart {
	qty := make(map[string]int, len(ordered))
	for _, l := range ordered {
		qty[l.ProductID] += l.Quantity
	}

	lines := make([]CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		if q, ok := qty[l.ProductID]; ok {
			l.Quantity -= q
			if l.Quantity <= 0 {
				continue
			}
		}
		lines = append(lines, l)
	}

	return Cart{lines: lines}
}
