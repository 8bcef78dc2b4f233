package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

// LineItem pairs a product snapshot with a quantity of at least one. The
// cart keys lines by Product.ID and never owns the product itself.
type LineItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Store is an ordered cart, unique by product id.
type Store struct {
	mu    sync.RWMutex
	items []LineItem
}

func NewStore() *Store {
	return &Store{}
}

// Add increments the line for p or appends a new one with quantity 1.
func (s *Store) Add(p models.Product) LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(p.ID); i >= 0 {
		s.items[i].Quantity++
		return s.items[i]
	}
	s.items = append(s.items, LineItem{Product: p, Quantity: 1})
	return s.items[len(s.items)-1]
}

// Remove deletes the line for productID; absent ids are a no-op.
func (s *Store) Remove(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(productID)
}

// UpdateQuantity sets the line's quantity, removing it when quantity <= 0.
// It reports whether a line for productID existed.
func (s *Store) UpdateQuantity(productID, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(productID)
	}
	i := s.indexLocked(productID)
	if i < 0 {
		return false
	}
	s.items[i].Quantity = quantity
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, li := range s.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}

func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Item(productID int) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(productID); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

func (s *Store) indexLocked(productID int) int {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(productID int) bool {
	i := s.indexLocked(productID)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}
