package cart

import (
	"slices"
	"sync"

	"github.com/abelbrown/storefront/internal/logging"
)

// Line is one product in the cart.
type Line struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

// Cart is the shopper's cart. Every mutation is saved through the
// Persistence; a failed save is logged and returned but the in-memory
// change stands. A Cart is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	store Persistence[[]Line]
}

// NewCart loads the saved cart. A load failure (corrupt data, missing
// backend) starts an empty cart and is logged.
func NewCart(p Persistence[[]Line]) *Cart {
	c := &Cart{store: p}
	lines, err := p.Load()
	if err != nil {
		logging.Warn("cart: load failed, starting empty", "error", err)
		return c
	}
	for _, l := range lines {
		if l.Quantity > 0 {
			c.lines = append(c.lines, l)
		}
	}
	return c
}

// Lines returns a copy of the cart lines in the order they were added.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

// Add puts one more of id in the cart.
func (c *Cart) Add(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, Line{ProductID: id, Quantity: 1})
	}
	return c.save()
}

// Decrease takes one of id out of the cart, removing the line when it
// reaches zero. Unknown IDs are ignored.
func (c *Cart) Decrease(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return nil
	}
	if c.lines[i].Quantity <= 1 {
		c.lines = slices.Delete(c.lines, i, i+1)
	} else {
		c.lines[i].Quantity--
	}
	return c.save()
}

// Remove drops id's line entirely.
func (c *Cart) Remove(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return nil
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return c.save()
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return c.save()
}

// Count is the total quantity across lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Contains reports whether id is in the cart.
func (c *Cart) Contains(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index(id) >= 0
}

// Quantity returns how many of id are in the cart.
func (c *Cart) Quantity(id int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Subtotal prices the cart. Lines whose product has no price are skipped.
func (c *Cart) Subtotal(prices map[int64]float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, l := range c.lines {
		if p, ok := prices[l.ProductID]; ok {
			total += p * float64(l.Quantity)
		}
	}
	return total
}

func (c *Cart) index(id int64) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ProductID == id })
}

// save writes the lines through the Persistence. c.mu must be held.
func (c *Cart) save() error {
	lines := slices.Clone(c.lines)
	if lines == nil {
		lines = []Line{}
	}
	if err := c.store.Save(lines); err != nil {
		logging.Error("cart: save failed", "error", err)
		return err
	}
	return nil
}

// Wishlist is the set of products the shopper saved for later.
type Wishlist struct {
	ids   map[int64]struct{}
	store Persistence[[]int64]
}

// NewWishlist loads the saved wishlist, starting empty on failure.
func NewWishlist(p Persistence[[]int64]) *Wishlist {
	w := &Wishlist{ids: make(map[int64]struct{}), store: p}
	ids, err := p.Load()
	if err != nil {
		logging.Warn("wishlist: load failed, starting empty", "error", err)
		return w
	}
	for _, id := range ids {
		w.ids[id] = struct{}{}
	}
	return w
}

// Toggle adds id if absent and removes it if present. It reports whether
// id is in the wishlist afterwards.
func (w *Wishlist) Toggle(id int64) (bool, error) {
	_, had := w.ids[id]
	if had {
		delete(w.ids, id)
	} else {
		w.ids[id] = struct{}{}
	}
	return !had, w.save()
}

// Contains reports whether id is wishlisted.
func (w *Wishlist) Contains(id int64) bool {
	_, ok := w.ids[id]
	return ok
}

// IDs returns the wishlisted IDs in ascending order.
func (w *Wishlist) IDs() []int64 {
	out := make([]int64, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Len is the number of wishlisted products.
func (w *Wishlist) Len() int { return len(w.ids) }

// Clear empties the wishlist.
func (w *Wishlist) Clear() error {
	clear(w.ids)
	return w.save()
}

func (w *Wishlist) save() error {
	if err := w.store.Save(w.IDs()); err != nil {
		logging.Error("wishlist: save failed", "error", err)
		return err
	}
	return nil
}
