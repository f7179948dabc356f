package wishlist

// Wishlist is an insertion-ordered set of product ids with O(1) membership.
// It is not safe for concurrent use.
type Wishlist struct {
	items []string
	index map[string]struct{}
}

func New() *Wishlist {
	return &Wishlist{index: make(map[string]struct{})}
}

// Add is idempotent: adding a present id changes nothing
func (w *Wishlist) Add(productID string) {
	if _, ok := w.index[productID]; ok {
		return
	}
	w.index[productID] = struct{}{}
	w.items = append(w.items, productID)
}

func (w *Wishlist) Remove(productID string) {
	if _, ok := w.index[productID]; !ok {
		return
	}
	delete(w.index, productID)
	for i, id := range w.items {
		if id == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			break
		}
	}
}

func (w *Wishlist) Contains(productID string) bool {
	_, ok := w.index[productID]
	return ok
}

// Toggle adds a missing id or removes a present one, returning the new membership
func (w *Wishlist) Toggle(productID string) bool {
	if w.Contains(productID) {
		w.Remove(productID)
		return false
	}
	w.Add(productID)
	return true
}

func (w *Wishlist) Clear() {
	w.items = nil
	w.index = make(map[string]struct{})
}

// Items returns the ids in the order they were added
func (w *Wishlist) Items() []string {
	out := make([]string, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Len() int {
	return len(w.items)
}
