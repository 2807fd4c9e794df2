package marquee

// arena stores records densely and hands out sequential keys. Removal
// swaps the last record into the hole, so iteration order is stable only
// while nothing is removed.
type arena[T any] struct {
	next  Key
	keys  []Key
	items []T
	index map[Key]int
}

func newArena[T any](capacity int) *arena[T] {
	return &arena[T]{
		next:  1,
		keys:  make([]Key, 0, capacity),
		items: make([]T, 0, capacity),
		index: make(map[Key]int, capacity),
	}
}

// insert stores v under a fresh key and returns the key and a pointer to
// the stored record. The pointer is valid until the next insert or remove.
func (a *arena[T]) insert(v T) (Key, *T) {
	k := a.next
	a.next++
	a.index[k] = len(a.items)
	a.keys = append(a.keys, k)
	a.items = append(a.items, v)
	return k, &a.items[len(a.items)-1]
}

func (a *arena[T]) get(k Key) (*T, bool) {
	i, ok := a.index[k]
	if !ok {
		return nil, false
	}
	return &a.items[i], true
}

func (a *arena[T]) remove(k Key) bool {
	i, ok := a.index[k]
	if !ok {
		return false
	}
	last := len(a.items) - 1
	if i != last {
		a.items[i] = a.items[last]
		a.keys[i] = a.keys[last]
		a.index[a.keys[i]] = i
	}
	var zero T
	a.items[last] = zero
	a.items = a.items[:last]
	a.keys = a.keys[:last]
	delete(a.index, k)
	return true
}

// clear drops every record. Keys are never reused.
func (a *arena[T]) clear() {
	var zero T
	for i := range a.items {
		a.items[i] = zero
	}
	a.items = a.items[:0]
	a.keys = a.keys[:0]
	clear(a.index)
}

func (a *arena[T]) len() int {
	return len(a.items)
}

// each calls fn for every record in dense order.
func (a *arena[T]) each(fn func(Key, *T)) {
	for i := range a.items {
		fn(a.keys[i], &a.items[i])
	}
}
