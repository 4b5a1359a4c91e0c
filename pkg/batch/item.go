package batch

import "slices"

// Item is one example: an ordered set of keyed values. Keys are unique and
// keep the order in which they were first put.
type Item struct {
	keys   []string
	values map[string]Value
}

func NewItem() *Item {
	return &Item{values: make(map[string]Value)}
}

// Put inserts or overwrites the value under key. Overwriting keeps the key's
// original position.
func (it *Item) Put(key string, v Value) *Item {
	if it.values == nil {
		it.values = make(map[string]Value)
	}
	if _, ok := it.values[key]; !ok {
		it.keys = append(it.keys, key)
	}
	it.values[key] = v
	return it
}

func (it *Item) Get(key string) (Value, bool) {
	v, ok := it.values[key]
	return v, ok
}

func (it *Item) Has(key string) bool {
	_, ok := it.values[key]
	return ok
}

// Keys returns the item's keys in insertion order.
func (it *Item) Keys() []string {
	return slices.Clone(it.keys)
}

func (it *Item) Len() int {
	return len(it.keys)
}

func (it *Item) clone() *Item {
	c := &Item{
		keys:   slices.Clone(it.keys),
		values: make(map[string]Value, len(it.values)),
	}
	for k, v := range it.values {
		c.values[k] = v
	}
	return c
}
