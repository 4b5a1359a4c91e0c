package batch

import (
	"fmt"
	"iter"
	"slices"
)

// Batch is an ordered collection of items that all carry exactly the keys
// declared when the batch was created. Items are kept in insertion order so
// that they stay aligned with any per-example data the caller holds by index.
//
// A Batch has a single writer. Concurrent Add calls must be serialized by
// the caller, and readers must not race with Add.
type Batch struct {
	keys   []string
	keySet map[string]struct{}
	items  []*Item
}

// New creates an empty batch with the given schema. Keys must be non-empty
// and unique.
func New(keys ...string) (*Batch, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys", ErrInvalidSchema)
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := set[k]; ok {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidSchema, k)
		}
		set[k] = struct{}{}
	}
	return &Batch{
		keys:   slices.Clone(keys),
		keySet: set,
	}, nil
}

// Add appends a snapshot of item to the batch. If the item's keys are not
// exactly the batch's keys, Add returns a *SchemaMismatchError and leaves the
// batch unchanged. Later Puts on item do not affect the batch.
func (b *Batch) Add(item *Item) error {
	if err := b.Check(item); err != nil {
		return err
	}
	b.items = append(b.items, item.clone())
	return nil
}

// Check reports whether item would be accepted by Add.
func (b *Batch) Check(item *Item) error {
	var missing, extra []string
	for _, k := range b.keys {
		if item == nil || !item.Has(k) {
			missing = append(missing, k)
		}
	}
	if item != nil {
		for _, k := range item.keys {
			if _, ok := b.keySet[k]; !ok {
				extra = append(extra, k)
			}
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return &SchemaMismatchError{Missing: missing, Extra: extra}
	}
	return nil
}

// Keys returns the declared schema in declaration order.
func (b *Batch) Keys() []string {
	return slices.Clone(b.keys)
}

func (b *Batch) Len() int {
	return len(b.items)
}

// Item returns the i'th item added.
func (b *Batch) Item(i int) *Item {
	return b.items[i]
}

// All yields items in insertion order.
func (b *Batch) All() iter.Seq2[int, *Item] {
	return func(yield func(int, *Item) bool) {
		for i, it := range b.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Column returns the values stored under key, one per item, in insertion
// order. It returns nil if key is not part of the schema.
func (b *Batch) Column(key string) []Value {
	if _, ok := b.keySet[key]; !ok {
		return nil
	}
	out := make([]Value, len(b.items))
	for i, it := range b.items {
		out[i] = it.values[key]
	}
	return out
}
