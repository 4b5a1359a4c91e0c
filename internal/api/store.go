package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/ETS-Android5/tensorio-android/pkg/batch"
)

type batchRecord struct {
	// mu serializes writers; a Batch has a single writer.
	mu        sync.Mutex
	deleted   bool
	id        string
	createdAt time.Time
	batch     *batch.Batch
}

func (r *batchRecord) summary() BatchResponse {
	return BatchResponse{
		ID:        r.id,
		Object:    "batch",
		Keys:      r.batch.Keys(),
		Size:      r.batch.Len(),
		CreatedAt: r.createdAt.Unix(),
	}
}

// BatchStore holds batches being assembled over HTTP. Batches expire after
// ttl without activity.
type BatchStore struct {
	ttl   time.Duration
	cache *cache.Cache
}

func NewBatchStore(ttl time.Duration) *BatchStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := ttl
	if cleanup == cache.NoExpiration {
		cleanup = 0
	}
	return &BatchStore{
		ttl:   ttl,
		cache: cache.New(ttl, cleanup),
	}
}

// OnEvicted registers fn to be called with the id of every batch removed
// from the store, whether deleted or expired.
func (s *BatchStore) OnEvicted(fn func(id string)) {
	s.cache.OnEvicted(func(id string, _ any) { fn(id) })
}

func (s *BatchStore) Create(keys []string, now time.Time) (BatchResponse, error) {
	b, err := batch.New(keys...)
	if err != nil {
		return BatchResponse{}, err
	}
	rec := &batchRecord{
		id:        "batch_" + uuid.NewString(),
		createdAt: now,
		batch:     b,
	}
	s.cache.Set(rec.id, rec, cache.DefaultExpiration)
	return rec.summary(), nil
}

func (s *BatchStore) get(id string) (*batchRecord, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*batchRecord), true
}

func (s *BatchStore) Get(id string) (BatchResponse, bool) {
	rec, ok := s.get(id)
	if !ok {
		return BatchResponse{}, false
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return BatchResponse{}, false
	}
	return rec.summary(), true
}

// Add appends item to the batch and refreshes its expiry.
func (s *BatchStore) Add(id string, item *batch.Item) (BatchResponse, error) {
	rec, ok := s.get(id)
	if !ok {
		return BatchResponse{}, ErrBatchNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return BatchResponse{}, ErrBatchNotFound
	}
	if err := rec.batch.Add(item); err != nil {
		return BatchResponse{}, err
	}
	// Replace fails if the batch expired while we waited for the lock.
	if err := s.cache.Replace(id, rec, cache.DefaultExpiration); err != nil {
		return BatchResponse{}, ErrBatchNotFound
	}
	return rec.summary(), nil
}

// With runs fn while holding the batch's lock.
func (s *BatchStore) With(id string, fn func(b *batch.Batch) error) error {
	rec, ok := s.get(id)
	if !ok {
		return ErrBatchNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return ErrBatchNotFound
	}
	return fn(rec.batch)
}

// Delete removes the batch once any in-flight writer has finished. Writers
// queued behind it see the batch as missing.
func (s *BatchStore) Delete(id string) bool {
	rec, ok := s.get(id)
	if !ok {
		return false
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return false
	}
	rec.deleted = true
	s.cache.Delete(id)
	return true
}

func (s *BatchStore) Len() int {
	return s.cache.ItemCount()
}
