package hashset

import (
	"sync/atomic"

	"github.com/tuannh982/hashsets/utils/locking"
	"github.com/tuannh982/hashsets/utils/math"

	log "github.com/sirupsen/logrus"
)

// stripedSet guards the table with a fixed vector of stripe mutexes sized
// at construction. The bucket array grows but the lock vector never does,
// so after growth one stripe lock covers several buckets: the lock index is
// taken modulo the initial capacity, the bucket index modulo the current
// one.
type stripedSet[V comparable] struct {
	table              [][]V
	bucketCount        uint64
	initialBucketCount uint64
	elemCount          int64
	mutexes            locking.MutexVector
	hash               HashFunc[V]
	log                *log.Entry
}

func NewStripedSet[V comparable](initialCapacity int, hash HashFunc[V]) Set[V] {
	return &stripedSet[V]{
		table:              make([][]V, initialCapacity),
		bucketCount:        uint64(initialCapacity),
		initialBucketCount: uint64(initialCapacity),
		mutexes:            locking.NewMutexVector(initialCapacity),
		hash:               hash,
		log:                log.WithFields(log.Fields{"set": "striped"}),
	}
}

func (s *stripedSet[V]) Add(v V) bool {
	mu := s.mutexes.At(s.stripe(v))
	mu.Lock()
	bucket := s.hash(v) % atomic.LoadUint64(&s.bucketCount)
	if s.containsInBucket(v, bucket) {
		mu.Unlock()
		return false
	}
	s.table[bucket] = append(s.table[bucket], v)
	atomic.AddInt64(&s.elemCount, 1)
	mu.Unlock()
	// the policy check runs outside the stripe lock so the resize can take
	// every stripe, including ours, without deadlocking
	if s.policy() {
		s.resize()
	}
	return true
}

func (s *stripedSet[V]) Remove(v V) bool {
	mu := s.mutexes.At(s.stripe(v))
	mu.Lock()
	defer mu.Unlock()
	bucket := s.hash(v) % atomic.LoadUint64(&s.bucketCount)
	if !s.containsInBucket(v, bucket) {
		return false
	}
	if atomic.LoadInt64(&s.elemCount) == 0 {
		panic("hashset: element count underflow")
	}
	for i, e := range s.table[bucket] {
		if e == v {
			s.table[bucket] = append(s.table[bucket][:i], s.table[bucket][i+1:]...)
			break
		}
	}
	atomic.AddInt64(&s.elemCount, -1)
	return true
}

func (s *stripedSet[V]) Contains(v V) bool {
	mu := s.mutexes.At(s.stripe(v))
	mu.Lock()
	defer mu.Unlock()
	bucket := s.hash(v) % atomic.LoadUint64(&s.bucketCount)
	return s.containsInBucket(v, bucket)
}

func (s *stripedSet[V]) Size() int {
	return int(atomic.LoadInt64(&s.elemCount))
}

func (s *stripedSet[V]) stripe(v V) int {
	return int(s.hash(v) % s.initialBucketCount)
}

func (s *stripedSet[V]) containsInBucket(v V, bucket uint64) bool {
	for _, e := range s.table[bucket] {
		if e == v {
			return true
		}
	}
	return false
}

func (s *stripedSet[V]) policy() bool {
	return atomic.LoadInt64(&s.elemCount) > loadFactorThreshold*int64(atomic.LoadUint64(&s.bucketCount))
}

// resize takes every stripe lock in index order, so two racing resizers, or
// a resizer and an in-flight bucket operation, can never wait on each other
// in a cycle. After the locks are held the capacity is re-read: if another
// thread already doubled it, this resize is redundant and aborts.
func (s *stripedSet[V]) resize() {
	oldCapacity := atomic.LoadUint64(&s.bucketCount)
	s.mutexes.LockAll()
	defer s.mutexes.UnlockAll()
	if atomic.LoadUint64(&s.bucketCount) != oldCapacity {
		return
	}
	newCapacity := 2 * oldCapacity
	table := make([][]V, newCapacity)
	for _, bucket := range s.table {
		for _, e := range bucket {
			i := s.hash(e) % newCapacity
			table[i] = append(table[i], e)
		}
	}
	s.table = table
	atomic.StoreUint64(&s.bucketCount, newCapacity)
	s.log.Debug("table resized", " newCapacity=", newCapacity,
		" bucketsPerStripe=", math.DivCeil(newCapacity, s.initialBucketCount))
}
