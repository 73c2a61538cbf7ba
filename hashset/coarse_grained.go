package hashset

import (
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// coarseGrainedSet serializes every operation behind one mutex. The element
// count is still atomic so Size can be read without taking the lock.
type coarseGrainedSet[V comparable] struct {
	mu          sync.Mutex
	table       [][]V
	bucketCount uint64
	elemCount   int64
	hash        HashFunc[V]
	log         *log.Entry
}

func NewCoarseGrainedSet[V comparable](initialCapacity int, hash HashFunc[V]) Set[V] {
	return &coarseGrainedSet[V]{
		table:       make([][]V, initialCapacity),
		bucketCount: uint64(initialCapacity),
		hash:        hash,
		log:         log.WithFields(log.Fields{"set": "coarse-grained"}),
	}
}

func (s *coarseGrainedSet[V]) Add(v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.containsNoLock(v) {
		return false
	}
	bucket := s.hash(v) % s.bucketCount
	s.table[bucket] = append(s.table[bucket], v)
	atomic.AddInt64(&s.elemCount, 1)
	// unlike the finer-grained variants, the resize runs inside the same
	// critical section as the insert
	if s.policy() {
		s.resize()
	}
	return true
}

func (s *coarseGrainedSet[V]) Remove(v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.containsNoLock(v) {
		return false
	}
	if atomic.LoadInt64(&s.elemCount) == 0 {
		panic("hashset: element count underflow")
	}
	bucket := s.hash(v) % s.bucketCount
	for i, e := range s.table[bucket] {
		if e == v {
			s.table[bucket] = append(s.table[bucket][:i], s.table[bucket][i+1:]...)
			break
		}
	}
	atomic.AddInt64(&s.elemCount, -1)
	return true
}

func (s *coarseGrainedSet[V]) Contains(v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsNoLock(v)
}

func (s *coarseGrainedSet[V]) Size() int {
	return int(atomic.LoadInt64(&s.elemCount))
}

// containsNoLock lets Add and Remove recheck membership without reacquiring
// the non-reentrant mutex they already hold.
func (s *coarseGrainedSet[V]) containsNoLock(v V) bool {
	bucket := s.hash(v) % s.bucketCount
	for _, e := range s.table[bucket] {
		if e == v {
			return true
		}
	}
	return false
}

func (s *coarseGrainedSet[V]) policy() bool {
	return atomic.LoadInt64(&s.elemCount) > loadFactorThreshold*int64(s.bucketCount)
}

func (s *coarseGrainedSet[V]) resize() {
	newCapacity := 2 * s.bucketCount
	table := make([][]V, newCapacity)
	for _, bucket := range s.table {
		for _, e := range bucket {
			i := s.hash(e) % newCapacity
			table[i] = append(table[i], e)
		}
	}
	s.table = table
	s.bucketCount = newCapacity
	s.log.Debug("table resized", " newCapacity=", newCapacity)
}
