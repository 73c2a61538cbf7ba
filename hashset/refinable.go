package hashset

import (
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// refinableSet keeps one mutex per bucket and regrows the mutex vector
// together with the table. Bucket operations enter through the read side of
// a growth gate, so a resize (which holds the write side) can never run
// underneath them; the gate is always taken before the bucket lock and
// released after it. On top of the gate the resizer quiesces: it acquires
// and releases every bucket mutex once, guaranteeing no operation is still
// inside a bucket lock it obtained before the gate closed.
type refinableSet[V comparable] struct {
	table       [][]V
	bucketCount uint64
	elemCount   int64
	mutexes     []sync.Mutex
	resizing    sync.RWMutex
	hash        HashFunc[V]
	log         *log.Entry
}

func NewRefinableSet[V comparable](initialCapacity int, hash HashFunc[V]) Set[V] {
	return &refinableSet[V]{
		table:       make([][]V, initialCapacity),
		bucketCount: uint64(initialCapacity),
		mutexes:     make([]sync.Mutex, initialCapacity),
		hash:        hash,
		log:         log.WithFields(log.Fields{"set": "refinable"}),
	}
}

func (s *refinableSet[V]) Add(v V) bool {
	added := s.addLocked(v)
	if added && s.policy() {
		s.resize()
	}
	return added
}

// addLocked is the bucket-level part of Add; the resize trigger stays
// outside so the gate's read side is released before the resizer needs its
// write side.
func (s *refinableSet[V]) addLocked(v V) bool {
	s.resizing.RLock()
	defer s.resizing.RUnlock()
	bucket, mu := s.acquire(v)
	defer mu.Unlock()
	if s.containsInBucket(v, bucket) {
		return false
	}
	s.table[bucket] = append(s.table[bucket], v)
	atomic.AddInt64(&s.elemCount, 1)
	return true
}

func (s *refinableSet[V]) Remove(v V) bool {
	s.resizing.RLock()
	defer s.resizing.RUnlock()
	bucket, mu := s.acquire(v)
	defer mu.Unlock()
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

func (s *refinableSet[V]) Contains(v V) bool {
	s.resizing.RLock()
	defer s.resizing.RUnlock()
	bucket, mu := s.acquire(v)
	defer mu.Unlock()
	return s.containsInBucket(v, bucket)
}

func (s *refinableSet[V]) Size() int {
	return int(atomic.LoadInt64(&s.elemCount))
}

// acquire locks the bucket mutex for v and returns the bucket index
// together with the held mutex. Callers must already hold the gate's read
// side; lock and bucket indices coincide because the mutex vector is sized
// to the bucket count.
func (s *refinableSet[V]) acquire(v V) (uint64, *sync.Mutex) {
	bucket := s.hash(v) % atomic.LoadUint64(&s.bucketCount)
	mu := &s.mutexes[bucket]
	mu.Lock()
	return bucket, mu
}

func (s *refinableSet[V]) containsInBucket(v V, bucket uint64) bool {
	for _, e := range s.table[bucket] {
		if e == v {
			return true
		}
	}
	return false
}

func (s *refinableSet[V]) policy() bool {
	return atomic.LoadInt64(&s.elemCount) > loadFactorThreshold*int64(atomic.LoadUint64(&s.bucketCount))
}

func (s *refinableSet[V]) resize() {
	oldCapacity := atomic.LoadUint64(&s.bucketCount)
	s.resizing.Lock()
	defer s.resizing.Unlock()
	// another thread may have resized between the policy check and the gate
	if atomic.LoadUint64(&s.bucketCount) != oldCapacity {
		return
	}
	s.quiesce()
	newCapacity := 2 * oldCapacity
	table := make([][]V, newCapacity)
	for _, bucket := range s.table {
		for _, e := range bucket {
			i := s.hash(e) % newCapacity
			table[i] = append(table[i], e)
		}
	}
	s.table = table
	s.mutexes = make([]sync.Mutex, newCapacity)
	atomic.StoreUint64(&s.bucketCount, newCapacity)
	s.log.Debug("table and lock vector resized", " newCapacity=", newCapacity)
}

// quiesce is a rendezvous, not a held lock: acquiring and immediately
// releasing every bucket mutex in index order proves no operation is still
// mid-flight inside one.
func (s *refinableSet[V]) quiesce() {
	for i := range s.mutexes {
		s.mutexes[i].Lock()
		s.mutexes[i].Unlock()
	}
}
