package hashset

// sequentialSet is the single-threaded baseline. It defines the bucket
// placement and doubling policy the concurrent variants follow. Callers
// must not share it across goroutines.
type sequentialSet[V comparable] struct {
	table       [][]V
	bucketCount uint64
	elemCount   int
	hash        HashFunc[V]
}

func NewSequentialSet[V comparable](initialCapacity int, hash HashFunc[V]) Set[V] {
	return &sequentialSet[V]{
		table:       make([][]V, initialCapacity),
		bucketCount: uint64(initialCapacity),
		hash:        hash,
	}
}

func (s *sequentialSet[V]) Add(v V) bool {
	if s.Contains(v) {
		return false
	}
	bucket := s.hash(v) % s.bucketCount
	s.table[bucket] = append(s.table[bucket], v)
	s.elemCount++
	if s.policy() {
		s.resize()
	}
	return true
}

func (s *sequentialSet[V]) Remove(v V) bool {
	bucket := s.hash(v) % s.bucketCount
	for i, e := range s.table[bucket] {
		if e == v {
			s.table[bucket] = append(s.table[bucket][:i], s.table[bucket][i+1:]...)
			s.elemCount--
			return true
		}
	}
	return false
}

func (s *sequentialSet[V]) Contains(v V) bool {
	bucket := s.hash(v) % s.bucketCount
	for _, e := range s.table[bucket] {
		if e == v {
			return true
		}
	}
	return false
}

func (s *sequentialSet[V]) Size() int {
	return s.elemCount
}

func (s *sequentialSet[V]) policy() bool {
	return s.elemCount > loadFactorThreshold*int(s.bucketCount)
}

func (s *sequentialSet[V]) resize() {
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
}
