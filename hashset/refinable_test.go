package hashset

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefinableSetContract(t *testing.T) {
	testSetContract(t, func(initialCapacity int) Set[int] {
		return NewRefinableSet(initialCapacity, intHash)
	})
}

func TestRefinableSetConcurrentAdds(t *testing.T) {
	s := NewRefinableSet(2, intHash)
	testConcurrentDisjointAdds(t, s, 5, 10)
	require.Equal(t, 50, s.Size())
}

func TestRefinableSetConcurrentChurn(t *testing.T) {
	s := NewRefinableSet(8, intHash)
	testConcurrentChurn(t, s, 4, 300)
}

func TestRefinableSetLockVectorGrows(t *testing.T) {
	s := NewRefinableSet(2, intHash)
	internal := s.(*refinableSet[int])
	for i := 0; i < 100; i++ {
		require.True(t, s.Add(i))
	}
	bucketCount := atomic.LoadUint64(&internal.bucketCount)
	require.Greater(t, bucketCount, uint64(2))
	// lock count tracks the bucket count through every doubling
	require.Equal(t, int(bucketCount), len(internal.mutexes))
	for i := 0; i < 100; i++ {
		require.True(t, s.Contains(i))
	}
}

func TestRefinableSetConcurrentGrowth(t *testing.T) {
	// repeated lock-array swaps race against in-flight bucket operations;
	// the run must settle with nothing lost and no deadlock
	s := NewRefinableSet(2, intHash)
	testConcurrentDisjointAdds(t, s, 8, 500)
}
