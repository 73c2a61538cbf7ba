package hashset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func intHash(v int) uint64 {
	return uint64(v)
}

// testSetContract drives the single-threaded operation contract shared by
// every variant: uniqueness, add/remove inverse, size consistency, and
// resize transparency across several doublings.
func testSetContract(t *testing.T, newSet func(initialCapacity int) Set[int]) {
	s := newSet(4)
	require.False(t, s.Remove(7))
	require.Equal(t, 0, s.Size())
	require.False(t, s.Contains(7))
	require.True(t, s.Add(7))
	require.False(t, s.Add(7))
	require.Equal(t, 1, s.Size())
	require.True(t, s.Contains(7))
	require.True(t, s.Remove(7))
	require.False(t, s.Contains(7))
	require.Equal(t, 0, s.Size())
	for i := 0; i < 100; i++ {
		require.True(t, s.Add(i))
	}
	for i := 0; i < 100; i++ {
		require.False(t, s.Add(i))
	}
	require.Equal(t, 100, s.Size())
	for i := 0; i < 100; i++ {
		require.True(t, s.Contains(i))
	}
	for i := 0; i < 100; i += 2 {
		require.True(t, s.Remove(i))
	}
	require.Equal(t, 50, s.Size())
	for i := 0; i < 100; i++ {
		require.Equal(t, i%2 == 1, s.Contains(i))
	}
}

// testConcurrentDisjointAdds has workers insert disjoint ranges in
// parallel, then verifies no update was lost.
func testConcurrentDisjointAdds(t *testing.T, s Set[int], workers, perWorker int) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				require.True(t, s.Add(w*perWorker+i))
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, workers*perWorker, s.Size())
	for i := 0; i < workers*perWorker; i++ {
		require.True(t, s.Contains(i))
	}
}

// testConcurrentChurn mixes adds, membership checks, removals and lock-free
// size reads over overlapping ranges, then settles every range with a final
// add pass and verifies the net result.
func testConcurrentChurn(t *testing.T, s Set[int], workers, perWorker int) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			lo := w * perWorker
			hi := lo + 2*perWorker
			for i := lo; i < hi; i++ {
				s.Add(i)
				_ = s.Size()
			}
			for j := 0; j < 5; j++ {
				for i := lo; i < hi; i++ {
					if s.Contains(i) && i%10 == 0 {
						s.Remove(i)
					}
				}
			}
			for i := lo; i < hi; i++ {
				s.Add(i)
			}
		}(w)
	}
	wg.Wait()
	expected := (workers + 1) * perWorker
	require.Equal(t, expected, s.Size())
	for i := 0; i < expected; i++ {
		require.True(t, s.Contains(i))
	}
}
