package locking

import "sync"

// MutexVector is a fixed vector of mutexes that can be acquired wholesale.
// LockAll always walks the vector in index order; every caller using the
// same order cannot form an acquisition cycle.
type MutexVector []sync.Mutex

func NewMutexVector(n int) MutexVector {
	return make(MutexVector, n)
}

// At returns the mutex at index i. The pointer stays valid for the lifetime
// of the vector.
func (v MutexVector) At(i int) *sync.Mutex {
	return &v[i]
}

func (v MutexVector) Len() int {
	return len(v)
}

func (v MutexVector) LockAll() {
	for i := range v {
		v[i].Lock()
	}
}

func (v MutexVector) UnlockAll() {
	for i := range v {
		v[i].Unlock()
	}
}
