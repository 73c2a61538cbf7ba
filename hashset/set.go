package hashset

// HashFunc maps an element to the hash value used for bucket placement.
type HashFunc[V any] func(V) uint64

// Set is the capability surface shared by every hash set variant.
// Add and Remove report whether the set changed; absence of an element is
// a normal outcome, not an error.
type Set[V any] interface {
	Add(v V) bool
	Remove(v V) bool
	Contains(v V) bool
	Size() int
}

// loadFactorThreshold triggers a capacity doubling once
// elemCount > loadFactorThreshold * bucketCount after a successful Add.
const loadFactorThreshold = 4
