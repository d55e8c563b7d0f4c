// Package indexedset provides an ordered set of small non-negative
// integers, backed by a Fenwick (binary indexed) tree, supporting
// O(log n) insert/remove/contains plus select-nth-present-element.
// It is the primitive that lets the dungeon and item subsystems pick a
// uniformly random empty cell, free slot, or connectable room without
// ever scanning linearly.
package indexedset

// Set is a Fenwick-tree-backed set of integers in [0, n).
type Set struct {
	tree []int64
	n    int
	size int
}

// New creates an empty Set with capacity n (valid elements are 0..n-1).
func New(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{tree: make([]int64, n+1), n: n}
}

// FromRange creates a Set containing every integer in [0, n).
func FromRange(n int) *Set {
	s := New(n)
	for i := 0; i < n; i++ {
		s.Insert(i)
	}
	return s
}

// Len returns the number of elements currently present.
func (s *Set) Len() int { return s.size }

// Cap returns the set's capacity (the exclusive upper bound of valid elements).
func (s *Set) Cap() int { return s.n }

func (s *Set) add(idx int, delta int64) {
	for i := idx + 1; i <= s.n; i += i & (-i) {
		s.tree[i] += delta
	}
}

func (s *Set) prefixSum(idx int) int64 {
	var sum int64
	for i := idx; i > 0; i -= i & (-i) {
		sum += s.tree[i]
	}
	return sum
}

// Contains reports whether i is in the set.
func (s *Set) Contains(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.prefixSum(i+1)-s.prefixSum(i) == 1
}

// Insert adds i to the set. Returns false if i was already present or out
// of range.
func (s *Set) Insert(i int) bool {
	if i < 0 || i >= s.n || s.Contains(i) {
		return false
	}
	s.add(i, 1)
	s.size++
	return true
}

// Remove removes i from the set. Returns false if i was absent.
func (s *Set) Remove(i int) bool {
	if !s.Contains(i) {
		return false
	}
	s.add(i, -1)
	s.size--
	return true
}

// lowerBound returns the smallest index i such that the prefix sum over
// [0, i] is >= query (1-indexed internally; 0 if query <= 0).
func (s *Set) lowerBound(query int64) int {
	if query <= 0 {
		return 0
	}
	k := 1
	for k <= s.n {
		k *= 2
	}
	cur := 0
	for k > 0 {
		k /= 2
		next := cur + k
		if next > s.n {
			continue
		}
		if s.tree[next] < query {
			query -= s.tree[next]
			cur = next
		}
	}
	return cur
}

// Nth returns the k-th smallest present element (0-indexed). Panics if
// k is out of range [0, Len()).
func (s *Set) Nth(k int) int {
	if k < 0 || k >= s.size {
		panic("indexedset: Nth index out of range")
	}
	return s.lowerBound(int64(k + 1))
}

// chooser is satisfied by the subset of rng.RNG used for selection,
// avoiding an import cycle between indexedset and rng (rng.Select is
// itself built on this package).
type chooser interface {
	IntRange(lo, hi int) int
}

// Select returns a uniformly random present element, or (0, false) if the
// set is empty.
func (s *Set) Select(rng chooser) (int, bool) {
	if s.size == 0 {
		return 0, false
	}
	k := rng.IntRange(0, s.size-1)
	return s.Nth(k), true
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	cp := &Set{tree: make([]int64, len(s.tree)), n: s.n, size: s.size}
	copy(cp.tree, s.tree)
	return cp
}

// Elements returns every present element in ascending order. Intended for
// tests and debugging; production code should prefer Nth/Select to stay
// O(log n).
func (s *Set) Elements() []int {
	out := make([]int, 0, s.size)
	for i := 0; i < s.n; i++ {
		if s.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}
