// Package bitset provides fixed-width subset encodings for location index
// sets, the way tsp.TSPExact (lvlath) encodes Held–Karp DP subsets as plain
// machine words instead of allocating map[int]bool per state.
//
// A Set is a bitmask over location indices [0, n) for n up to the word
// width. The operation table (see package optable) is keyed in part by
// such sets, so every operation here is allocation-free and O(1) except
// Popcount (O(1) via a hardware popcount intrinsic), the Subsets
// iterator (amortized O(1) per step), and Members (O(n), allocating its
// result).
//
// The hard system-wide cap is 32 locations (spec: bitset-based tables);
// a single uint64 covers that with room to spare, so no larger word type
// is introduced here.
package bitset

import "math/bits"

// Set is a bitmask of location indices. Bit i set means index i is a member.
type Set uint64

// Empty is the set containing no indices.
const Empty Set = 0

// Singleton returns the set containing only index i.
//
// Complexity: O(1).
func Singleton(i int) Set {
	return Set(1) << uint(i)
}

// Full returns the set {0, 1, ..., n-1}.
//
// Complexity: O(1).
func Full(n int) Set {
	if n <= 0 {
		return Empty
	}
	if n >= 64 {
		return ^Set(0)
	}
	return (Set(1) << uint(n)) - 1
}

// Contains reports whether index i is a member of s.
//
// Complexity: O(1).
func Contains(s Set, i int) bool {
	return s&Singleton(i) != 0
}

// Add returns s with index i added.
//
// Complexity: O(1).
func Add(s Set, i int) Set {
	return s | Singleton(i)
}

// Remove returns s with index i removed (a no-op if absent).
//
// Complexity: O(1).
func Remove(s Set, i int) Set {
	return s &^ Singleton(i)
}

// Union returns the union of a and b.
//
// Complexity: O(1).
func Union(a, b Set) Set {
	return a | b
}

// Intersect returns the intersection of a and b.
//
// Complexity: O(1).
func Intersect(a, b Set) Set {
	return a & b
}

// Complement returns the complement of s within the universe {0, ..., n-1}.
//
// Complexity: O(1).
func Complement(s Set, n int) Set {
	return Full(n) &^ s
}

// Popcount returns the number of members of s.
//
// Complexity: O(1) (hardware popcount).
func Popcount(s Set) int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty reports whether s has no members.
//
// Complexity: O(1).
func IsEmpty(s Set) bool {
	return s == Empty
}

// SubsetIter walks every non-empty subset of a fixed superset in decreasing
// numerical order. This is the classic "submask enumeration" trick: each
// step computes (cur-1)&super, which terminates at zero after visiting
// every one of the 2^popcount(super) - 1 non-empty submasks exactly once.
//
// It enumerates submasks without allocating a slice of them up front.
type SubsetIter struct {
	super Set
	cur   Set
	first bool
}

// Subsets returns an iterator over every non-empty subset of s, in
// decreasing numerical order.
//
// Complexity: O(1) to construct; the full walk is O(3^popcount(s)) amortized
// across all DP recurrences that enumerate subsets of a mask this way.
func Subsets(s Set) *SubsetIter {
	return &SubsetIter{super: s, cur: s, first: true}
}

// Next advances the iterator and reports whether a subset was produced.
//
// Complexity: O(1) amortized.
func (it *SubsetIter) Next() (Set, bool) {
	if it.super == Empty {
		return Empty, false
	}
	if it.first {
		it.first = false
		return it.cur, true
	}
	if it.cur == Empty {
		return Empty, false
	}
	it.cur = (it.cur - 1) & it.super
	if it.cur == Empty {
		return Empty, false
	}
	return it.cur, true
}

// Members returns the sorted indices contained in s, for the universe size n.
//
// Complexity: O(n).
func Members(s Set, n int) []int {
	out := make([]int, 0, Popcount(s))
	for i := 0; i < n; i++ {
		if Contains(s, i) {
			out = append(out, i)
		}
	}
	return out
}
