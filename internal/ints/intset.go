// Package ints provides a growable set of small non-negative integers.
package ints

import "sort"

const wordShift = 6
const wordSize = 1 << wordShift

// Set is a bit set of non-negative integers.
// The zero value is not usable, call NewSet.
type Set struct {
	words []uint64
}

func NewSet(items ...int) *Set {
	s := &Set{}
	s.Add(items...)
	return s
}

func (s *Set) grow(item int) {
	need := (item >> wordShift) + 1
	for len(s.words) < need {
		s.words = append(s.words, 0)
	}
}

func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		s.grow(item)
		s.words[item>>wordShift] |= 1 << (uint(item) & (wordSize - 1))
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if item>>wordShift < len(s.words) {
			s.words[item>>wordShift] &^= 1 << (uint(item) & (wordSize - 1))
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 || item>>wordShift >= len(s.words) {
		return false
	}
	return s.words[item>>wordShift]&(1<<(uint(item)&(wordSize-1))) != 0
}

func (s *Set) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s *Set) Len() int {
	cnt := 0
	for _, w := range s.words {
		for ; w != 0; w &= w - 1 {
			cnt++
		}
	}
	return cnt
}

// Union adds all items of t to s and reports whether s changed.
func (s *Set) Union(t *Set) bool {
	changed := false
	for i, w := range t.words {
		if w == 0 {
			continue
		}
		for len(s.words) <= i {
			s.words = append(s.words, 0)
		}
		if s.words[i]|w != s.words[i] {
			s.words[i] |= w
			changed = true
		}
	}
	return changed
}

// Intersects reports whether s and t have at least one common item.
func (s *Set) Intersects(t *Set) bool {
	n := len(s.words)
	if len(t.words) < n {
		n = len(t.words)
	}
	for i := 0; i < n; i++ {
		if s.words[i]&t.words[i] != 0 {
			return true
		}
	}
	return false
}

func (s *Set) Copy() *Set {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return &Set{words}
}

func (s *Set) IsEqual(t *Set) bool {
	n := len(s.words)
	if len(t.words) > n {
		n = len(t.words)
	}
	for i := 0; i < n; i++ {
		var sw, tw uint64
		if i < len(s.words) {
			sw = s.words[i]
		}
		if i < len(t.words) {
			tw = t.words[i]
		}
		if sw != tw {
			return false
		}
	}
	return true
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, w := range s.words {
		base := i << wordShift
		for j := 0; j < wordSize; j++ {
			if w&(1<<uint(j)) != 0 {
				result = append(result, base+j)
			}
		}
	}
	sort.Ints(result)
	return result
}
