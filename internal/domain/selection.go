// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

// Selection holds positional selection flags over a displayed list. It is
// sized to the list it was created for; a new displayed list needs a new
// Selection because an index means a different package afterwards.
type Selection struct {
	flags []bool
	count int
}

// NewSelection returns an empty selection for a list of size n.
func NewSelection(n int) *Selection {
	if n < 0 {
		n = 0
	}

	return &Selection{flags: make([]bool, n)}
}

// Len returns the size of the list the selection covers.
func (s *Selection) Len() int {
	return len(s.flags)
}

// Count returns the number of selected positions.
func (s *Selection) Count() int {
	return s.count
}

// Selected reports whether index is selected.
func (s *Selection) Selected(index int) bool {
	if index < 0 || index >= len(s.flags) {
		return false
	}

	return s.flags[index]
}

// Toggle flips the flag at index. Out of range indices are ignored.
func (s *Selection) Toggle(index int) bool {
	if index < 0 || index >= len(s.flags) {
		return false
	}

	s.set(index, !s.flags[index])

	return true
}

// SelectMatching marks every index for which pred is true. Already
// selected positions stay selected.
func (s *Selection) SelectMatching(pred func(index int) bool) int {
	added := 0

	for i := range s.flags {
		if !s.flags[i] && pred(i) {
			s.set(i, true)
			added++
		}
	}

	return added
}

// Clear deselects everything.
func (s *Selection) Clear() {
	clear(s.flags)
	s.count = 0
}

// Indices returns the selected positions in ascending order.
func (s *Selection) Indices() []int {
	indices := make([]int, 0, s.count)

	for i, on := range s.flags {
		if on {
			indices = append(indices, i)
		}
	}

	return indices
}

func (s *Selection) set(index int, on bool) {
	if s.flags[index] == on {
		return
	}

	s.flags[index] = on
	if on {
		s.count++
	} else {
		s.count--
	}
}
