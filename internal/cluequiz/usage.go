package cluequiz

import (
	"maps"
	"slices"
)

// SetCategory records a pick of c. The counter goes up by one on every
// call, reselection included; enforcing the cap is the caller's job.
func (s *Session) SetCategory(c Category) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.selectedCategory = c
	s.selectionCounts[c]++
	return nil
}

// SelectionCount is how many times c was picked this game.
func (s *Session) SelectionCount(c Category) int {
	return s.selectionCounts[c]
}

// SelectionCounts returns a copy of every category counter.
func (s *Session) SelectionCounts() map[Category]int {
	return maps.Clone(s.selectionCounts)
}

// Remaining is how many more picks c allows.
func (s *Session) Remaining(c Category) int {
	return max(0, SelectionCap-s.selectionCounts[c])
}

// Exhausted reports whether c reached the selection cap.
func (s *Session) Exhausted(c Category) bool {
	return s.selectionCounts[c] >= SelectionCap
}

// Enabled reports whether c is one of the categories chosen at setup.
func (s *Session) Enabled(c Category) bool {
	return slices.Contains(s.selectedCategories, c)
}

// CategoriesExhausted is true once every enabled category hit the cap.
func (s *Session) CategoriesExhausted() bool {
	if len(s.selectedCategories) == 0 {
		return false
	}
	for _, c := range s.selectedCategories {
		if !s.Exhausted(c) {
			return false
		}
	}
	return true
}

// HasServed reports whether id was already drawn for c this game.
func (s *Session) HasServed(c Category, id string) bool {
	return s.categoryUsed[c].has(id)
}

// UsedItems returns the ids served for c, sorted.
func (s *Session) UsedItems(c Category) []string {
	return slices.Sorted(maps.Keys(s.categoryUsed[c]))
}

// ClearCategoryUsedItems forgets which items were served for c.
func (s *Session) ClearCategoryUsedItems(c Category) {
	s.categoryUsed[c] = make(idSet)
}

// ClearUsedItems forgets the global served set.
func (s *Session) ClearUsedItems() {
	s.used = make(idSet)
}

func (s *Session) recordServed(it Item) {
	set, ok := s.categoryUsed[it.Category]
	if !ok {
		set = make(idSet)
		s.categoryUsed[it.Category] = set
	}
	set[it.ID] = struct{}{}
	s.used[it.ID] = struct{}{}
}
