package cluequiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

const snapshotVersion = 1

var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// snapshotDoc is the JSON shape of a persisted session. Sets are stored as
// sorted arrays.
type snapshotDoc struct {
	Version                 int                   `json:"version"`
	Teams                   []Team                `json:"teams"`
	CurrentItem             *Item                 `json:"currentItem"`
	SelectedCategory        Category              `json:"selectedCategory"`
	AnswerRevealed          bool                  `json:"answerRevealed"`
	SelectedCategories      []Category            `json:"selectedCategories"`
	CategorySelectionCounts map[Category]int      `json:"categorySelectionCounts"`
	CategoryUsedItems       map[Category][]string `json:"categoryUsedItems"`
	UsedItems               []string              `json:"usedItems"`
	WinningPoints           int                   `json:"winningPoints"`
	HideHints               bool                  `json:"hideHints"`
	IsGameActive            bool                  `json:"isGameActive"`
	GameEnded               bool                  `json:"gameEnded"`
	EndReason               EndReason             `json:"endReason,omitempty"`
}

// ToPersistable encodes s for a store that only understands JSON.
func ToPersistable(s *Session) ([]byte, error) {
	doc := snapshotDoc{
		Version:                 snapshotVersion,
		Teams:                   s.Teams(),
		SelectedCategory:        s.selectedCategory,
		AnswerRevealed:          s.answerRevealed,
		SelectedCategories:      s.SelectedCategories(),
		CategorySelectionCounts: s.SelectionCounts(),
		CategoryUsedItems:       make(map[Category][]string, len(s.categoryUsed)),
		UsedItems:               slices.Sorted(maps.Keys(s.used)),
		WinningPoints:           s.winningPoints,
		HideHints:               s.hideHints,
		IsGameActive:            s.active,
		GameEnded:               s.ended,
		EndReason:               s.endReason,
	}
	if it, ok := s.CurrentItem(); ok {
		doc.CurrentItem = &it
	}
	for c := range s.categoryUsed {
		doc.CategoryUsedItems[c] = s.UsedItems(c)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// FromPersistable rebuilds a session from ToPersistable output. Anything
// that does not decode into a consistent session is ErrCorruptSnapshot.
func FromPersistable(data []byte) (*Session, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	s := NewSession()
	s.teams = doc.Teams
	if doc.CurrentItem != nil {
		it := copyItem(*doc.CurrentItem)
		s.currentItem = &it
	}
	s.selectedCategory = doc.SelectedCategory
	s.answerRevealed = doc.AnswerRevealed && doc.CurrentItem != nil
	s.selectedCategories = doc.SelectedCategories
	for c, n := range doc.CategorySelectionCounts {
		s.selectionCounts[c] = n
	}
	for c, ids := range doc.CategoryUsedItems {
		set := make(idSet, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		s.categoryUsed[c] = set
	}
	for _, id := range doc.UsedItems {
		s.used[id] = struct{}{}
	}
	s.winningPoints = doc.WinningPoints
	s.hideHints = doc.HideHints
	s.active = doc.IsGameActive
	s.ended = doc.GameEnded
	s.endReason = doc.EndReason
	return s, nil
}

func (d snapshotDoc) validate() error {
	if d.Version != snapshotVersion {
		return fmt.Errorf("unsupported version %d", d.Version)
	}
	if d.WinningPoints <= 0 {
		return errors.New("winning points must be positive")
	}
	if len(d.Teams) > MaxTeams {
		return fmt.Errorf("%d teams exceeds cap", len(d.Teams))
	}
	if d.IsGameActive && d.GameEnded {
		return errors.New("game both active and ended")
	}

	ids := make(map[string]bool, len(d.Teams))
	active := 0
	for _, t := range d.Teams {
		if t.ID == "" || ids[t.ID] {
			return fmt.Errorf("missing or duplicate team id %q", t.ID)
		}
		ids[t.ID] = true
		if t.Score < 0 {
			return fmt.Errorf("team %q has negative score", t.ID)
		}
		if t.IsActive {
			active++
		}
	}
	if active > 1 || (d.IsGameActive && len(d.Teams) > 0 && active != 1) {
		return fmt.Errorf("%d active teams", active)
	}

	for c, n := range d.CategorySelectionCounts {
		if n < 0 {
			return fmt.Errorf("negative count for %q", c)
		}
	}
	if it := d.CurrentItem; it != nil && (it.ID == "" || len(it.Details) == 0) {
		return errors.New("current item is incomplete")
	}
	return nil
}
