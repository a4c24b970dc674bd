package cluequiz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type idSet map[string]struct{}

func (s idSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// Session is the aggregate root of one game: roster, category usage, the
// round in play and the termination state. It is not safe for concurrent
// use; callers serialize access.
type Session struct {
	teams              []Team
	currentItem        *Item
	selectedCategory   Category
	answerRevealed     bool
	selectedCategories []Category
	selectionCounts    map[Category]int
	categoryUsed       map[Category]idSet
	used               idSet
	winningPoints      int
	hideHints          bool
	active             bool
	ended              bool
	endReason          EndReason

	newID func() string
}

// NewSession returns an empty session in the setup phase.
func NewSession() *Session {
	s := &Session{newID: uuid.NewString}
	s.clear()
	return s
}

func (s *Session) clear() {
	s.teams = nil
	s.currentItem = nil
	s.selectedCategory = ""
	s.answerRevealed = false
	s.selectedCategories = nil
	s.selectionCounts = make(map[Category]int)
	s.categoryUsed = make(map[Category]idSet)
	s.used = make(idSet)
	s.winningPoints = DefaultWinningPoints
	s.hideHints = false
	s.active = false
	s.ended = false
	s.endReason = EndReasonNone
}

type Option func(*Session)

// WithHideHints is passed through to the presentation layer untouched.
func WithHideHints(hide bool) Option {
	return func(s *Session) { s.hideHints = hide }
}

// Initialize replaces the roster and every counter and starts a new game.
// Input teams get unique ids, zero scores and only the first one active,
// whatever flags they arrived with.
func (s *Session) Initialize(teams []Team, winningPoints int, categories []Category, opts ...Option) error {
	if len(teams) < MinTeams || len(teams) > MaxTeams {
		return fmt.Errorf("%w: need %d-%d teams, got %d", ErrInvalidSetup, MinTeams, MaxTeams, len(teams))
	}
	if winningPoints <= 0 {
		return fmt.Errorf("%w: winning points must be positive", ErrInvalidSetup)
	}
	if len(categories) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidSetup)
	}
	seenCat := make(map[Category]bool, len(categories))
	for _, c := range categories {
		if c == "" || seenCat[c] {
			return fmt.Errorf("%w: duplicate or empty category %q", ErrInvalidSetup, c)
		}
		seenCat[c] = true
	}

	roster := make([]Team, 0, len(teams))
	seenID := make(map[string]bool, len(teams))
	for i, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("%w: team %d has no name", ErrInvalidSetup, i+1)
		}
		id := strings.TrimSpace(t.ID)
		if id == "" || seenID[id] {
			id = s.newID()
		}
		seenID[id] = true
		roster = append(roster, Team{ID: id, Name: name, Score: 0, IsActive: i == 0})
	}

	s.clear()
	s.teams = roster
	s.winningPoints = winningPoints
	s.selectedCategories = append([]Category(nil), categories...)
	s.active = true
	for _, o := range opts {
		o(s)
	}
	return nil
}

// Reset wipes the session back to its empty, inactive state.
func (s *Session) Reset() {
	s.clear()
}

func (s *Session) Phase() Phase {
	switch {
	case s.ended:
		return PhaseEnded
	case !s.active:
		return PhaseSetup
	case s.currentItem == nil:
		return PhaseIdle
	case s.answerRevealed:
		return PhaseAnswerRevealed
	default:
		return PhaseAwaitingGuess
	}
}

func (s *Session) IsGameActive() bool { return s.active }
func (s *Session) GameEnded() bool    { return s.ended }
func (s *Session) EndReason() EndReason {
	return s.endReason
}
func (s *Session) WinningPoints() int { return s.winningPoints }

// Teams returns a copy of the roster in seating order.
func (s *Session) Teams() []Team {
	return append([]Team(nil), s.teams...)
}

// CurrentItem returns a copy of the item in play.
func (s *Session) CurrentItem() (Item, bool) {
	if s.currentItem == nil {
		return Item{}, false
	}
	return copyItem(*s.currentItem), true
}

func (s *Session) SelectedCategory() Category { return s.selectedCategory }

func (s *Session) SelectedCategories() []Category {
	return append([]Category(nil), s.selectedCategories...)
}

// mutable reports why the session cannot take a game-play transition, if any.
func (s *Session) mutable() error {
	if s.ended {
		return ErrGameOver
	}
	if !s.active {
		return ErrGameNotActive
	}
	return nil
}

func (s *Session) teamIndex(id string) int {
	for i, t := range s.teams {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func copyItem(it Item) Item {
	it.Details = append([]Clue(nil), it.Details...)
	return it
}
