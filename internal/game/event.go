package game

import "github.com/playperu/cluequiz/internal/cluequiz"

type EventType string

const (
	EventGameStarted      EventType = "game_started"
	EventGameReset        EventType = "game_reset"
	EventGameEnded        EventType = "game_ended"
	EventCategorySelected EventType = "category_selected"
	EventClueRevealed     EventType = "clue_revealed"
	EventAnswerRevealed   EventType = "answer_revealed"
	EventGuessSubmitted   EventType = "guess_submitted"
	EventRoundCredited    EventType = "round_credited"
	EventRoundAbandoned   EventType = "round_abandoned"
	EventTeamAdded        EventType = "team_added"
	EventTeamRemoved      EventType = "team_removed"
	EventTurnChanged      EventType = "turn_changed"
	EventScoreAdjusted    EventType = "score_adjusted"
	EventUsedItemsCleared EventType = "used_items_cleared"
)

// Event describes one applied transition. State is the session as it was
// right after the transition.
type Event struct {
	Type     EventType         `json:"type"`
	TeamID   string            `json:"teamId,omitempty"`
	Category cluequiz.Category `json:"category,omitempty"`
	Clue     *int              `json:"clue,omitempty"`
	Points   int               `json:"points,omitempty"`
	Correct  bool              `json:"correct,omitempty"`
	// Answer names the item of a round that just closed.
	Answer   string            `json:"answer,omitempty"`
	State    cluequiz.State    `json:"-"`
}

// Notifier receives events after the controller lock is released.
type Notifier interface {
	Notify(key string, ev Event)
}

type NotifierFunc func(key string, ev Event)

func (f NotifierFunc) Notify(key string, ev Event) { f(key, ev) }

type discard struct{}

func (discard) Notify(string, Event) {}
