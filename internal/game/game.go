// Package game serializes access to one Session, persists it after every
// transition and fetches round items from a content provider.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/playperu/cluequiz/internal/cluequiz"
	"github.com/playperu/cluequiz/internal/content"
	"github.com/playperu/cluequiz/internal/storage"
)

const DefaultFetchTimeout = 10 * time.Second

var (
	ErrCategoryDisabled  = errors.New("category is not part of this game")
	ErrCategoryExhausted = errors.New("category has no picks left")
	ErrFetchInProgress   = errors.New("an item is already being fetched")
	ErrStaleFetch        = errors.New("game changed while the item was being fetched")
	ErrProvider          = errors.New("content provider failed")
)

type Options struct {
	Logger          *slog.Logger
	Notifier        Notifier
	FetchTimeout    time.Duration
	MaxDrawAttempts int
}

// Setup is the input of Initialize.
type Setup struct {
	Teams         []cluequiz.Team     `json:"teams"`
	WinningPoints int                 `json:"winningPoints"`
	Categories    []cluequiz.Category `json:"categories"`
	HideHints     bool                `json:"hideHints"`
}

// Controller owns one session. Transitions are applied one at a time; the
// only step done outside the lock is the content fetch of SelectCategory.
type Controller struct {
	key          string
	store        storage.SnapshotStore
	provider     content.Provider
	logger       *slog.Logger
	notifier     Notifier
	fetchTimeout time.Duration
	maxAttempts  int

	mu      sync.Mutex
	session *cluequiz.Session
	gen     uint64
	// fetch is the SelectCategory call in flight for the current gen, if any.
	fetch *pendingFetch

	// notifyMu is taken before mu is released so events reach the notifier
	// in the order their transitions were applied.
	notifyMu sync.Mutex
}

type pendingFetch struct {
	gen    uint64
	cancel context.CancelFunc
}

func New(key string, store storage.SnapshotStore, provider content.Provider, opts Options) *Controller {
	c := &Controller{
		key:          key,
		store:        store,
		provider:     provider,
		logger:       opts.Logger,
		notifier:     opts.Notifier,
		fetchTimeout: opts.FetchTimeout,
		maxAttempts:  opts.MaxDrawAttempts,
		session:      cluequiz.NewSession(),
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	c.logger = c.logger.With("table", key)
	if c.notifier == nil {
		c.notifier = discard{}
	}
	if c.fetchTimeout <= 0 {
		c.fetchTimeout = DefaultFetchTimeout
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = content.DefaultMaxAttempts
	}
	return c
}

func (c *Controller) Key() string { return c.key }

// Open restores the persisted session. A missing snapshot leaves the
// session empty; a corrupt one is logged, cleared and ignored.
func (c *Controller) Open(ctx context.Context) error {
	data, err := c.store.Load(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	s, err := cluequiz.FromPersistable(data)
	if err != nil {
		c.logger.Warn("discarding unreadable snapshot", "error", err)
		if err := c.store.Clear(ctx, c.key); err != nil {
			c.logger.Error("clearing snapshot", "error", err)
		}
		return nil
	}

	c.mu.Lock()
	c.session = s
	c.bumpGen()
	c.mu.Unlock()
	c.logger.Info("restored session", "phase", s.Phase(), "teams", len(s.Teams()))
	return nil
}

// State returns a copy of the current session.
func (c *Controller) State() cluequiz.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.State()
}

func (c *Controller) Initialize(ctx context.Context, setup Setup) error {
	if h, ok := c.provider.(interface{ Has(cluequiz.Category) bool }); ok {
		for _, cat := range setup.Categories {
			if !h.Has(cat) {
				return fmt.Errorf("%w: no content for category %q", cluequiz.ErrInvalidSetup, cat)
			}
		}
	}
	return c.apply(ctx, Event{Type: EventGameStarted}, func(s *cluequiz.Session, _ *Event) error {
		if err := s.Initialize(setup.Teams, setup.WinningPoints, setup.Categories, cluequiz.WithHideHints(setup.HideHints)); err != nil {
			return err
		}
		c.bumpGen()
		return nil
	})
}

// Reset wipes the session and its snapshot. Any fetch still in flight is
// discarded when it returns.
func (c *Controller) Reset(ctx context.Context) error {
	return c.apply(ctx, Event{Type: EventGameReset}, func(s *cluequiz.Session, _ *Event) error {
		s.Reset()
		c.bumpGen()
		return nil
	})
}

func (c *Controller) EndGame(ctx context.Context) error {
	return c.apply(ctx, Event{Type: EventGameEnded}, func(s *cluequiz.Session, _ *Event) error {
		if err := s.EndGame(cluequiz.EndReasonManual); err != nil {
			return err
		}
		c.bumpGen()
		return nil
	})
}

// SelectCategory picks cat for the active team and puts a fresh item in
// play. Nothing changes unless the fetch succeeds and the game is still the
// one the fetch was started for.
func (c *Controller) SelectCategory(ctx context.Context, cat cluequiz.Category) (cluequiz.Item, error) {
	c.mu.Lock()
	if err := c.canSelect(cat); err != nil {
		c.mu.Unlock()
		return cluequiz.Item{}, err
	}
	if c.fetch != nil && c.fetch.gen == c.gen {
		c.mu.Unlock()
		return cluequiz.Item{}, ErrFetchInProgress
	}
	gen := c.gen
	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()
	c.fetch = &pendingFetch{gen: gen, cancel: cancel}
	served := make(map[string]bool)
	for _, id := range c.session.UsedItems(cat) {
		served[id] = true
	}
	c.mu.Unlock()

	res, fetchErr := content.Draw(fctx, c.provider, cat, func(id string) bool { return served[id] }, c.maxAttempts)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Info("dropping stale item", "category", cat)
		return cluequiz.Item{}, ErrStaleFetch
	}
	if fetchErr != nil {
		c.fetch = nil
		c.mu.Unlock()
		c.logger.Error("fetching item", "category", cat, "error", fetchErr)
		return cluequiz.Item{}, fmt.Errorf("%w: %w", ErrProvider, fetchErr)
	}
	c.fetch = nil
	if err := c.canSelect(cat); err != nil {
		c.mu.Unlock()
		return cluequiz.Item{}, err
	}

	item := res.Item
	item.Category = cat
	if item.ID == "" || strings.TrimSpace(item.Name) == "" || len(item.Details) == 0 {
		c.mu.Unlock()
		return cluequiz.Item{}, fmt.Errorf("%w: %w", ErrProvider, cluequiz.ErrInvalidItem)
	}
	if res.Cleared {
		c.session.ClearCategoryUsedItems(cat)
		c.logger.Info("category pool cycled", "category", cat, "attempts", res.Attempts)
	}
	if err := c.session.SetCurrentItem(item); err != nil {
		c.mu.Unlock()
		return cluequiz.Item{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	if err := c.session.SetCategory(cat); err != nil {
		c.mu.Unlock()
		return cluequiz.Item{}, err
	}

	c.persist(ctx)
	ev := Event{Type: EventCategorySelected, Category: cat, State: c.session.State()}
	if t, ok := c.session.ActiveTeam(); ok {
		ev.TeamID = t.ID
	}
	inPlay, _ := c.session.CurrentItem()
	c.publish(ev)
	return inPlay, nil
}

func (c *Controller) canSelect(cat cluequiz.Category) error {
	s := c.session
	switch {
	case s.GameEnded():
		return cluequiz.ErrGameOver
	case !s.IsGameActive():
		return cluequiz.ErrGameNotActive
	case s.Phase() != cluequiz.PhaseIdle:
		return cluequiz.ErrRoundActive
	case !s.Enabled(cat):
		return ErrCategoryDisabled
	case s.Exhausted(cat):
		return ErrCategoryExhausted
	}
	return nil
}

func (c *Controller) RevealDetail(ctx context.Context, i int) error {
	return c.apply(ctx, Event{Type: EventClueRevealed, Clue: &i}, func(s *cluequiz.Session, _ *Event) error {
		return s.RevealDetail(i)
	})
}

func (c *Controller) RevealAnswer(ctx context.Context) error {
	return c.apply(ctx, Event{Type: EventAnswerRevealed}, func(s *cluequiz.Session, _ *Event) error {
		return s.RevealAnswer()
	})
}

func (c *Controller) SubmitGuess(ctx context.Context, teamID, guess string) (bool, error) {
	var correct bool
	err := c.apply(ctx, Event{Type: EventGuessSubmitted, TeamID: teamID}, func(s *cluequiz.Session, ev *Event) error {
		var err error
		correct, err = s.SubmitGuess(teamID, guess)
		ev.Correct = correct
		return err
	})
	return correct, err
}

// CreditTeam closes the round for teamID, or for nobody when teamID is
// empty. It returns the points awarded and the answer of the closed round.
func (c *Controller) CreditTeam(ctx context.Context, teamID string) (int, string, error) {
	var points int
	var answer string
	err := c.apply(ctx, Event{Type: EventRoundCredited, TeamID: teamID}, func(s *cluequiz.Session, ev *Event) error {
		if it, ok := s.CurrentItem(); ok {
			answer = it.Name
		}
		var err error
		points, err = s.CreditTeam(teamID)
		ev.Points = points
		ev.Answer = answer
		return err
	})
	return points, answer, err
}

func (c *Controller) BackToCategories(ctx context.Context) error {
	return c.apply(ctx, Event{Type: EventRoundAbandoned}, func(s *cluequiz.Session, ev *Event) error {
		if it, ok := s.CurrentItem(); ok {
			ev.Answer = it.Name
		}
		return s.BackToCategories()
	})
}

func (c *Controller) AddTeam(ctx context.Context, name string) (cluequiz.Team, error) {
	var team cluequiz.Team
	err := c.apply(ctx, Event{Type: EventTeamAdded}, func(s *cluequiz.Session, ev *Event) error {
		var err error
		team, err = s.AddTeam(name)
		ev.TeamID = team.ID
		return err
	})
	return team, err
}

func (c *Controller) RemoveTeam(ctx context.Context, id string) error {
	return c.apply(ctx, Event{Type: EventTeamRemoved, TeamID: id}, func(s *cluequiz.Session, _ *Event) error {
		return s.RemoveTeam(id)
	})
}

func (c *Controller) SetActiveTeam(ctx context.Context, id string) error {
	return c.apply(ctx, Event{Type: EventTurnChanged, TeamID: id}, func(s *cluequiz.Session, _ *Event) error {
		return s.SetActiveTeam(id)
	})
}

func (c *Controller) AdjustScore(ctx context.Context, id string, delta int) error {
	return c.apply(ctx, Event{Type: EventScoreAdjusted, TeamID: id, Points: delta}, func(s *cluequiz.Session, _ *Event) error {
		return s.AdjustScore(id, delta)
	})
}

func (c *Controller) ClearCategoryUsedItems(ctx context.Context, cat cluequiz.Category) error {
	return c.apply(ctx, Event{Type: EventUsedItemsCleared, Category: cat}, func(s *cluequiz.Session, _ *Event) error {
		if s.GameEnded() {
			return cluequiz.ErrGameOver
		}
		if !s.IsGameActive() {
			return cluequiz.ErrGameNotActive
		}
		s.ClearCategoryUsedItems(cat)
		return nil
	})
}

// apply runs fn under the lock, persists the result and notifies
// subscribers. A game that ends as a side effect of fn gets its own
// game_ended event.
func (c *Controller) apply(ctx context.Context, ev Event, fn func(s *cluequiz.Session, ev *Event) error) error {
	c.mu.Lock()
	wasEnded := c.session.GameEnded()
	if err := fn(c.session, &ev); err != nil {
		c.mu.Unlock()
		return err
	}
	c.persist(ctx)
	ev.State = c.session.State()

	events := []Event{ev}
	if !wasEnded && c.session.GameEnded() && ev.Type != EventGameEnded {
		c.bumpGen()
		events = append(events, Event{Type: EventGameEnded, State: ev.State})
		c.logger.Info("game over", "reason", c.session.EndReason())
	}
	c.publish(events...)
	return nil
}

// publish releases mu and delivers events in transition order. Called with
// mu held. Notifiers must not call back into the Controller.
func (c *Controller) publish(events ...Event) {
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()
	for _, e := range events {
		c.notifier.Notify(c.key, e)
	}
}

// bumpGen starts a new game generation and cancels the fetch of the old
// one. Its result is discarded as stale when it returns.
func (c *Controller) bumpGen() {
	c.gen++
	if c.fetch != nil {
		c.fetch.cancel()
		c.fetch = nil
	}
}

// persist saves the session while a game is running and clears the
// snapshot otherwise. Storage failures are logged; the transition stands.
func (c *Controller) persist(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if !c.session.IsGameActive() {
		if err := c.store.Clear(ctx, c.key); err != nil {
			c.logger.Error("clearing snapshot", "error", err)
		}
		return
	}
	data, err := cluequiz.ToPersistable(c.session)
	if err != nil {
		c.logger.Error("encoding snapshot", "error", err)
		return
	}
	if err := c.store.Save(ctx, c.key, data); err != nil {
		c.logger.Error("saving snapshot", "error", err)
	}
}
