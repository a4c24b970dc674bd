package server

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/playperu/cluequiz/internal/cluequiz"
	"github.com/playperu/cluequiz/internal/content"
	"github.com/playperu/cluequiz/internal/game"
	"github.com/playperu/cluequiz/internal/storage"
)

func TestTablesGet(t *testing.T) {
	tables := NewTables(storage.NewMemoryStore(), content.NewRegistry(), game.Options{})
	ctx := context.Background()

	for _, slug := range []string{"", "Kitchen", "-den", "a/b", "x_y"} {
		if _, err := tables.Get(ctx, slug); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("slug %q: expected ErrInvalidTable, got %v", slug, err)
		}
	}

	for _, slug := range []string{"den", "porch", "attic"} {
		ctl, err := tables.Get(ctx, slug)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if ctl.Key() != "table:"+slug {
			t.Errorf("key = %q", ctl.Key())
		}
	}
	if tables.Len() != 0 {
		t.Errorf("lookups of empty tables kept %d controllers", tables.Len())
	}

	a, err := tables.Open(ctx, "den")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b, _ := tables.Get(ctx, "den")
	if a != b {
		t.Error("expected the opened controller to be reused")
	}
	if tables.Len() != 1 {
		t.Errorf("expected 1 table, got %d", tables.Len())
	}
}

func TestTablesKeepRestoredGames(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	reg := content.NewRegistry()
	reg.Register(cluequiz.CategoryCars, constant(fixedItem()))

	first := NewTables(store, reg, game.Options{})
	ctl, _ := first.Open(ctx, "den")
	err := ctl.Initialize(ctx, game.Setup{
		Teams:         []cluequiz.Team{{Name: "Red"}, {Name: "Blue"}},
		WinningPoints: 100,
		Categories:    []cluequiz.Category{cluequiz.CategoryCars},
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}

	second := NewTables(store, reg, game.Options{})
	if _, err := second.Get(ctx, "den"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if second.Len() != 1 {
		t.Errorf("restored game was not kept")
	}
}

func TestBroker(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("table:den")
	other := b.Subscribe("table:porch")
	if b.Subscribers("table:den") != 1 {
		t.Fatalf("expected one subscriber")
	}

	b.Notify("table:den", game.Event{
		Type:   game.EventTurnChanged,
		TeamID: "t2",
		State:  cluequiz.State{Phase: cluequiz.PhaseIdle, IsGameActive: true},
	})

	var msg EventMessage
	if err := json.Unmarshal(<-ch, &msg); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if msg.Type != game.EventTurnChanged || msg.TeamID != "t2" || msg.State.Phase != cluequiz.PhaseIdle {
		t.Errorf("unexpected message: %+v", msg)
	}
	select {
	case <-other:
		t.Error("event leaked to another table")
	default:
	}

	b.Unsubscribe("table:den", ch)
	if b.Subscribers("table:den") != 0 {
		t.Error("expected no subscribers after unsubscribe")
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("k")
	for range cap(ch) + 5 {
		b.Notify("k", game.Event{Type: game.EventScoreAdjusted})
	}
	if len(ch) != cap(ch) {
		t.Errorf("expected a full buffer, got %d of %d", len(ch), cap(ch))
	}
}
