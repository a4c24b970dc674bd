package cluequiz_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/playperu/cluequiz/internal/cluequiz"
)

func newItem(id string, c cluequiz.Category, clues int) cluequiz.Item {
	it := cluequiz.Item{ID: id, Category: c, Name: "Answer " + id}
	for i := range clues {
		it.Details = append(it.Details, cluequiz.Clue{
			Label: fmt.Sprintf("clue %d", i),
			Value: fmt.Sprintf("value %d", i),
		})
	}
	return it
}

func startGame(t *testing.T, points int, categories ...cluequiz.Category) *cluequiz.Session {
	t.Helper()
	if len(categories) == 0 {
		categories = []cluequiz.Category{cluequiz.CategoryMovies, cluequiz.CategoryAnime}
	}
	s := cluequiz.NewSession()
	teams := []cluequiz.Team{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"}}
	if err := s.Initialize(teams, points, categories); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return s
}

func startRound(t *testing.T, s *cluequiz.Session, it cluequiz.Item) {
	t.Helper()
	if err := s.SetCategory(it.Category); err != nil {
		t.Fatalf("set category: %v", err)
	}
	if err := s.SetCurrentItem(it); err != nil {
		t.Fatalf("set current item: %v", err)
	}
}

func activeID(t *testing.T, s *cluequiz.Session) string {
	t.Helper()
	n := 0
	id := ""
	for _, tm := range s.Teams() {
		if tm.IsActive {
			n++
			id = tm.ID
		}
	}
	if len(s.Teams()) > 0 && n != 1 {
		t.Fatalf("expected exactly one active team, got %d", n)
	}
	return id
}

func score(s *cluequiz.Session, id string) int {
	for _, tm := range s.Teams() {
		if tm.ID == id {
			return tm.Score
		}
	}
	return -1
}

func TestExampleScenario(t *testing.T) {
	s := cluequiz.NewSession()
	err := s.Initialize([]cluequiz.Team{
		{ID: "1", Name: "A", IsActive: true},
		{ID: "2", Name: "B"},
	}, 50, []cluequiz.Category{"movies", "anime"})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}

	startRound(t, s, newItem("m1", "movies", 4))
	if got := s.SelectionCount("movies"); got != 1 {
		t.Fatalf("count(movies) = %d, want 1", got)
	}
	s.RevealDetail(0)
	s.RevealDetail(1)

	pts, err := s.CreditTeam("1")
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if pts != 20 || score(s, "1") != 20 {
		t.Errorf("team A: points %d score %d, want 20", pts, score(s, "1"))
	}
	if got := activeID(t, s); got != "2" {
		t.Errorf("active = %q, want 2", got)
	}
	if s.Phase() != cluequiz.PhaseIdle {
		t.Errorf("phase = %q, want idle", s.Phase())
	}

	startRound(t, s, newItem("a1", "anime", 4))
	if _, err := s.CreditTeam("2"); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if got := score(s, "2"); got != 40 {
		t.Errorf("team B score = %d, want 40", got)
	}
	if s.CheckWinCondition() {
		t.Error("expected no winner yet")
	}
	if s.GameEnded() {
		t.Error("game should still be running")
	}
}

func TestCreditTeamScoring(t *testing.T) {
	tests := []struct {
		name     string
		reveal   []int
		team     string
		wantGain int
	}{
		{name: "two of six revealed", reveal: []int{0, 3}, team: "1", wantGain: 40},
		{name: "none revealed", team: "2", wantGain: 60},
		{name: "all revealed floor", reveal: []int{0, 1, 2, 3, 4, 5}, team: "1", wantGain: 10},
		{name: "nobody answered", reveal: []int{1}, team: "", wantGain: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startGame(t, 1000)
			startRound(t, s, newItem("x", cluequiz.CategoryMovies, 6))
			for _, i := range tt.reveal {
				if err := s.RevealDetail(i); err != nil {
					t.Fatalf("reveal %d: %v", i, err)
				}
			}

			before := s.Teams()
			got, err := s.CreditTeam(tt.team)
			if err != nil {
				t.Fatalf("credit: %v", err)
			}
			if got != tt.wantGain {
				t.Errorf("points = %d, want %d", got, tt.wantGain)
			}
			for i, tm := range s.Teams() {
				want := before[i].Score
				if tm.ID == tt.team {
					want += tt.wantGain
				}
				if tm.Score != want {
					t.Errorf("team %s score = %d, want %d", tm.ID, tm.Score, want)
				}
			}
		})
	}
}

func TestTurnRotation(t *testing.T) {
	s := startGame(t, 10000)
	order := []string{"2", "3", "1", "2"}
	credits := []string{"3", "", "1", "2"}

	for i, want := range order {
		startRound(t, s, newItem(fmt.Sprint(i), cluequiz.CategoryMovies, 2))
		if _, err := s.CreditTeam(credits[i]); err != nil {
			t.Fatalf("credit %d: %v", i, err)
		}
		if got := activeID(t, s); got != want {
			t.Fatalf("after credit %d active = %q, want %q", i+1, got, want)
		}
	}
}

func TestRevealDetail(t *testing.T) {
	s := startGame(t, 100)

	if err := s.RevealDetail(0); !errors.Is(err, cluequiz.ErrNoRound) {
		t.Fatalf("reveal without item: err = %v, want ErrNoRound", err)
	}

	startRound(t, s, newItem("x", cluequiz.CategoryMovies, 3))
	active := activeID(t, s)
	for range 2 {
		if err := s.RevealDetail(1); err != nil {
			t.Fatalf("reveal: %v", err)
		}
	}
	it, _ := s.CurrentItem()
	if !it.Details[1].Revealed || it.Unrevealed() != 2 {
		t.Errorf("expected only clue 1 revealed, got %+v", it.Details)
	}
	if activeID(t, s) != active {
		t.Error("revealing a clue changed the active team")
	}

	for _, i := range []int{-1, 3} {
		if err := s.RevealDetail(i); !errors.Is(err, cluequiz.ErrClueOutOfRange) {
			t.Errorf("reveal %d: err = %v, want ErrClueOutOfRange", i, err)
		}
	}
}

func TestRoundPhases(t *testing.T) {
	s := cluequiz.NewSession()
	if s.Phase() != cluequiz.PhaseSetup {
		t.Fatalf("new session phase = %q, want setup", s.Phase())
	}
	s = startGame(t, 100)
	if s.Phase() != cluequiz.PhaseIdle {
		t.Fatalf("phase = %q, want idle", s.Phase())
	}
	startRound(t, s, newItem("x", cluequiz.CategoryMovies, 2))
	if s.Phase() != cluequiz.PhaseAwaitingGuess {
		t.Fatalf("phase = %q, want awaiting_guess", s.Phase())
	}
	if err := s.RevealAnswer(); err != nil {
		t.Fatalf("reveal answer: %v", err)
	}
	if s.Phase() != cluequiz.PhaseAnswerRevealed {
		t.Fatalf("phase = %q, want answer_revealed", s.Phase())
	}
	for _, tm := range s.Teams() {
		if tm.Score != 0 {
			t.Fatalf("revealing the answer changed scores")
		}
	}
	if _, err := s.CreditTeam(""); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := s.CreditTeam(""); !errors.Is(err, cluequiz.ErrNoRound) {
		t.Fatalf("second credit: err = %v, want ErrNoRound", err)
	}
	if _, ok := s.CurrentItem(); ok || s.SelectedCategory() != "" {
		t.Fatal("round was not cleared")
	}
}

func TestCreditUnknownTeamLeavesRound(t *testing.T) {
	s := startGame(t, 100)
	startRound(t, s, newItem("x", cluequiz.CategoryMovies, 2))

	if _, err := s.CreditTeam("nope"); !errors.Is(err, cluequiz.ErrTeamNotFound) {
		t.Fatalf("err = %v, want ErrTeamNotFound", err)
	}
	if s.Phase() != cluequiz.PhaseAwaitingGuess || activeID(t, s) != "1" {
		t.Fatal("failed credit mutated the session")
	}
}

func TestBackToCategories(t *testing.T) {
	s := startGame(t, 100)
	startRound(t, s, newItem("x", cluequiz.CategoryMovies, 2))

	if err := s.BackToCategories(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Phase() != cluequiz.PhaseIdle || activeID(t, s) != "1" {
		t.Fatalf("phase %q active %q, want idle with team 1", s.Phase(), activeID(t, s))
	}
	if s.SelectionCount(cluequiz.CategoryMovies) != 1 {
		t.Error("abandoning a round must not refund the pick")
	}
}

func TestSubmitGuess(t *testing.T) {
	s := startGame(t, 100)
	it := newItem("x", cluequiz.CategoryMovies, 2)
	it.Name = "The Lord of the Rings!"
	startRound(t, s, it)

	tests := []struct {
		guess string
		want  bool
	}{
		{"lord of rings", false},
		{"", false},
		{"  the LORD   of the rings ", true},
	}
	for _, tt := range tests {
		got, err := s.SubmitGuess("2", tt.guess)
		if err != nil {
			t.Fatalf("guess %q: %v", tt.guess, err)
		}
		if got != tt.want {
			t.Errorf("guess %q = %v, want %v", tt.guess, got, tt.want)
		}
	}
	if !s.AnswerRevealed() {
		t.Error("correct guess should reveal the answer")
	}
	if score(s, "2") != 0 {
		t.Error("guessing must not score by itself")
	}
}

func TestWinByPoints(t *testing.T) {
	s := startGame(t, 200)
	if err := s.AdjustScore("2", 190); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	startRound(t, s, newItem("x", cluequiz.CategoryMovies, 4))
	for i := range 3 {
		s.RevealDetail(i)
	}

	if _, err := s.CreditTeam("2"); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if !s.CheckWinCondition() {
		t.Fatal("expected win condition")
	}
	if !s.GameEnded() || s.IsGameActive() {
		t.Fatal("expected game to end")
	}
	if s.EndReason() != cluequiz.EndReasonPoints {
		t.Errorf("reason = %q, want points", s.EndReason())
	}
	if w, _ := s.Winner(); w.ID != "2" {
		t.Errorf("winner = %q, want 2", w.ID)
	}
}

func TestWinByExhaustedCategories(t *testing.T) {
	s := startGame(t, 10000, "A", "B")

	for range cluequiz.SelectionCap {
		s.SetCategory("A")
		s.SetCategory("B")
	}
	if !s.CategoriesExhausted() {
		t.Fatal("expected categories exhausted")
	}
	if s.CheckWinCondition() {
		t.Fatal("no team should have won on points")
	}

	s.SetCurrentItem(newItem("x", "B", 2))
	if _, err := s.CreditTeam("2"); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if s.EndReason() != cluequiz.EndReasonCategoriesExhausted {
		t.Fatalf("reason = %q, want categories_exhausted", s.EndReason())
	}
	if w, _ := s.Winner(); w.ID != "2" {
		t.Errorf("winner = %q, want 2", w.ID)
	}
}

func TestWinnerTieGoesToEarlierSeat(t *testing.T) {
	s := startGame(t, 1000)
	s.AdjustScore("2", 30)
	s.AdjustScore("3", 30)
	if w, _ := s.Winner(); w.ID != "2" {
		t.Errorf("winner = %q, want 2", w.ID)
	}
}

func TestEndedGameIsInert(t *testing.T) {
	s := startGame(t, 100)
	startRound(t, s, newItem("x", cluequiz.CategoryMovies, 2))
	if err := s.EndGame(""); err != nil {
		t.Fatalf("end: %v", err)
	}
	if s.EndReason() != cluequiz.EndReasonManual {
		t.Errorf("reason = %q, want manual", s.EndReason())
	}

	checks := map[string]error{
		"set category": s.SetCategory(cluequiz.CategoryMovies),
		"reveal":       s.RevealDetail(0),
		"adjust":       s.AdjustScore("1", 5),
		"end again":    s.EndGame(cluequiz.EndReasonManual),
	}
	_, err := s.CreditTeam("1")
	checks["credit"] = err
	for name, err := range checks {
		if !errors.Is(err, cluequiz.ErrGameOver) {
			t.Errorf("%s: err = %v, want ErrGameOver", name, err)
		}
	}
	if s.SelectionCount(cluequiz.CategoryMovies) != 1 || score(s, "1") != 0 {
		t.Error("ended session was mutated")
	}

	s.Reset()
	if s.Phase() != cluequiz.PhaseSetup || len(s.Teams()) != 0 || s.SelectionCount(cluequiz.CategoryMovies) != 0 {
		t.Error("reset did not wipe the session")
	}
}

func TestAdjustScoreClamps(t *testing.T) {
	s := startGame(t, 100)
	steps := []struct {
		delta int
		want  int
	}{
		{delta: 30, want: 30},
		{delta: -50, want: 0},
		{delta: -10, want: 0},
		{delta: 20, want: 20},
	}
	for _, st := range steps {
		if err := s.AdjustScore("1", st.delta); err != nil {
			t.Fatalf("adjust %d: %v", st.delta, err)
		}
		if got := score(s, "1"); got != st.want {
			t.Errorf("after %+d score = %d, want %d", st.delta, got, st.want)
		}
	}
	if err := s.AdjustScore("zzz", 1); !errors.Is(err, cluequiz.ErrTeamNotFound) {
		t.Errorf("unknown team: err = %v", err)
	}
}

func TestSetCategoryCountsEveryCall(t *testing.T) {
	s := startGame(t, 100)
	for i := 1; i <= 5; i++ {
		s.SetCategory(cluequiz.CategoryMovies)
		if got := s.SelectionCount(cluequiz.CategoryMovies); got != i {
			t.Fatalf("count = %d, want %d", got, i)
		}
	}
	if s.Remaining(cluequiz.CategoryMovies) != 0 || !s.Exhausted(cluequiz.CategoryMovies) {
		t.Error("expected movies exhausted")
	}
}

func TestServedItemTracking(t *testing.T) {
	s := startGame(t, 100)
	startRound(t, s, newItem("m1", cluequiz.CategoryMovies, 1))

	if !s.HasServed(cluequiz.CategoryMovies, "m1") {
		t.Fatal("m1 should be recorded")
	}
	if s.HasServed(cluequiz.CategoryAnime, "m1") {
		t.Fatal("served sets are per category")
	}
	s.ClearCategoryUsedItems(cluequiz.CategoryMovies)
	if s.HasServed(cluequiz.CategoryMovies, "m1") {
		t.Fatal("clear did not forget m1")
	}
}

func TestInitializeNormalizesTeams(t *testing.T) {
	s := cluequiz.NewSession()
	err := s.Initialize([]cluequiz.Team{
		{ID: "dup", Name: " A ", Score: 50},
		{ID: "dup", Name: "B", Score: 10, IsActive: true},
		{Name: "C", IsActive: true},
	}, 100, []cluequiz.Category{cluequiz.CategoryMovies})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}

	teams := s.Teams()
	ids := map[string]bool{}
	for i, tm := range teams {
		if tm.Score != 0 {
			t.Errorf("team %d score = %d, want 0", i, tm.Score)
		}
		if tm.IsActive != (i == 0) {
			t.Errorf("team %d active = %v", i, tm.IsActive)
		}
		if tm.ID == "" || ids[tm.ID] {
			t.Errorf("team %d id %q not unique", i, tm.ID)
		}
		ids[tm.ID] = true
	}
	if teams[0].Name != "A" || teams[0].ID != "dup" {
		t.Errorf("first team = %+v", teams[0])
	}
	if !s.IsGameActive() || s.GameEnded() {
		t.Error("expected active game")
	}
}

func TestInitializeRejectsBadSetup(t *testing.T) {
	two := []cluequiz.Team{{Name: "A"}, {Name: "B"}}
	movies := []cluequiz.Category{cluequiz.CategoryMovies}

	tests := []struct {
		name   string
		teams  []cluequiz.Team
		points int
		cats   []cluequiz.Category
	}{
		{name: "one team", teams: two[:1], points: 100, cats: movies},
		{name: "seven teams", teams: make([]cluequiz.Team, 7), points: 100, cats: movies},
		{name: "blank name", teams: []cluequiz.Team{{Name: "A"}, {Name: " "}}, points: 100, cats: movies},
		{name: "zero points", teams: two, points: 0, cats: movies},
		{name: "no categories", teams: two, points: 100},
		{name: "duplicate category", teams: two, points: 100, cats: []cluequiz.Category{"movies", "movies"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cluequiz.NewSession()
			err := s.Initialize(tt.teams, tt.points, tt.cats)
			if !errors.Is(err, cluequiz.ErrInvalidSetup) {
				t.Fatalf("err = %v, want ErrInvalidSetup", err)
			}
			if s.IsGameActive() {
				t.Fatal("rejected setup started a game")
			}
		})
	}
}

func TestRoster(t *testing.T) {
	s := cluequiz.NewSession()
	first, err := s.AddTeam("Falcons")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !first.IsActive {
		t.Error("first team should be active")
	}
	for i := 2; i <= cluequiz.MaxTeams; i++ {
		tm, err := s.AddTeam(fmt.Sprintf("Team %d", i))
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if tm.IsActive {
			t.Errorf("team %d should not be active", i)
		}
	}
	if _, err := s.AddTeam("Seventh"); !errors.Is(err, cluequiz.ErrRosterFull) {
		t.Fatalf("seventh team: err = %v, want ErrRosterFull", err)
	}
	if _, err := s.AddTeam("  "); !errors.Is(err, cluequiz.ErrInvalidTeam) {
		t.Fatalf("blank name: err = %v, want ErrInvalidTeam", err)
	}

	teams := s.Teams()
	if err := s.SetActiveTeam(teams[5].ID); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := s.SetActiveTeam("missing"); !errors.Is(err, cluequiz.ErrTeamNotFound) {
		t.Fatalf("set active missing: err = %v", err)
	}
	if activeID(t, s) != teams[5].ID {
		t.Fatal("unknown id changed the active team")
	}

	// Removing the active last seat wraps to the first.
	if err := s.RemoveTeam(teams[5].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := activeID(t, s); got != teams[0].ID {
		t.Errorf("active after removal = %q, want %q", got, teams[0].ID)
	}

	s.SetActiveTeam(teams[2].ID)
	s.RemoveTeam(teams[2].ID)
	if got := activeID(t, s); got != teams[3].ID {
		t.Errorf("active after removal = %q, want %q", got, teams[3].ID)
	}

	s.RemoveTeam(teams[0].ID)
	if got := activeID(t, s); got != teams[3].ID {
		t.Errorf("removing an inactive team moved the turn to %q", got)
	}
	if err := s.RemoveTeam("missing"); !errors.Is(err, cluequiz.ErrTeamNotFound) {
		t.Errorf("remove missing: err = %v", err)
	}

	left := s.Teams()
	for len(left) > cluequiz.MinTeams {
		if err := s.RemoveTeam(left[len(left)-1].ID); err != nil {
			t.Fatalf("remove: %v", err)
		}
		left = s.Teams()
	}
	if err := s.RemoveTeam(left[0].ID); !errors.Is(err, cluequiz.ErrInvalidTeam) {
		t.Errorf("shrinking below %d teams: err = %v, want ErrInvalidTeam", cluequiz.MinTeams, err)
	}
	if len(s.Teams()) != cluequiz.MinTeams {
		t.Errorf("rejected removal changed the roster: %d teams", len(s.Teams()))
	}
}

func TestSetCurrentItemHidesClues(t *testing.T) {
	s := startGame(t, 100)
	it := newItem("x", "", 2)
	it.Details[0].Revealed = true
	s.SetCategory(cluequiz.CategoryAnime)

	if err := s.SetCurrentItem(it); err != nil {
		t.Fatalf("set item: %v", err)
	}
	got, _ := s.CurrentItem()
	if got.Unrevealed() != 2 {
		t.Errorf("unrevealed = %d, want 2", got.Unrevealed())
	}
	if got.Category != cluequiz.CategoryAnime {
		t.Errorf("category = %q, want anime", got.Category)
	}
	if err := s.SetCurrentItem(cluequiz.Item{ID: "y", Name: "Y"}); !errors.Is(err, cluequiz.ErrInvalidItem) {
		t.Errorf("item without clues: err = %v", err)
	}
}
