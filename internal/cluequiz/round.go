package cluequiz

import (
	"fmt"
	"strings"
	"unicode"
)

// SetCurrentItem puts it in play with every clue hidden and records it as
// served for its category.
func (s *Session) SetCurrentItem(it Item) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if it.ID == "" || strings.TrimSpace(it.Name) == "" || len(it.Details) == 0 {
		return fmt.Errorf("%w: id, name and at least one detail are required", ErrInvalidItem)
	}
	if it.Category == "" {
		it.Category = s.selectedCategory
	}

	it = copyItem(it)
	for i := range it.Details {
		it.Details[i].Revealed = false
	}
	s.currentItem = &it
	s.answerRevealed = false
	s.recordServed(it)
	return nil
}

// RevealDetail shows clue i. Revealing an already visible clue is a no-op.
func (s *Session) RevealDetail(i int) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.currentItem == nil {
		return ErrNoRound
	}
	if i < 0 || i >= len(s.currentItem.Details) {
		return ErrClueOutOfRange
	}
	s.currentItem.Details[i].Revealed = true
	return nil
}

// RevealAnswer exposes the item name. It never touches scores.
func (s *Session) RevealAnswer() error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.currentItem == nil {
		return ErrNoRound
	}
	s.answerRevealed = true
	return nil
}

func (s *Session) AnswerRevealed() bool { return s.answerRevealed }

// SubmitGuess compares a typed guess with the answer, ignoring case,
// punctuation and spacing. A correct guess reveals the answer; points are
// still awarded through CreditTeam.
func (s *Session) SubmitGuess(teamID, guess string) (bool, error) {
	if err := s.mutable(); err != nil {
		return false, err
	}
	if s.currentItem == nil {
		return false, ErrNoRound
	}
	if s.teamIndex(teamID) < 0 {
		return false, ErrTeamNotFound
	}
	g := normalizeAnswer(guess)
	if g == "" || g != normalizeAnswer(s.currentItem.Name) {
		return false, nil
	}
	s.answerRevealed = true
	return true, nil
}

// CreditTeam closes the round. teamID is the team that guessed correctly,
// or empty when nobody did. The credited team earns 10 points per hidden
// clue with a 10 point floor. The turn always moves to the next seat, the
// round is cleared, and the game ends if a win or exhaustion condition
// now holds. It returns the points awarded.
func (s *Session) CreditTeam(teamID string) (int, error) {
	if err := s.mutable(); err != nil {
		return 0, err
	}
	if s.currentItem == nil {
		return 0, ErrNoRound
	}
	idx := -1
	if teamID != "" {
		if idx = s.teamIndex(teamID); idx < 0 {
			return 0, ErrTeamNotFound
		}
	}

	points := 0
	if idx >= 0 {
		points = s.currentItem.Points()
		s.addScore(idx, points)
	}
	s.nextTurn()
	s.endRound()
	s.checkEnd()
	return points, nil
}

// BackToCategories abandons the round without scoring or passing the turn.
func (s *Session) BackToCategories() error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.currentItem == nil {
		return ErrNoRound
	}
	s.endRound()
	s.checkEnd()
	return nil
}

func (s *Session) endRound() {
	s.currentItem = nil
	s.selectedCategory = ""
	s.answerRevealed = false
}

func normalizeAnswer(v string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(v) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
