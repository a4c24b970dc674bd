package cluequiz

import (
	"fmt"
	"strings"
)

// AddTeam appends a team to the end of the seating order. The first team
// added to an empty roster takes the turn.
func (s *Session) AddTeam(name string) (Team, error) {
	if s.ended {
		return Team{}, ErrGameOver
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, fmt.Errorf("%w: name is required", ErrInvalidTeam)
	}
	if len(s.teams) >= MaxTeams {
		return Team{}, ErrRosterFull
	}

	t := Team{ID: s.newID(), Name: name, IsActive: len(s.teams) == 0}
	s.teams = append(s.teams, t)
	return t, nil
}

// RemoveTeam drops a team. When the removed team held the turn, the next
// team in seating order (wrapping) takes it so rotation never stalls.
func (s *Session) RemoveTeam(id string) error {
	if s.ended {
		return ErrGameOver
	}
	i := s.teamIndex(id)
	if i < 0 {
		return ErrTeamNotFound
	}
	if s.active && len(s.teams) <= MinTeams {
		return fmt.Errorf("%w: a game needs at least %d teams", ErrInvalidTeam, MinTeams)
	}
	wasActive := s.teams[i].IsActive
	s.teams = append(s.teams[:i], s.teams[i+1:]...)

	if wasActive && len(s.teams) > 0 {
		s.activate(i % len(s.teams))
	}
	return nil
}

// SetActiveTeam hands the turn to id.
func (s *Session) SetActiveTeam(id string) error {
	if s.ended {
		return ErrGameOver
	}
	i := s.teamIndex(id)
	if i < 0 {
		return ErrTeamNotFound
	}
	s.activate(i)
	return nil
}

// ActiveTeam returns the team whose turn it is.
func (s *Session) ActiveTeam() (Team, bool) {
	for _, t := range s.teams {
		if t.IsActive {
			return t, true
		}
	}
	return Team{}, false
}

func (s *Session) activate(idx int) {
	for i := range s.teams {
		s.teams[i].IsActive = i == idx
	}
}

// nextTurn passes the turn to the seat after the current one. With no
// active team the first seat takes it.
func (s *Session) nextTurn() {
	if len(s.teams) == 0 {
		return
	}
	cur := -1
	for i, t := range s.teams {
		if t.IsActive {
			cur = i
			break
		}
	}
	s.activate((cur + 1) % len(s.teams))
}

// AdjustScore applies a manual correction, clamped at zero. Reaching the
// winning threshold ends the game.
func (s *Session) AdjustScore(id string, delta int) error {
	if err := s.mutable(); err != nil {
		return err
	}
	i := s.teamIndex(id)
	if i < 0 {
		return ErrTeamNotFound
	}
	s.addScore(i, delta)
	if s.CheckWinCondition() {
		s.end(EndReasonPoints)
	}
	return nil
}

func (s *Session) addScore(i, delta int) {
	s.teams[i].Score = max(0, s.teams[i].Score+delta)
}
