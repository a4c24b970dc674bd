package cluequiz

// CheckWinCondition is true when any team reached the winning threshold.
func (s *Session) CheckWinCondition() bool {
	for _, t := range s.teams {
		if t.Score >= s.winningPoints {
			return true
		}
	}
	return false
}

// EndGame stops the game. Once ended, only Reset (or a new Initialize)
// changes the session again.
func (s *Session) EndGame(reason EndReason) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if reason == EndReasonNone {
		reason = EndReasonManual
	}
	s.end(reason)
	return nil
}

func (s *Session) end(reason EndReason) {
	s.active = false
	s.ended = true
	s.endReason = reason
}

// checkEnd ends the game when a termination condition holds. Points take
// precedence over exhausted categories.
func (s *Session) checkEnd() {
	switch {
	case s.CheckWinCondition():
		s.end(EndReasonPoints)
	case s.currentItem == nil && s.CategoriesExhausted():
		s.end(EndReasonCategoriesExhausted)
	}
}

// Winner is the highest scoring team; ties go to the earlier seat.
func (s *Session) Winner() (Team, bool) {
	if len(s.teams) == 0 {
		return Team{}, false
	}
	best := 0
	for i, t := range s.teams[1:] {
		if t.Score > s.teams[best].Score {
			best = i + 1
		}
	}
	return s.teams[best], true
}
