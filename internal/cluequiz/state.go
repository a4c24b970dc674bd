package cluequiz

// State is a read-only copy of a session for rendering.
type State struct {
	Phase                   Phase            `json:"phase"`
	Teams                   []Team           `json:"teams"`
	CurrentItem             *Item            `json:"currentItem"`
	SelectedCategory        Category         `json:"selectedCategory,omitempty"`
	AnswerRevealed          bool             `json:"answerRevealed"`
	SelectedCategories      []Category       `json:"selectedCategories"`
	CategorySelectionCounts map[Category]int `json:"categorySelectionCounts"`
	WinningPoints           int              `json:"winningPoints"`
	HideHints               bool             `json:"hideHints"`
	IsGameActive            bool             `json:"isGameActive"`
	GameEnded               bool             `json:"gameEnded"`
	EndReason               EndReason        `json:"endReason,omitempty"`
	Winner                  *Team            `json:"winner,omitempty"`
}

func (s *Session) State() State {
	st := State{
		Phase:                   s.Phase(),
		Teams:                   s.Teams(),
		SelectedCategory:        s.selectedCategory,
		AnswerRevealed:          s.answerRevealed,
		SelectedCategories:      s.SelectedCategories(),
		CategorySelectionCounts: s.SelectionCounts(),
		WinningPoints:           s.winningPoints,
		HideHints:               s.hideHints,
		IsGameActive:            s.active,
		GameEnded:               s.ended,
		EndReason:               s.endReason,
	}
	if st.Teams == nil {
		st.Teams = []Team{}
	}
	if st.SelectedCategories == nil {
		st.SelectedCategories = []Category{}
	}
	if it, ok := s.CurrentItem(); ok {
		st.CurrentItem = &it
	}
	if s.ended {
		if w, ok := s.Winner(); ok {
			st.Winner = &w
		}
	}
	return st
}
