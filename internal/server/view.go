package server

import (
	"github.com/playperu/cluequiz/internal/cluequiz"
	"github.com/playperu/cluequiz/internal/content"
)

// StateView is what clients see of a session. Hidden clue values and the
// answer stay blank until revealed.
type StateView struct {
	Phase            cluequiz.Phase     `json:"phase"`
	Teams            []cluequiz.Team    `json:"teams"`
	ActiveTeamID     string             `json:"activeTeamId,omitempty"`
	CurrentItem      *ItemView          `json:"currentItem"`
	SelectedCategory cluequiz.Category  `json:"selectedCategory,omitempty"`
	AnswerRevealed   bool               `json:"answerRevealed"`
	Categories       []CategoryUsage    `json:"categories"`
	WinningPoints    int                `json:"winningPoints"`
	HideHints        bool               `json:"hideHints"`
	IsGameActive     bool               `json:"isGameActive"`
	GameEnded        bool               `json:"gameEnded"`
	EndReason        cluequiz.EndReason `json:"endReason,omitempty"`
	Winner           *cluequiz.Team     `json:"winner,omitempty"`
}

type ItemView struct {
	ID          string            `json:"id"`
	Category    cluequiz.Category `json:"category"`
	Name        string            `json:"name,omitempty"`
	Details     []cluequiz.Clue   `json:"details"`
	MediaURL    string            `json:"mediaUrl,omitempty"`
	AudioOnly   bool              `json:"isAudioOnly,omitempty"`
	PointsValue int               `json:"pointsValue"`
}

// CategoryUsage is one enabled category with its pick counter.
type CategoryUsage struct {
	ID        cluequiz.Category `json:"id"`
	Label     string            `json:"label"`
	Icon      string            `json:"icon"`
	Picks     int               `json:"picks"`
	Remaining int               `json:"remaining"`
	Exhausted bool              `json:"exhausted"`
}

func newStateView(st cluequiz.State) StateView {
	v := StateView{
		Phase:            st.Phase,
		Teams:            st.Teams,
		SelectedCategory: st.SelectedCategory,
		AnswerRevealed:   st.AnswerRevealed,
		Categories:       make([]CategoryUsage, 0, len(st.SelectedCategories)),
		WinningPoints:    st.WinningPoints,
		HideHints:        st.HideHints,
		IsGameActive:     st.IsGameActive,
		GameEnded:        st.GameEnded,
		EndReason:        st.EndReason,
		Winner:           st.Winner,
	}
	if v.Teams == nil {
		v.Teams = []cluequiz.Team{}
	}
	for _, t := range st.Teams {
		if t.IsActive {
			v.ActiveTeamID = t.ID
		}
	}
	if st.CurrentItem != nil {
		v.CurrentItem = newItemView(*st.CurrentItem, st.AnswerRevealed)
	}
	for _, c := range st.SelectedCategories {
		info := content.Describe(c)
		picks := st.CategorySelectionCounts[c]
		v.Categories = append(v.Categories, CategoryUsage{
			ID:        c,
			Label:     info.Label,
			Icon:      info.Icon,
			Picks:     picks,
			Remaining: max(0, cluequiz.SelectionCap-picks),
			Exhausted: picks >= cluequiz.SelectionCap,
		})
	}
	return v
}

func newItemView(it cluequiz.Item, answerRevealed bool) *ItemView {
	v := &ItemView{
		ID:          it.ID,
		Category:    it.Category,
		Details:     make([]cluequiz.Clue, len(it.Details)),
		MediaURL:    it.MediaURL,
		AudioOnly:   it.AudioOnly,
		PointsValue: it.Points(),
	}
	if answerRevealed {
		v.Name = it.Name
	}
	for i, d := range it.Details {
		if !d.Revealed {
			d.Value = ""
		}
		v.Details[i] = d
	}
	return v
}
