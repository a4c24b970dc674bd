// Package cluequiz defines the core domain types and the game session state
// machine. It has zero external dependencies beyond google/uuid for team ids.
package cluequiz

const (
	// MaxTeams is the roster cap.
	MaxTeams = 6
	// MinTeams is the smallest roster a game can start with.
	MinTeams = 2
	// SelectionCap is how many times one category may be picked per game.
	SelectionCap = 3
	// DefaultWinningPoints matches the "normal length" game preset.
	DefaultWinningPoints = 200
	// PointsPerClue is awarded for every clue still hidden at credit time.
	PointsPerClue = 10
	// MinPoints is the floor for a correct guess with every clue revealed.
	MinPoints = 10
)

type Category string

const (
	CategoryAnime         Category = "anime"
	CategoryTV            Category = "tv"
	CategoryMovies        Category = "movies"
	CategoryGames         Category = "games"
	CategoryFootball      Category = "football"
	CategoryWWE           Category = "wwe"
	CategoryMusic         Category = "music"
	CategorySports        Category = "sports"
	CategoryTech          Category = "tech"
	CategoryHistory       Category = "history"
	CategoryGeography     Category = "geography"
	CategoryScience       Category = "science"
	CategoryReligion      Category = "religion"
	CategoryWhoAmI        Category = "whoami"
	CategoryMemories      Category = "memories"
	CategoryPlayerJourney Category = "playerJourney"
	CategoryProphets      Category = "prophets"
	CategorySpacetoon     Category = "spacetoon"
	CategoryArabicSeries  Category = "arabicSeries"
	CategoryQuran         Category = "quran"
	CategoryCars          Category = "cars"
	CategoryGlobalBrands  Category = "globalBrands"
	CategoryAnimals       Category = "animals"
	CategorySaudiLeague   Category = "saudiLeague"
)

// Categories lists every category the game knows about, in catalog order.
var Categories = []Category{
	CategoryAnime, CategoryTV, CategoryMovies, CategoryGames, CategoryFootball,
	CategoryWWE, CategoryMusic, CategorySports, CategoryTech, CategoryHistory,
	CategoryGeography, CategoryScience, CategoryReligion, CategoryWhoAmI,
	CategoryMemories, CategoryPlayerJourney, CategoryProphets, CategorySpacetoon,
	CategoryArabicSeries, CategoryQuran, CategoryCars, CategoryGlobalBrands,
	CategoryAnimals, CategorySaudiLeague,
}

// Known reports whether c is in the catalog.
func (c Category) Known() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

type Team struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	IsActive bool   `json:"isActive"`
}

// Clue is one hint of an Item. Revealed only ever goes from false to true
// while the item is in play.
type Clue struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Revealed bool   `json:"revealed"`
}

type Item struct {
	ID        string   `json:"id"`
	Category  Category `json:"category"`
	Name      string   `json:"name"`
	Details   []Clue   `json:"details"`
	MediaURL  string   `json:"mediaUrl,omitempty"`
	AudioOnly bool     `json:"isAudioOnly,omitempty"`
}

// Unrevealed counts the clues still hidden.
func (it Item) Unrevealed() int {
	n := 0
	for _, d := range it.Details {
		if !d.Revealed {
			n++
		}
	}
	return n
}

// Points is what a correct guess is worth right now.
func (it Item) Points() int {
	n := it.Unrevealed()
	if n == 0 {
		return MinPoints
	}
	return n * PointsPerClue
}

type Phase string

const (
	PhaseSetup          Phase = "setup"
	PhaseIdle           Phase = "idle"
	PhaseAwaitingGuess  Phase = "awaiting_guess"
	PhaseAnswerRevealed Phase = "answer_revealed"
	PhaseEnded          Phase = "ended"
)

type EndReason string

const (
	EndReasonNone                EndReason = ""
	EndReasonPoints              EndReason = "points"
	EndReasonCategoriesExhausted EndReason = "categories_exhausted"
	EndReasonManual              EndReason = "manual"
)
