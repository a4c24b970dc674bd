package content

import "github.com/playperu/cluequiz/internal/cluequiz"

type CategoryInfo struct {
	ID          cluequiz.Category `json:"id"`
	Label       string            `json:"label"`
	Icon        string            `json:"icon"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
}

var catalog = map[cluequiz.Category]CategoryInfo{
	cluequiz.CategoryAnime:         {Label: "Anime", Icon: "🎭", Description: "Guess the anime from its details"},
	cluequiz.CategoryTV:            {Label: "TV series", Icon: "📺", Description: "Guess the show from its details"},
	cluequiz.CategoryMovies:        {Label: "Movies", Icon: "🎬", Description: "Guess the film from its details"},
	cluequiz.CategoryGames:         {Label: "Video games", Icon: "🎮", Description: "Guess the game from its details"},
	cluequiz.CategoryFootball:      {Label: "Football", Icon: "⚽", Description: "Guess the player from their career"},
	cluequiz.CategoryWWE:           {Label: "Wrestling", Icon: "🤼", Description: "Guess the wrestler"},
	cluequiz.CategoryMusic:         {Label: "Music", Icon: "🎵", Description: "Guess the song or the singer"},
	cluequiz.CategorySports:        {Label: "Sports", Icon: "🏆", Description: "Guess the sport or the athlete"},
	cluequiz.CategoryTech:          {Label: "Technology", Icon: "💻", Description: "Guess the product or the company"},
	cluequiz.CategoryHistory:       {Label: "History", Icon: "📜", Description: "Guess the event or the figure"},
	cluequiz.CategoryGeography:     {Label: "Geography", Icon: "🌍", Description: "Guess the country"},
	cluequiz.CategoryScience:       {Label: "Science", Icon: "🔬", Description: "Guess the discovery or the scientist"},
	cluequiz.CategoryReligion:      {Label: "Religion", Icon: "🕌", Description: "Guess the religious figure"},
	cluequiz.CategoryWhoAmI:        {Label: "Who am I", Icon: "❓", Description: "Guess the famous person"},
	cluequiz.CategoryMemories:      {Label: "Memories", Icon: "📸", Description: "Guess the throwback"},
	cluequiz.CategoryPlayerJourney: {Label: "Player journey", Icon: "⚽", Description: "Guess the player from the clubs they played for"},
	cluequiz.CategoryProphets:      {Label: "Prophets", Icon: "📖", Description: "Guess the prophet"},
	cluequiz.CategorySpacetoon:     {Label: "Spacetoon", Icon: "📺", Description: "Guess the cartoon character"},
	cluequiz.CategoryArabicSeries:  {Label: "Arabic series", Icon: "🎞️", Description: "Guess the series"},
	cluequiz.CategoryQuran:         {Label: "Quran", Icon: "📖", Description: "Guess the surah"},
	cluequiz.CategoryCars:          {Label: "Cars", Icon: "🚗", Description: "Guess the car"},
	cluequiz.CategoryGlobalBrands:  {Label: "Global brands", Icon: "🏷️", Description: "Guess the brand"},
	cluequiz.CategoryAnimals:       {Label: "Animals", Icon: "🦁", Description: "Guess the animal"},
	cluequiz.CategorySaudiLeague:   {Label: "Saudi league", Icon: "🏟️", Description: "Guess the club or the player"},
}

// Describe returns the display info for c. Unknown categories get their id
// as label.
func Describe(c cluequiz.Category) CategoryInfo {
	info, ok := catalog[c]
	if !ok {
		info = CategoryInfo{Label: string(c)}
	}
	info.ID = c
	return info
}

// Catalog lists every catalog category and whether r can serve it.
func Catalog(r *Registry) []CategoryInfo {
	out := make([]CategoryInfo, 0, len(cluequiz.Categories))
	for _, c := range cluequiz.Categories {
		info := Describe(c)
		info.Available = r != nil && r.Has(c)
		out = append(out, info)
	}
	return out
}
