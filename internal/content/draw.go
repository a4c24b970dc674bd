package content

import (
	"context"

	"github.com/playperu/cluequiz/internal/cluequiz"
)

// DefaultMaxAttempts bounds how often Draw asks for a fresh item before it
// gives up on avoiding repeats.
const DefaultMaxAttempts = 5

type DrawResult struct {
	Item     cluequiz.Item
	Attempts int
	// Cleared means every attempt returned an already served item; the
	// caller should forget the category's served set before using Item.
	Cleared bool
}

// Draw fetches an item for c that seen does not report as served. After
// maxAttempts repeats it accepts the next draw unconditionally, so it
// always terminates. Provider errors are returned as is.
func Draw(ctx context.Context, p Provider, c cluequiz.Category, seen func(id string) bool, maxAttempts int) (DrawResult, error) {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		it, err := p.Fetch(ctx, c)
		if err != nil {
			return DrawResult{}, err
		}
		if seen == nil || !seen(it.ID) {
			return DrawResult{Item: it, Attempts: attempt}, nil
		}
	}

	it, err := p.Fetch(ctx, c)
	if err != nil {
		return DrawResult{}, err
	}
	return DrawResult{Item: it, Attempts: maxAttempts + 1, Cleared: true}, nil
}
