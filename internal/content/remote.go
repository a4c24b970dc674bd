package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/playperu/cluequiz/internal/cluequiz"
)

const maxRemoteBody = 1 << 20

// Remote fetches items from an HTTP item service: GET <base>/<category>
// returns one content record in the bundled pool format.
type Remote struct {
	base   *url.URL
	client *http.Client
}

func NewRemote(baseURL string, client *http.Client) (*Remote, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing content url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("content url %q must be http or https", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{base: u, client: client}, nil
}

func (r *Remote) Fetch(ctx context.Context, c cluequiz.Category) (cluequiz.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base.JoinPath(string(c)).String(), nil)
	if err != nil {
		return cluequiz.Item{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return cluequiz.Item{}, fmt.Errorf("requesting %s item: %w", c, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cluequiz.Item{}, fmt.Errorf("content service returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return cluequiz.Item{}, fmt.Errorf("reading %s item: %w", c, err)
	}
	return ParseItem(body, c)
}
