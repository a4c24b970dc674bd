package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/playperu/cluequiz/internal/cluequiz"
	"github.com/playperu/cluequiz/internal/content"
)

func newValidateCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check pool files for unique ids, names and clues.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range args {
				n, err := validateFile(name, cfg.category)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s (%d items)\n", name, n)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.category, "category", "", "category for every file, instead of the file name (env: CLUEQUIZ_CATEGORY)")

	return cmd
}

func validateFile(name, category string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	c := cluequiz.Category(category)
	if c == "" {
		c = cluequiz.Category(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	}
	pool, err := content.LoadPool(f, c)
	if err != nil {
		return 0, err
	}
	if len(pool.Items) == 0 {
		return 0, content.ErrEmptyPool
	}
	return len(pool.Items), nil
}

func newListCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the category catalog and which categories have content.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := content.Bundled()
			if err != nil {
				return err
			}
			infos := content.Catalog(registry)

			if cfg.json {
				return writeJSON(cmd.OutOrStdout(), infos)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tCONTENT")
			for _, info := range infos {
				avail := "-"
				if info.Available {
					avail = "bundled"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.ID, info.Label, avail)
			}
			return tw.Flush()
		},
	}
}

func newDrawCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw <category>",
		Short: "Draw items the way a game table would, skipping repeats.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := newProvider(cfg)
			if err != nil {
				return err
			}

			c := cluequiz.Category(args[0])
			items, err := drawItems(cmd.Context(), provider, c, cfg.count)
			if err != nil {
				return err
			}

			if cfg.json {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			for _, it := range items {
				printItem(cmd.OutOrStdout(), it)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.count, "count", "n", 1, "number of items to draw (env: CLUEQUIZ_COUNT)")

	return cmd
}

func newProvider(cfg *Config) (content.Provider, error) {
	bundled, err := content.Bundled()
	if err != nil {
		return nil, err
	}
	if cfg.contentURL == "" {
		return bundled, nil
	}

	remote, err := content.NewRemote(cfg.contentURL, &http.Client{Timeout: cfg.timeout})
	if err != nil {
		return nil, err
	}
	return content.Fallback{remote, bundled}, nil
}

// drawItems draws n items, treating earlier draws as already served.
func drawItems(ctx context.Context, p content.Provider, c cluequiz.Category, n int) ([]cluequiz.Item, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	served := make(map[string]bool, n)
	items := make([]cluequiz.Item, 0, n)
	for range n {
		res, err := content.Draw(ctx, p, c, func(id string) bool { return served[id] }, content.DefaultMaxAttempts)
		if errors.Is(err, content.ErrNoProvider) {
			return nil, fmt.Errorf("no content for category %q", c)
		}
		if err != nil {
			return nil, err
		}
		if res.Cleared {
			clear(served)
		}
		served[res.Item.ID] = true
		items = append(items, res.Item)
	}
	return items, nil
}

func printItem(w io.Writer, it cluequiz.Item) {
	fmt.Fprintf(w, "%s  %s (%d points)\n", it.ID, it.Name, it.Points())
	for i, d := range it.Details {
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, d.Label, d.Value)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
