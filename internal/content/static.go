package content

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"path"
	"strconv"
	"strings"
	"unicode"

	"github.com/playperu/cluequiz/internal/cluequiz"
)

//go:embed data/*.json
var bundled embed.FS

const unknownValue = "unknown"

// labels maps record field names to clue labels.
var labels = map[string]string{
	"releaseYear":   "Release year",
	"year":          "Year",
	"genre":         "Genre",
	"studio":        "Studio",
	"director":      "Director",
	"mainCharacter": "Main character",
	"mainActor":     "Main actor",
	"network":       "Network",
	"seasons":       "Seasons",
	"episodes":      "Episodes",
	"country":       "Country",
	"club":          "Club",
	"position":      "Position",
	"nationality":   "Nationality",
	"manufacturer":  "Manufacturer",
	"engineType":    "Engine",
	"horsepower":    "Horsepower",
	"foundedYear":   "Founded",
	"industry":      "Industry",
	"platform":      "Platform",
	"developer":     "Developer",
	"finisher":      "Finishing move",
	"championships": "Championships",
	"continent":     "Continent",
	"capital":       "Capital",
	"population":    "Population",
	"habitat":       "Habitat",
	"diet":          "Diet",
	"field":         "Field",
	"discoveredBy":  "Discovered by",
	"highlight":     "Did you know",
	"description":   "Description",
}

// skipped fields never become clues.
var skipped = map[string]bool{"id": true, "name": true, "title": true, "category": true, "details": true}

// Pool is a fixed set of items for one category.
type Pool struct {
	Category cluequiz.Category
	Items    []cluequiz.Item
}

// Static draws uniformly from a Pool.
type Static struct {
	pool Pool
	intN func(n int) int
}

func NewStatic(pool Pool) *Static {
	return &Static{pool: pool, intN: rand.IntN}
}

func (s *Static) Fetch(ctx context.Context, c cluequiz.Category) (cluequiz.Item, error) {
	if err := ctx.Err(); err != nil {
		return cluequiz.Item{}, err
	}
	if len(s.pool.Items) == 0 {
		return cluequiz.Item{}, fmt.Errorf("%w: %s", ErrEmptyPool, s.pool.Category)
	}
	it := s.pool.Items[s.intN(len(s.pool.Items))]
	it.Details = append([]cluequiz.Clue(nil), it.Details...)
	it.Category = c
	return it, nil
}

// Bundled returns a registry serving every pool shipped with the binary.
func Bundled() (*Registry, error) {
	pools, err := LoadDir(bundled, "data")
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, p := range pools {
		r.Register(p.Category, NewStatic(p))
	}
	return r, nil
}

// LoadDir reads every <category>.json file in dir.
func LoadDir(fsys fs.FS, dir string) ([]Pool, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var pools []Pool
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		c := cluequiz.Category(strings.TrimSuffix(e.Name(), ".json"))
		f, err := fsys.Open(path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", e.Name(), err)
		}
		p, err := LoadPool(f, c)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", e.Name(), err)
		}
		pools = append(pools, p)
	}
	return pools, nil
}

// LoadPool decodes a {"items": [...]} document. Records either carry a
// "details" array or have their remaining fields turned into clues in
// document order.
func LoadPool(r io.Reader, c cluequiz.Category) (Pool, error) {
	var doc struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Pool{}, fmt.Errorf("decoding pool: %w", err)
	}

	pool := Pool{Category: c, Items: make([]cluequiz.Item, 0, len(doc.Items))}
	seen := make(map[string]bool, len(doc.Items))
	for i, raw := range doc.Items {
		it, err := ParseItem(raw, c)
		if err != nil {
			return Pool{}, fmt.Errorf("item %d: %w", i, err)
		}
		if seen[it.ID] {
			return Pool{}, fmt.Errorf("item %d: duplicate id %q", i, it.ID)
		}
		seen[it.ID] = true
		pool.Items = append(pool.Items, it)
	}
	return pool, nil
}

// ParseItem decodes one content record.
func ParseItem(raw []byte, c cluequiz.Category) (cluequiz.Item, error) {
	fields, err := orderedFields(raw)
	if err != nil {
		return cluequiz.Item{}, err
	}

	it := cluequiz.Item{Category: c}
	var details []cluequiz.Clue
	hasDetails := false
	for _, f := range fields {
		switch f.key {
		case "id":
			it.ID = scalarString(f.value)
		case "name":
			it.Name = scalarString(f.value)
		case "title":
			if it.Name == "" {
				it.Name = scalarString(f.value)
			}
		case "mediaUrl":
			it.MediaURL = scalarString(f.value)
		case "isAudioOnly":
			it.AudioOnly = scalarString(f.value) == "true"
		case "details":
			if err := json.Unmarshal(f.value, &details); err != nil {
				return cluequiz.Item{}, fmt.Errorf("details: %w", err)
			}
			hasDetails = true
		}
	}
	if !hasDetails {
		for _, f := range fields {
			if skipped[f.key] || f.key == "mediaUrl" || f.key == "isAudioOnly" {
				continue
			}
			details = append(details, cluequiz.Clue{Label: label(f.key), Value: formatValue(f.value)})
		}
	}
	for _, d := range details {
		if strings.TrimSpace(d.Value) == "" {
			continue
		}
		d.Revealed = false
		it.Details = append(it.Details, d)
	}

	if err := checkItem(it); err != nil {
		return cluequiz.Item{}, err
	}
	return it, nil
}

type field struct {
	key   string
	value json.RawMessage
}

// orderedFields splits a JSON object into its members, keeping key order so
// derived clues show up the way the record was written.
func orderedFields(raw []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("record is not an object")
	}

	var out []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", key, err)
		}
		out = append(out, field{key: key, value: v})
	}
	return out, nil
}

func scalarString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func formatValue(v json.RawMessage) string {
	var str string
	if err := json.Unmarshal(v, &str); err == nil && string(bytes.TrimSpace(v)) != "null" {
		return strings.TrimSpace(str)
	}
	if s := scalarString(v); s != "" {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, e := range list {
			if s := scalarString(e); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
		return unknownValue
	}
	fields, err := orderedFields(v)
	if err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, formatValue(f.value))
		}
		return strings.Join(parts, ", ")
	}
	return unknownValue
}

func label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	// camelCase and snake_case keys become "Camel case".
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
