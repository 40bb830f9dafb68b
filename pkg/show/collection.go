package show

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

var titleFolder = cases.Fold()

// NormalizeTitle folds case and collapses whitespace so that "Foo  Bar" and
// "foo bar" compare equal for dedup purposes.
func NormalizeTitle(title string) string {
	folded := titleFolder.String(title)
	return strings.Join(strings.Fields(folded), " ")
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a stable id slug from a title
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "show"
	}
	return slug
}

// Collection is the full set of tracked shows keyed by id. It is persisted
// and replaced as one unit.
type Collection struct {
	shows map[string]Show
}

func NewCollection(shows ...Show) (*Collection, error) {
	c := &Collection{shows: make(map[string]Show, len(shows))}
	for _, s := range shows {
		if err := c.Add(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add inserts a new show. An existing id is a hard error.
func (c *Collection) Add(s Show) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if _, ok := c.shows[s.ID]; ok {
		return DuplicateIDError{ID: s.ID}
	}

	c.shows[s.ID] = s
	return nil
}

// Update replaces an existing show
func (c *Collection) Update(s Show) error {
	if _, ok := c.shows[s.ID]; !ok {
		return fmt.Errorf("show %q not in collection", s.ID)
	}

	if err := s.Validate(); err != nil {
		return err
	}

	c.shows[s.ID] = s
	return nil
}

func (c *Collection) Get(id string) (Show, bool) {
	s, ok := c.shows[id]
	return s, ok
}

func (c *Collection) Len() int {
	return len(c.shows)
}

// All returns every show sorted by id
func (c *Collection) All() []Show {
	out := make([]Show, 0, len(c.shows))
	for _, s := range c.shows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByState returns shows in the given state sorted by id
func (c *Collection) ByState(state State) []Show {
	out := make([]Show, 0)
	for _, s := range c.shows {
		if s.State == state {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasTitle reports whether any show in any state has the same normalized title
func (c *Collection) HasTitle(title string) bool {
	want := NormalizeTitle(title)
	for _, s := range c.shows {
		if NormalizeTitle(s.Title) == want {
			return true
		}
	}
	return false
}

// MintID derives a fresh unique id slug for a title, suffixing on collision
func (c *Collection) MintID(title string) string {
	slug := Slugify(title)
	if _, ok := c.shows[slug]; !ok {
		return slug
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", slug, n)
		if _, ok := c.shows[candidate]; !ok {
			return candidate
		}
	}
}

// Clone returns a deep copy safe to mutate without touching the original
func (c *Collection) Clone() *Collection {
	shows := make(map[string]Show, len(c.shows))
	for id, s := range c.shows {
		shows[id] = s
	}
	return &Collection{shows: shows}
}

type collectionFile struct {
	Shows []Show `yaml:"shows"`
}

// Encode serializes the collection with shows sorted by id so repeated runs
// over identical state produce identical bytes
func (c *Collection) Encode() ([]byte, error) {
	return yaml.Marshal(collectionFile{Shows: c.All()})
}

// DecodeCollection parses a serialized collection, validating every record
// and rejecting id collisions
func DecodeCollection(b []byte) (*Collection, error) {
	var file collectionFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("failed to parse collection: %w", err)
	}

	return NewCollection(file.Shows...)
}
