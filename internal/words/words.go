// internal/words/words.go
//
// Word catalog for the antonym game.
//
// Responsibilities:
//   - Define the WordPair triple (word, antonym, difficulty) and the three tiers.
//   - Load the catalog from a YAML file or fall back to the embedded default.
//   - Enforce the catalog invariant: every word and every antonym appears once,
//     and none contains KeySeparator.
//   - Filter the catalog down to one tier, preserving catalog order.
//
// Catalog file format (YAML):
//
//	pairs:
//	  - { word: Abundant, antonym: Scarce, difficulty: easy }
//
// Environment variables (read by internal/config, passed to Load):
//
//	WORDS_CATALOG_FILE=/path/to/catalog.yaml
package words

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var embeddedCatalog []byte

// Difficulty is one of the three catalog partitions.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the tiers in presentation order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	return lo.Contains(Difficulties(), d)
}

// ParseDifficulty normalizes s (case and surrounding space) into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

var (
	ErrUnknownDifficulty = errors.New("words: unknown difficulty")
	ErrDuplicateWord     = errors.New("words: duplicate word")
	ErrDuplicateAntonym  = errors.New("words: duplicate antonym")
	ErrEmptyEntry        = errors.New("words: empty word or antonym")
	ErrEmptyCatalog      = errors.New("words: catalog is empty")
	ErrReservedSeparator = errors.New("words: entry contains the pair key separator")
)

// KeySeparator joins a word and its antonym into a pair key. Catalog entries
// may not contain it, so every key splits back into exactly one pairing.
const KeySeparator = "|"

// WordPair is one immutable catalog entry.
type WordPair struct {
	Word       string     `yaml:"word" json:"word"`
	Antonym    string     `yaml:"antonym" json:"antonym"`
	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`
}

// Catalog is a validated, read-only list of word pairs.
// It is safe to share between sessions.
type Catalog struct {
	pairs []WordPair
}

type catalogFile struct {
	Pairs []WordPair `yaml:"pairs"`
}

// NewCatalog validates pairs and returns a catalog holding a private copy.
// Words are unique across the catalog, and so are antonyms.
func NewCatalog(pairs []WordPair) (*Catalog, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyCatalog
	}
	seenWords := make(map[string]struct{}, len(pairs))
	seenAntonyms := make(map[string]struct{}, len(pairs))
	out := make([]WordPair, 0, len(pairs))
	for i, p := range pairs {
		p.Word = strings.TrimSpace(p.Word)
		p.Antonym = strings.TrimSpace(p.Antonym)
		if p.Word == "" || p.Antonym == "" {
			return nil, fmt.Errorf("%w at entry %d", ErrEmptyEntry, i)
		}
		if strings.Contains(p.Word, KeySeparator) || strings.Contains(p.Antonym, KeySeparator) {
			return nil, fmt.Errorf("%w at entry %d: %s / %s", ErrReservedSeparator, i, p.Word, p.Antonym)
		}
		d, err := ParseDifficulty(string(p.Difficulty))
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, p.Word, err)
		}
		p.Difficulty = d
		if _, dup := seenWords[p.Word]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWord, p.Word)
		}
		if _, dup := seenAntonyms[p.Antonym]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAntonym, p.Antonym)
		}
		seenWords[p.Word] = struct{}{}
		seenAntonyms[p.Antonym] = struct{}{}
		out = append(out, p)
	}
	return &Catalog{pairs: out}, nil
}

// Load reads a catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	data := embeddedCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(f.Pairs)
}

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Pairs returns a copy of every entry in catalog order.
func (c *Catalog) Pairs() []WordPair {
	return append([]WordPair(nil), c.pairs...)
}

// Len is the total number of pairs.
func (c *Catalog) Len() int { return len(c.pairs) }

// FilterByDifficulty returns the entries of tier d in catalog order.
// An empty result is not an error; callers must handle a zero-pair round.
func (c *Catalog) FilterByDifficulty(d Difficulty) []WordPair {
	return FilterByDifficulty(c.pairs, d)
}

// FilterByDifficulty is the slice form of Catalog.FilterByDifficulty.
func FilterByDifficulty(pairs []WordPair, d Difficulty) []WordPair {
	return lo.Filter(pairs, func(p WordPair, _ int) bool {
		return p.Difficulty == d
	})
}

// Stats returns the number of pairs per tier. Every tier is present, even
// when it has no pairs.
func (c *Catalog) Stats() map[Difficulty]int {
	out := lo.SliceToMap(Difficulties(), func(d Difficulty) (Difficulty, int) { return d, 0 })
	for d, n := range lo.CountValuesBy(c.pairs, func(p WordPair) Difficulty { return p.Difficulty }) {
		out[d] = n
	}
	return out
}
