package words

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIntegrity(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, c.Len())
	assert.Equal(t, map[Difficulty]int{Easy: 10, Medium: 10, Hard: 10}, c.Stats())
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("  Medium ")
	require.NoError(t, err)
	assert.Equal(t, Medium, d)

	_, err = ParseDifficulty("nightmare")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]WordPair{
		{Word: "Hot", Antonym: "Cold", Difficulty: Easy},
		{Word: "Hot", Antonym: "Chilly", Difficulty: Hard},
	})
	assert.ErrorIs(t, err, ErrDuplicateWord)

	_, err = NewCatalog([]WordPair{
		{Word: "Hot", Antonym: "Cold", Difficulty: Easy},
		{Word: "Warm", Antonym: "Cold", Difficulty: Easy},
	})
	assert.ErrorIs(t, err, ErrDuplicateAntonym)

	_, err = NewCatalog([]WordPair{{Word: " ", Antonym: "Cold", Difficulty: Easy}})
	assert.ErrorIs(t, err, ErrEmptyEntry)

	_, err = NewCatalog(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewCatalog([]WordPair{{Word: "Hot", Antonym: "Cold", Difficulty: "tricky"}})
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestNewCatalogRejectsKeySeparator(t *testing.T) {
	// a|b + c and a + b|c would share the key "a|b|c"
	_, err := NewCatalog([]WordPair{
		{Word: "a|b", Antonym: "c", Difficulty: Easy},
		{Word: "a", Antonym: "b|c", Difficulty: Easy},
	})
	assert.ErrorIs(t, err, ErrReservedSeparator)

	_, err = NewCatalog([]WordPair{{Word: "Hot", Antonym: "Co|ld", Difficulty: Easy}})
	assert.ErrorIs(t, err, ErrReservedSeparator)

	_, err = Parse([]byte("pairs:\n  - { word: 'Up|', antonym: Down, difficulty: hard }\n"))
	assert.ErrorIs(t, err, ErrReservedSeparator)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := []byte("pairs:\n  - { word: Hot, antonym: Cold, difficulty: EASY }\n  - { word: Up, antonym: Down, difficulty: hard }\n")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []WordPair{
		{Word: "Hot", Antonym: "Cold", Difficulty: Easy},
		{Word: "Up", Antonym: "Down", Difficulty: Hard},
	}, c.Pairs())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFilterByDifficultyKeepsCatalogOrder(t *testing.T) {
	c := Default()
	easy := c.FilterByDifficulty(Easy)
	require.Len(t, easy, 10)
	assert.Equal(t, "Abundant", easy[0].Word)
	assert.Equal(t, "Prosper", easy[9].Word)
	for _, p := range easy {
		assert.Equal(t, Easy, p.Difficulty)
	}

	c2, err := NewCatalog([]WordPair{{Word: "Hot", Antonym: "Cold", Difficulty: Easy}})
	require.NoError(t, err)
	assert.Empty(t, c2.FilterByDifficulty(Hard))
}

func TestBuildRoundIsPermutationOfFilteredSet(t *testing.T) {
	pairs := Default().FilterByDifficulty(Medium)
	rng := rand.New(rand.NewSource(7))

	r := BuildRound(pairs, rng)

	wantWords := make([]string, 0, len(pairs))
	wantAntonyms := make([]string, 0, len(pairs))
	for _, p := range pairs {
		wantWords = append(wantWords, p.Word)
		wantAntonyms = append(wantAntonyms, p.Antonym)
	}
	assert.ElementsMatch(t, wantWords, r.WordOrder)
	assert.ElementsMatch(t, wantAntonyms, r.AntonymOrder)
}

func TestBuildRoundDrawsFreshShuffles(t *testing.T) {
	pairs := Default().FilterByDifficulty(Hard)
	rng := rand.New(rand.NewSource(42))

	first := BuildRound(pairs, rng)
	differs := false
	for i := 0; i < 20 && !differs; i++ {
		next := BuildRound(pairs, rng)
		differs = !equalStrings(first.WordOrder, next.WordOrder)
	}
	assert.True(t, differs, "expected later rounds to reshuffle")
}

func TestBuildRoundSameSeedSameOrder(t *testing.T) {
	pairs := Default().FilterByDifficulty(Easy)
	a := BuildRound(pairs, rand.New(rand.NewSource(99)))
	b := BuildRound(pairs, rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}

func TestBuildRoundEmpty(t *testing.T) {
	r := BuildRound(nil, rand.New(rand.NewSource(1)))
	assert.Empty(t, r.WordOrder)
	assert.Empty(t, r.AntonymOrder)
}

func TestShuffleCoversAllPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[int]map[int]bool{}
	for i := 0; i < 500; i++ {
		s := []int{0, 1, 2, 3}
		Shuffle(rng, s)
		sorted := append([]int(nil), s...)
		sort.Ints(sorted)
		require.Equal(t, []int{0, 1, 2, 3}, sorted)
		for pos, v := range s {
			if seen[v] == nil {
				seen[v] = map[int]bool{}
			}
			seen[v][pos] = true
		}
	}
	for v := 0; v < 4; v++ {
		assert.Len(t, seen[v], 4, "value %d never reached every position", v)
	}
}

func TestTiers(t *testing.T) {
	tiers := Default().Tiers()
	require.Len(t, tiers, 3)
	assert.Equal(t, Easy, tiers[0].Level)
	assert.Equal(t, "Expert level", tiers[2].Description)
	for _, tr := range tiers {
		assert.Equal(t, 10, tr.Pairs)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
