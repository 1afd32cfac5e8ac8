// internal/words/round.go
//
// Round building: turns a filtered pair set into the two card columns.
//
// The word column and the antonym column are shuffled by two independent
// Fisher–Yates passes over the same pair set, so a word's position says
// nothing about where its antonym sits.

package words

import (
	"math/rand"

	"github.com/samber/lo"
)

// Round holds the presentation order of both columns for one round.
type Round struct {
	WordOrder    []string
	AntonymOrder []string
}

// BuildRound shuffles the words and the antonyms of pairs independently.
// Every call draws fresh values from rng; nothing is cached between rounds.
func BuildRound(pairs []WordPair, rng *rand.Rand) Round {
	wordOrder := lo.Map(pairs, func(p WordPair, _ int) string { return p.Word })
	antonymOrder := lo.Map(pairs, func(p WordPair, _ int) string { return p.Antonym })
	Shuffle(rng, wordOrder)
	Shuffle(rng, antonymOrder)
	return Round{WordOrder: wordOrder, AntonymOrder: antonymOrder}
}

// Shuffle is an in-place Fisher–Yates shuffle: for i from the end down to 1,
// swap s[i] with s[j] where j is uniform in [0, i].
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
