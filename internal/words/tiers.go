// internal/words/tiers.go
//
// Difficulty tiers as shown on the selection screen (GET /difficulties).

package words

import "github.com/samber/lo"

// Tier describes a difficulty for the selection screen.
type Tier struct {
	Level       Difficulty `json:"level"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Pairs       int        `json:"pairs"`
}

var tierText = map[Difficulty]Tier{
	Easy:   {Level: Easy, Label: "Easy", Description: "Perfect for beginners", Color: "#22c55e"},
	Medium: {Level: Medium, Label: "Medium", Description: "Challenge yourself", Color: "#eab308"},
	Hard:   {Level: Hard, Label: "Hard", Description: "Expert level", Color: "#ef4444"},
}

// Tiers returns the three tiers with their pair counts in c.
func (c *Catalog) Tiers() []Tier {
	stats := c.Stats()
	return lo.Map(Difficulties(), func(d Difficulty, _ int) Tier {
		t := tierText[d]
		t.Pairs = stats[d]
		return t
	})
}
