// internal/game/view.go
//
// Render snapshot of a session, encoded as-is into websocket state frames.

package game

import (
	"github.com/samber/lo"

	"github.com/robalobadob/catch-the-antonym/internal/words"
)

// WarningSeconds is the countdown value at and below which the timer is
// flagged as running low.
const WarningSeconds = 10

// Card is one cell of a column as the UI renders it.
type Card struct {
	Value    string `json:"value"`
	Index    int    `json:"index"`
	Resolved bool   `json:"resolved"`
	Signal   Signal `json:"signal,omitempty"`
}

// View is the render state derived from a session. It carries no references
// into the session, so it can be encoded after the session moves on.
type View struct {
	ID            string           `json:"id,omitempty"`
	Phase         Phase            `json:"phase"`
	Difficulty    words.Difficulty `json:"difficulty,omitempty"`
	Daily         bool             `json:"daily,omitempty"`
	Score         int              `json:"score"`
	TimeRemaining int              `json:"timeRemaining"`
	Warning       bool             `json:"warning"`
	TotalPairs    int              `json:"totalPairs"`
	Words         []Card           `json:"words"`
	Antonyms      []Card           `json:"antonyms"`
	Pending       *DragSource      `json:"pending,omitempty"`
	Signals       []SignalView     `json:"signals"`
	Summary       *Summary         `json:"summary,omitempty"`
}

// View snapshots the session for rendering.
func (s *Session) View() View {
	v := View{
		ID:            s.ID,
		Phase:         s.phase,
		Score:         s.Score(),
		TimeRemaining: s.TimeRemaining(),
		TotalPairs:    s.TotalPairs(),
		Words:         []Card{},
		Antonyms:      []Card{},
		Signals:       []SignalView{},
	}
	if s.round == nil {
		return v
	}
	v.Difficulty = s.round.difficulty
	v.Daily = s.round.daily
	v.Warning = s.phase == PhaseRunning && s.round.timeRemaining <= WarningSeconds

	live := s.Signals()
	v.Signals = live
	v.Words = lo.Map(s.round.wordOrder, func(w string, i int) Card {
		return Card{Value: w, Index: i, Resolved: s.IsResolved(w, SideWord), Signal: cellSignal(live, SideWord, i)}
	})
	v.Antonyms = lo.Map(s.round.antonymOrder, func(a string, i int) Card {
		return Card{Value: a, Index: i, Resolved: s.IsResolved(a, SideAntonym), Signal: cellSignal(live, SideAntonym, i)}
	})
	if p, ok := s.PendingDrag(); ok {
		v.Pending = &p
	}
	if sum, ok := s.Summary(); ok {
		v.Summary = &sum
	}
	return v
}
