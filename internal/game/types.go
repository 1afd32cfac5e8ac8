// internal/game/types.go
//
// Core type definitions for the match-session engine.
// Defines:
//   - Phase: round lifecycle (not_started → running → ended).
//   - Side: which column a card lives in (word / antonym).
//   - Signal: advisory per-cell feedback (success / error) for the UI.
//   - RoundConfig, DragSource, CellPair, DropOutcome.

package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/robalobadob/catch-the-antonym/internal/words"
)

// Phase is the round lifecycle state.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseEnded      Phase = "ended"
)

// Side identifies a card column.
type Side string

const (
	SideWord    Side = "word"
	SideAntonym Side = "antonym"
)

// Valid reports whether s is one of the two columns.
func (s Side) Valid() bool { return s == SideWord || s == SideAntonym }

// Signal is short-lived feedback for a pairing attempt. Game logic never reads it.
type Signal string

const (
	SignalNone    Signal = ""
	SignalSuccess Signal = "success"
	SignalError   Signal = "error"
)

// Signal lifetimes.
const (
	SuccessSignalTTL = 1000 * time.Millisecond
	ErrorSignalTTL   = 500 * time.Millisecond
)

// pairSeparator joins word and antonym into a canonical pair key. The
// catalog rejects entries containing it.
const pairSeparator = words.KeySeparator

var (
	ErrRoundRunning    = errors.New("round already running")
	ErrInvalidDuration = errors.New("round duration must be positive")
	ErrUnknownTier     = errors.New("unknown difficulty")
)

// RoundConfig is produced once per round start.
type RoundConfig struct {
	Difficulty      words.Difficulty
	DurationSeconds int
	// Rand overrides the session's shuffle source for this round (daily rounds).
	Rand *rand.Rand
	// Daily marks the round as using the shared daily order; informational.
	Daily bool
}

// DragSource is the card a drag started from.
type DragSource struct {
	Value string `json:"value"`
	Side  Side   `json:"side"`
	Index int    `json:"index"`
}

// CellPair keys a transient signal by (source index, target index).
type CellPair struct {
	Source int
	Target int
}

// DropOutcome reports what AttemptDrop did. Purely informational.
type DropOutcome string

const (
	DropIgnored   DropOutcome = "ignored"
	DropMatched   DropOutcome = "matched"
	DropDuplicate DropOutcome = "duplicate"
	DropMismatch  DropOutcome = "mismatch"
)

// PairKey is the canonical, direction-agnostic key of a word/antonym pairing.
func PairKey(word, antonym string) string {
	return word + pairSeparator + antonym
}
