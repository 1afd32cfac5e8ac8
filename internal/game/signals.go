// internal/game/signals.go
//
// Transient success/error feedback for pairing attempts.
// Signals are expiry entries on the session clock: read paths skip expired
// ones, SweepSignals prunes them, and NextSignalExpiry tells the host when
// the next one lapses.

package game

import (
	"sort"
	"time"
)

// signalEntry is one scheduled-expiry feedback flag.
type signalEntry struct {
	Kind       Signal
	SourceSide Side
	ExpiresAt  time.Time
}

// SignalView is a live signal as exposed to the UI.
type SignalView struct {
	Source      int    `json:"source"`
	Target      int    `json:"target"`
	SourceSide  Side   `json:"sourceSide"`
	Kind        Signal `json:"kind"`
	RemainingMs int64  `json:"remainingMs"`
}

func (s *Session) signal(cell CellPair, kind Signal, from Side, ttl time.Duration) {
	s.round.signals[cell] = signalEntry{
		Kind:       kind,
		SourceSide: from,
		ExpiresAt:  s.clock.Now().Add(ttl),
	}
}

// SignalAt returns the live signal for (source, target), or SignalNone once it
// has expired.
func (s *Session) SignalAt(source, target int) Signal {
	if s.round == nil {
		return SignalNone
	}
	e, ok := s.round.signals[CellPair{Source: source, Target: target}]
	if !ok || !s.clock.Now().Before(e.ExpiresAt) {
		return SignalNone
	}
	return e.Kind
}

// SweepSignals removes expired entries and returns how many were removed.
func (s *Session) SweepSignals() int {
	if s.round == nil {
		return 0
	}
	now := s.clock.Now()
	n := 0
	for cell, e := range s.round.signals {
		if !now.Before(e.ExpiresAt) {
			delete(s.round.signals, cell)
			n++
		}
	}
	return n
}

// NextSignalExpiry returns the earliest expiry among live signals.
func (s *Session) NextSignalExpiry() (time.Time, bool) {
	if s.round == nil {
		return time.Time{}, false
	}
	now := s.clock.Now()
	var next time.Time
	found := false
	for _, e := range s.round.signals {
		if !now.Before(e.ExpiresAt) {
			continue
		}
		if !found || e.ExpiresAt.Before(next) {
			next, found = e.ExpiresAt, true
		}
	}
	return next, found
}

// Signals lists live signals ordered by source then target.
func (s *Session) Signals() []SignalView {
	if s.round == nil {
		return nil
	}
	now := s.clock.Now()
	out := []SignalView{}
	for cell, e := range s.round.signals {
		if !now.Before(e.ExpiresAt) {
			continue
		}
		out = append(out, SignalView{
			Source:      cell.Source,
			Target:      cell.Target,
			SourceSide:  e.SourceSide,
			Kind:        e.Kind,
			RemainingMs: e.ExpiresAt.Sub(now).Milliseconds(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// cellSignal derives the signal shown on a single card: the card is either the
// source or the target of a live entry. Success wins over error.
func cellSignal(live []SignalView, side Side, index int) Signal {
	got := SignalNone
	for _, sv := range live {
		hit := (sv.SourceSide == side && sv.Source == index) ||
			(sv.SourceSide != side && sv.Target == index)
		if !hit {
			continue
		}
		if sv.Kind == SignalSuccess {
			return SignalSuccess
		}
		got = sv.Kind
	}
	return got
}
