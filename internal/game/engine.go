// internal/game/engine.go
//
// Match-session state machine.
// Responsibilities:
//   - Start rounds from a difficulty (filter + shuffle via the words package).
//   - Track drags, validate drops against the round's own pair set, score matches.
//   - Drive the countdown and end the round on timeout or on request.
//   - Keep transient success/error signals as expiry entries on the session clock.
//
// Notes:
//   - A Session is owned by one goroutine; it holds no locks.
//   - Every countdown armed in StartRound is stopped by exactly one of: the
//     final Tick, EndRoundNow, Abandon, Close.
//   - Invalid gameplay input is absorbed as a no-op; only StartRound returns errors.
package game

import (
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/catch-the-antonym/internal/words"
)

// round is the per-round mutable state. A new one is built on every StartRound.
type round struct {
	difficulty words.Difficulty
	daily      bool
	duration   int
	startedAt  time.Time

	pairs     []words.WordPair
	byWord    map[string]words.WordPair
	byAntonym map[string]words.WordPair

	wordOrder    []string
	antonymOrder []string

	matched         map[string]struct{} // canonical pair keys
	matchedWords    map[string]struct{}
	matchedAntonyms map[string]struct{}

	timeRemaining int
	pending       *DragSource
	signals       map[CellPair]signalEntry
}

// Session owns the state of one player's rounds.
type Session struct {
	ID string

	catalog *words.Catalog
	clock   clock.Clock
	rng     *rand.Rand

	phase  Phase
	round  *round
	ticker *clock.Ticker
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for the countdown and signal expiry.
func WithClock(c clock.Clock) Option { return func(s *Session) { s.clock = c } }

// WithRand sets the default shuffle source.
func WithRand(r *rand.Rand) Option { return func(s *Session) { s.rng = r } }

// WithID sets the session identifier used in logs.
func WithID(id string) Option { return func(s *Session) { s.ID = id } }

// NewSession returns a session in PhaseNotStarted.
func NewSession(catalog *words.Catalog, opts ...Option) *Session {
	s := &Session{catalog: catalog, phase: PhaseNotStarted}
	for _, o := range opts {
		o(s)
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.clock.Now().UnixNano()))
	}
	return s
}

// StartRound builds a fresh round and arms the countdown.
// Allowed from NotStarted and Ended.
func (s *Session) StartRound(cfg RoundConfig) error {
	if s.phase == PhaseRunning {
		return ErrRoundRunning
	}
	if cfg.DurationSeconds <= 0 {
		return ErrInvalidDuration
	}
	if !cfg.Difficulty.Valid() {
		return ErrUnknownTier
	}
	rng := cfg.Rand
	if rng == nil {
		rng = s.rng
	}

	pairs := s.catalog.FilterByDifficulty(cfg.Difficulty)
	built := words.BuildRound(pairs, rng)

	r := &round{
		difficulty:      cfg.Difficulty,
		daily:           cfg.Daily,
		duration:        cfg.DurationSeconds,
		startedAt:       s.clock.Now(),
		pairs:           pairs,
		byWord:          make(map[string]words.WordPair, len(pairs)),
		byAntonym:       make(map[string]words.WordPair, len(pairs)),
		wordOrder:       built.WordOrder,
		antonymOrder:    built.AntonymOrder,
		matched:         make(map[string]struct{}),
		matchedWords:    make(map[string]struct{}),
		matchedAntonyms: make(map[string]struct{}),
		timeRemaining:   cfg.DurationSeconds,
		signals:         make(map[CellPair]signalEntry),
	}
	for _, p := range pairs {
		r.byWord[p.Word] = p
		r.byAntonym[p.Antonym] = p
	}

	s.disarm()
	s.round = r
	s.phase = PhaseRunning
	s.ticker = s.clock.Ticker(time.Second)

	log.Debug().Str("session", s.ID).Str("difficulty", string(cfg.Difficulty)).
		Int("pairs", len(pairs)).Int("seconds", cfg.DurationSeconds).Msg("round started")
	return nil
}

// Tick advances the countdown by one second. At zero the round ends.
// Ticks outside a running round are ignored.
func (s *Session) Tick() {
	if s.phase != PhaseRunning {
		return
	}
	s.round.timeRemaining--
	if s.round.timeRemaining <= 0 {
		s.round.timeRemaining = 0
		s.end("timeout")
	}
}

// BeginDrag records the drag source. Ignored unless a round is running.
func (s *Session) BeginDrag(value string, side Side, index int) {
	if s.phase != PhaseRunning || !side.Valid() {
		return
	}
	s.round.pending = &DragSource{Value: value, Side: side, Index: index}
}

// CancelDrag drops the pending drag without any other effect.
func (s *Session) CancelDrag() {
	if s.round != nil {
		s.round.pending = nil
	}
}

// AttemptDrop evaluates the pending drag against the drop target.
//
//   - no pending drag, or same side → ignored.
//   - correct and new → pair recorded, success signal.
//   - correct and already recorded → nothing.
//   - incorrect → error signal.
//
// The pending drag survives a same-side drop and is cleared in every other case.
func (s *Session) AttemptDrop(targetValue string, targetIndex int, targetSide Side) DropOutcome {
	if s.phase != PhaseRunning || s.round.pending == nil {
		return DropIgnored
	}
	r := s.round
	src := *r.pending
	if src.Side == targetSide || !targetSide.Valid() {
		return DropIgnored
	}
	r.pending = nil

	cell := CellPair{Source: src.Index, Target: targetIndex}
	pair, ok := r.pairing(src.Value, targetValue)
	if !ok {
		s.signal(cell, SignalError, src.Side, ErrorSignalTTL)
		return DropMismatch
	}
	key := PairKey(pair.Word, pair.Antonym)
	if _, done := r.matched[key]; done {
		return DropDuplicate
	}
	r.matched[key] = struct{}{}
	r.matchedWords[pair.Word] = struct{}{}
	r.matchedAntonyms[pair.Antonym] = struct{}{}
	s.signal(cell, SignalSuccess, src.Side, SuccessSignalTTL)
	return DropMatched
}

// pairing looks a and b up as an unordered pair within the round's own set.
func (r *round) pairing(a, b string) (words.WordPair, bool) {
	if p, ok := r.byWord[a]; ok && p.Antonym == b {
		return p, true
	}
	if p, ok := r.byWord[b]; ok && p.Antonym == a {
		return p, true
	}
	return words.WordPair{}, false
}

// IsResolved reports whether value has been matched on the given side.
func (s *Session) IsResolved(value string, side Side) bool {
	if s.round == nil {
		return false
	}
	switch side {
	case SideWord:
		_, ok := s.round.matchedWords[value]
		return ok
	case SideAntonym:
		_, ok := s.round.matchedAntonyms[value]
		return ok
	}
	return false
}

// EndRoundNow ends a running round immediately ("give up").
func (s *Session) EndRoundNow() {
	if s.phase != PhaseRunning {
		return
	}
	s.end("forced")
}

// Abandon ends any running round and discards it, returning the session to
// NotStarted ("back to selection").
func (s *Session) Abandon() {
	s.disarm()
	s.round = nil
	s.phase = PhaseNotStarted
}

// Close tears the session down. It is safe to call more than once.
func (s *Session) Close() {
	s.disarm()
	if s.phase == PhaseRunning {
		s.phase = PhaseEnded
		s.clearTransient()
	}
}

func (s *Session) end(reason string) {
	s.disarm()
	s.phase = PhaseEnded
	s.clearTransient()
	log.Debug().Str("session", s.ID).Str("reason", reason).
		Int("score", s.Score()).Int("total", len(s.round.pairs)).Msg("round ended")
}

func (s *Session) clearTransient() {
	if s.round == nil {
		return
	}
	s.round.pending = nil
	clear(s.round.signals)
}

func (s *Session) disarm() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// Ticks delivers countdown ticks while a round is running. It returns nil when
// the countdown is disarmed, so a select on it blocks instead of firing.
func (s *Session) Ticks() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

// Armed reports whether the countdown is live.
func (s *Session) Armed() bool { return s.ticker != nil }

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Score equals the number of recorded pairs.
func (s *Session) Score() int {
	if s.round == nil {
		return 0
	}
	return len(s.round.matched)
}

// TimeRemaining is the countdown value in seconds.
func (s *Session) TimeRemaining() int {
	if s.round == nil {
		return 0
	}
	return s.round.timeRemaining
}

// TotalPairs is the size of the round's pair set.
func (s *Session) TotalPairs() int {
	if s.round == nil {
		return 0
	}
	return len(s.round.pairs)
}

// Difficulty of the current round, empty before the first round.
func (s *Session) Difficulty() words.Difficulty {
	if s.round == nil {
		return ""
	}
	return s.round.difficulty
}

// WordOrder returns a copy of the left column.
func (s *Session) WordOrder() []string {
	if s.round == nil {
		return nil
	}
	return append([]string(nil), s.round.wordOrder...)
}

// AntonymOrder returns a copy of the right column.
func (s *Session) AntonymOrder() []string {
	if s.round == nil {
		return nil
	}
	return append([]string(nil), s.round.antonymOrder...)
}

// MatchedPairs returns the recorded canonical pair keys in no particular order.
func (s *Session) MatchedPairs() []string {
	if s.round == nil {
		return nil
	}
	out := make([]string, 0, len(s.round.matched))
	for k := range s.round.matched {
		out = append(out, k)
	}
	return out
}

// HasMatched reports whether the canonical key for (word, antonym) is recorded.
func (s *Session) HasMatched(word, antonym string) bool {
	if s.round == nil {
		return false
	}
	_, ok := s.round.matched[PairKey(word, antonym)]
	return ok
}

// PendingDrag returns the current drag source, if any.
func (s *Session) PendingDrag() (DragSource, bool) {
	if s.round == nil || s.round.pending == nil {
		return DragSource{}, false
	}
	return *s.round.pending, true
}
