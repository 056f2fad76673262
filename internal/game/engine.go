// Package game implements the reaction round state machine.
//
// The Engine is driven from a single goroutine: the presentation layer
// forwards clicks to Click and timer expiry to Fire. At most one stimulus
// timer is pending at a time. Each armed round carries a token, and Fire
// ignores tokens that no longer match, so a timer that outlives its round
// (cancelled, superseded or torn down) can never change state.
package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/verte-zerg/reflex/internal/audio"
	"github.com/verte-zerg/reflex/internal/delay"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/stats"
)

var (
	// ErrClosed is returned by Click after Close.
	ErrClosed = errors.New("game engine closed")
	// ErrRoundStart marks a failure to initiate a round. It is unrecoverable.
	ErrRoundStart = errors.New("failed to start round")
)

// LockReason identifies why input is suppressed.
type LockReason uint8

const (
	// LockIntro holds input until the entrance sequence completes.
	LockIntro LockReason = 1 << iota
	// LockSettings holds input while the settings surface is open.
	LockSettings
)

// ToneSink plays feedback tones.
type ToneSink interface {
	Play(ev audio.Event)
}

// BestSink persists the best time; nil means absent.
type BestSink interface {
	SaveBestTime(best *int)
}

// AttemptSink receives every completed attempt.
type AttemptSink interface {
	RecordAttempt(a model.Attempt, d model.Difficulty)
}

// PoolFunc draws a delay pool for a difficulty.
type PoolFunc func(d model.Difficulty, rnd *rand.Rand) []int

// Options configures an Engine. Zero values select real implementations.
type Options struct {
	Clock      clockwork.Clock
	Rand       *rand.Rand
	PoolFunc   PoolFunc
	Tones      ToneSink
	Best       BestSink
	Attempts   AttemptSink
	BestTime   *int
	Difficulty model.Difficulty
	Locks      LockReason
}

// Transition reports the effect of an input.
type Transition struct {
	From    model.Phase
	To      model.Phase
	Attempt *model.Attempt
	Applied bool
}

// Round exposes the pending stimulus timer to the caller's event loop.
type Round struct {
	Token  uint64
	Delay  time.Duration
	Fire   <-chan time.Time
	Cancel <-chan struct{}
}

type pendingRound struct {
	token  uint64
	delay  time.Duration
	timer  clockwork.Timer
	cancel chan struct{}
}

// Engine is the round state machine.
type Engine struct {
	clock    clockwork.Clock
	rnd      *rand.Rand
	poolFunc PoolFunc
	tones    ToneSink
	bestSink BestSink
	attempts AttemptSink

	phase      model.Phase
	difficulty model.Difficulty
	pool       []int
	history    stats.History
	best       *int
	result     *int
	startedAt  time.Time
	locks      LockReason

	round   uint64
	pending *pendingRound
	closed  bool
}

type noTones struct{}

func (noTones) Play(audio.Event) {}

// New returns an Idle engine with a freshly drawn delay pool.
func New(opts Options) *Engine {
	e := &Engine{
		clock:    opts.Clock,
		rnd:      opts.Rand,
		poolFunc: opts.PoolFunc,
		tones:    opts.Tones,
		bestSink: opts.Best,
		attempts: opts.Attempts,
		phase:    model.PhaseIdle,
		locks:    opts.Locks,
	}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.rnd == nil {
		e.rnd = delay.NewSource()
	}
	if e.poolFunc == nil {
		e.poolFunc = delay.Pool
	}
	if e.tones == nil {
		e.tones = noTones{}
	}
	if opts.BestTime != nil {
		best := *opts.BestTime
		e.best = &best
	}
	d := opts.Difficulty
	if d == "" {
		d = model.DifficultyMedium
	}
	e.SetDifficulty(d)
	return e
}

// Phase returns the current phase.
func (e *Engine) Phase() model.Phase { return e.phase }

// Difficulty returns the active difficulty.
func (e *Engine) Difficulty() model.Difficulty { return e.difficulty }

// Pool returns a copy of the current delay pool.
func (e *Engine) Pool() []int {
	out := make([]int, len(e.pool))
	copy(out, e.pool)
	return out
}

// History returns session attempts, newest first.
func (e *Engine) History() []model.Attempt { return e.history.Attempts() }

// BestTime returns the all-time best, if any.
func (e *Engine) BestTime() (int, bool) {
	if e.best == nil {
		return 0, false
	}
	return *e.best, true
}

// LastResult returns the reaction of the round shown in Result.
func (e *Engine) LastResult() (int, bool) {
	if e.result == nil {
		return 0, false
	}
	return *e.result, true
}

// Lock suppresses input for reason.
func (e *Engine) Lock(reason LockReason) { e.locks |= reason }

// Unlock releases reason.
func (e *Engine) Unlock(reason LockReason) { e.locks &^= reason }

// Locked reports whether any input lock is held.
func (e *Engine) Locked() bool { return e.locks != 0 }

// SetDifficulty switches difficulty and redraws the pool. A pending round
// keeps the delay it was armed with.
func (e *Engine) SetDifficulty(d model.Difficulty) {
	e.difficulty = d
	e.pool = e.poolFunc(d, e.rnd)
}

// ResetBest clears the best time. Session history is kept.
func (e *Engine) ResetBest() {
	e.best = nil
	if e.bestSink != nil {
		e.bestSink.SaveBestTime(nil)
	}
	e.tones.Play(audio.EventError)
}

// Armed returns the pending round, if one is waiting for its stimulus.
func (e *Engine) Armed() (Round, bool) {
	if e.pending == nil {
		return Round{}, false
	}
	return Round{
		Token:  e.pending.token,
		Delay:  e.pending.delay,
		Fire:   e.pending.timer.Chan(),
		Cancel: e.pending.cancel,
	}, true
}

// Click handles a user click. Locked input is dropped without effect.
func (e *Engine) Click() (Transition, error) {
	if e.closed {
		return Transition{From: e.phase, To: e.phase}, ErrClosed
	}
	if e.Locked() {
		return Transition{From: e.phase, To: e.phase}, nil
	}
	switch e.phase {
	case model.PhaseWaiting:
		e.cancelPending()
		e.tones.Play(audio.EventError)
		return e.move(model.PhaseTooSoon, nil), nil
	case model.PhaseActive:
		return e.finish(), nil
	default:
		return e.start()
	}
}

// Fire moves Waiting to Active when token names the pending round.
func (e *Engine) Fire(token uint64) Transition {
	if e.closed || e.pending == nil || e.pending.token != token || e.phase != model.PhaseWaiting {
		return Transition{From: e.phase, To: e.phase}
	}
	e.pending = nil
	e.startedAt = e.clock.Now()
	return e.move(model.PhaseActive, nil)
}

// Close cancels any pending timer. Subsequent Fire calls are no-ops.
func (e *Engine) Close() {
	e.cancelPending()
	e.closed = true
}

func (e *Engine) start() (Transition, error) {
	ms := delay.Pick(e.pool, e.rnd)
	if ms <= 0 {
		return Transition{From: e.phase, To: e.phase}, fmt.Errorf("%w: invalid delay %dms", ErrRoundStart, ms)
	}
	e.tones.Play(audio.EventStart)
	e.result = nil
	e.round++
	d := time.Duration(ms) * time.Millisecond
	e.pending = &pendingRound{
		token:  e.round,
		delay:  d,
		timer:  e.clock.NewTimer(d),
		cancel: make(chan struct{}),
	}
	return e.move(model.PhaseWaiting, nil), nil
}

func (e *Engine) finish() Transition {
	elapsed := e.clock.Since(e.startedAt)
	reaction := int(math.Round(float64(elapsed) / float64(time.Millisecond)))
	if reaction < 0 {
		reaction = 0
	}
	e.tones.Play(audio.EventSuccess)
	attempt := model.Attempt{Timestamp: e.clock.Now().UnixMilli(), Time: reaction}
	e.result = &reaction
	e.history.Add(attempt)
	if next := stats.NextBest(e.best, reaction); next != e.best {
		e.best = next
		if e.bestSink != nil {
			e.bestSink.SaveBestTime(e.best)
		}
	}
	if e.attempts != nil {
		e.attempts.RecordAttempt(attempt, e.difficulty)
	}
	return e.move(model.PhaseResult, &attempt)
}

func (e *Engine) move(to model.Phase, attempt *model.Attempt) Transition {
	tr := Transition{From: e.phase, To: to, Attempt: attempt, Applied: true}
	e.phase = to
	return tr
}

func (e *Engine) cancelPending() {
	if e.pending == nil {
		return
	}
	stopAndDrainTimer(e.pending.timer)
	close(e.pending.cancel)
	e.pending = nil
}

func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
