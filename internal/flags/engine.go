package flags

import (
	"log/slog"
	"slices"
	"time"
)

// PenaltyShowTime is how long a penalty notice stays on the lights before
// normal local-flag handling takes back over.
const PenaltyShowTime = 2 * time.Second

// Engine tracks the current flag state and forwards a signal whenever the
// visible display should change. It is not safe for concurrent use; drive it
// from a single goroutine.
type Engine struct {
	emitter Emitter
	log     *slog.Logger
	now     func() time.Time

	globalFlag   GlobalFlag
	localFlag    LocalFlag
	raceFinished bool
	penaltySince time.Time // zero when no penalty notice is showing
	roster       []uint8
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes the engine's diagnostics to log.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithNow overrides the clock consulted for penalty expiry.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New returns an Engine in the all-clear state that forwards every decided
// signal to emitter.
func New(emitter Emitter, opts ...Option) *Engine {
	e := &Engine{
		emitter: emitter,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// displayForLocal decides what a change leaves on the lights when no global
// flag masks it. The bool reports whether anything should be shown at all:
// in the remaining combinations the penalty or finish path already owns the
// display and the engine stays quiet.
func displayForLocal(flag LocalFlag, penalty, finished bool) (Signal, bool) {
	switch {
	case flag == LocalNone && !penalty && !finished:
		return Signal{Code: CodeClear}, true
	case flag == LocalGreen && !finished:
		return Signal{Code: CodeGreen}, true
	case flag == LocalYellow || flag == LocalBlue:
		return Signal{Code: flag.Code()}, true
	}
	return Signal{}, false
}

// SetGlobalFlag raises a session-wide flag. The signal goes out immediately
// unless the same flag is already active.
func (e *Engine) SetGlobalFlag(flag GlobalFlag) {
	e.setGlobalFlagValue(flag)
}

// ClearGlobalFlag lifts the session-wide flag and restores whatever the
// local state wants shown.
func (e *Engine) ClearGlobalFlag() {
	e.setGlobalFlagValue(GlobalNone)
}

func (e *Engine) setGlobalFlagValue(flag GlobalFlag) {
	e.checkPenalty()
	if e.globalFlag == flag {
		return
	}
	e.globalFlag = flag
	e.log.Debug("global flag changed", "flag", flag)

	if flag != GlobalNone {
		e.emit(Signal{Code: flag.Code()})
		return
	}

	if signal, ok := displayForLocal(e.localFlag, e.penaltyShowing(), e.raceFinished); ok {
		e.emit(signal)
	}
}

// SetLocalFlag raises a flag for the observed car.
func (e *Engine) SetLocalFlag(flag LocalFlag) {
	e.setLocalFlagValue(flag)
}

// ClearLocalFlag records that no local flag is being shown to the observed
// car any more.
func (e *Engine) ClearLocalFlag() {
	e.setLocalFlagValue(LocalNone)
}

func (e *Engine) setLocalFlagValue(flag LocalFlag) {
	e.checkPenalty()
	if e.localFlag == flag {
		return
	}
	e.localFlag = flag
	e.log.Debug("local flag changed", "flag", flag)

	if e.globalFlag != GlobalNone {
		return
	}

	if signal, ok := displayForLocal(flag, e.penaltyShowing(), e.raceFinished); ok {
		e.emit(signal)
	}
}

// SetPenalty puts a penalty notice for the given vehicle index on the lights
// unless a global flag masks it. The notice expires on its own after
// PenaltyShowTime.
func (e *Engine) SetPenalty(driver int) {
	e.penaltySince = e.now()
	e.log.Debug("penalty issued", "driver", driver)
	if e.globalFlag == GlobalNone {
		e.emit(Signal{Code: CodePenalty, Driver: driver})
	}
}

// Finish marks the race as finished and shows the chequered flag unless a
// global flag masks it.
func (e *Engine) Finish() {
	e.raceFinished = true
	e.log.Debug("race finished")
	if e.globalFlag == GlobalNone {
		e.emit(Signal{Code: CodeChequered})
	}
}

// Reset returns the engine to its initial state at a session boundary. It
// emits nothing; the consumer is expected to be in a neutral state already.
func (e *Engine) Reset() {
	e.globalFlag = GlobalNone
	e.localFlag = LocalNone
	e.raceFinished = false
	e.penaltySince = time.Time{}
	e.roster = nil
	e.log.Debug("state reset")
}

// SetRoster replaces the vehicle index to race number mapping. The roster is
// not consulted by the transition rules; it is kept for consumers that want
// to address lights by car number.
func (e *Engine) SetRoster(numbers []uint8) {
	e.roster = slices.Clone(numbers)
	e.log.Debug("roster updated", "cars", len(numbers))
}

// checkPenalty drops an expired penalty notice. Expiry never emits on its
// own; it only changes what later transitions decide.
func (e *Engine) checkPenalty() {
	if !e.penaltySince.IsZero() && e.now().Sub(e.penaltySince) > PenaltyShowTime {
		e.penaltySince = time.Time{}
	}
}

func (e *Engine) penaltyShowing() bool {
	return !e.penaltySince.IsZero()
}

func (e *Engine) emit(signal Signal) {
	if err := e.emitter.Emit(signal); err != nil {
		e.log.Error("failed to forward signal", "signal", signal.Wire(), "error", err)
	}
}
