package control

import (
	"time"

	"smart-traffic-control/types"
)

// Config tunes the switch decision engine.
type Config struct {
	// WindowSize is the smoothing window length in frames.
	WindowSize int
	// SwitchThreshold is the smoothed-count margin one side must exceed the
	// other by before a switch is considered. The comparison is strict: a
	// difference exactly equal to the threshold never qualifies.
	SwitchThreshold float64
	// MinSwitchInterval is the hard lower bound between consecutive green
	// phase changes, independent of the count margin.
	MinSwitchInterval time.Duration
}

// ToyConfig returns the tuning for toy vehicle demos: any detectable
// difference qualifies.
func ToyConfig() Config {
	return Config{
		WindowSize:        DefaultWindowSize,
		SwitchThreshold:   0,
		MinSwitchInterval: 5 * time.Second,
	}
}

// RealConfig returns the tuning for real vehicles, requiring a clear margin.
func RealConfig() Config {
	return Config{
		WindowSize:        DefaultWindowSize,
		SwitchThreshold:   1,
		MinSwitchInterval: 5 * time.Second,
	}
}

// SwitchState tracks which side currently holds the green phase. Exactly one
// side is green at any time.
type SwitchState struct {
	ActiveSide types.Side
	LastSwitch time.Time
}

// Decision is the outcome of one qualifying evaluation: the winning side
// should receive green and the other red.
type Decision struct {
	Winner types.Side
	Left   float64
	Right  float64
}

// Engine decides, once per frame, whether the green phase should move. It is
// the sole mutator of its SwitchState; the host loop is single-threaded so no
// locking is needed.
type Engine struct {
	cfg   Config
	state SwitchState
}

// NewEngine creates an Engine. The zero LastSwitch means the first qualifying
// evaluation may switch immediately.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// State returns a copy of the current switch state.
func (e *Engine) State() SwitchState {
	return e.state
}

// Reset restarts the rate limiter from now without moving the green phase.
func (e *Engine) Reset(now time.Time) {
	e.state.LastSwitch = now
}

// Evaluate compares the smoothed counts and returns a Decision when the green
// phase should be asserted, or nil for no action. A pair of commands is due
// exactly when the margin exceeds the threshold and the minimum interval has
// elapsed; re-affirming the side that already holds green emits the same pair
// but does not reset the interval timer.
func (e *Engine) Evaluate(now time.Time, left, right float64) *Decision {
	var winner types.Side
	var diff float64
	switch {
	case left > right:
		winner, diff = types.SideLeft, left-right
	case right > left:
		winner, diff = types.SideRight, right-left
	default:
		// Tie: never a reason to move.
		return nil
	}

	if diff <= e.cfg.SwitchThreshold {
		return nil
	}
	if now.Sub(e.state.LastSwitch) < e.cfg.MinSwitchInterval {
		return nil
	}

	if winner != e.state.ActiveSide {
		e.state.ActiveSide = winner
		e.state.LastSwitch = now
	}
	return &Decision{Winner: winner, Left: left, Right: right}
}
