// Package focus tracks a single focus session: elapsed active time, the
// interruption count, and a one-way hyperfocus latch that trips once the
// session has run continuously past a fixed threshold.
package focus

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Session states.
const (
	StateIdle    = "idle"
	StateRunning = "running"
	StatePaused  = "paused"
	StateEnded   = "ended"
)

// HyperfocusThreshold is the elapsed active time, in seconds, after which
// the hyperfocus flag latches.
const HyperfocusThreshold = 7200

// ErrInvalidState is returned for transitions not allowed in the current
// state.
var ErrInvalidState = errors.New("invalid session state")

// Summary is handed to the caller on End for persistence.
type Summary struct {
	ElapsedSeconds int  `json:"elapsed_seconds"`
	Interruptions  int  `json:"interruptions"`
	Hyperfocus     bool `json:"hyperfocus"`
}

// Session is the focus timer state machine: Idle → Running ⇄ Paused → Ended.
// While Running, an internal ticker advances elapsed time once per second.
// The ticker goroutine is owned by the session and stopped deterministically
// on Pause, End, and Close, so no timer outlives its state.
type Session struct {
	mu            sync.Mutex
	state         string
	elapsed       int // seconds of active time
	interruptions int
	hyperfocus    bool
	stop          chan struct{} // non-nil only while the ticker runs
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Start begins a fresh session, resetting elapsed time, the interruption
// count, and the hyperfocus latch. Valid from Idle or Ended.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle && s.state != StateEnded {
		return fmt.Errorf("%w: start is only valid from idle or ended, not %s", ErrInvalidState, s.state)
	}
	s.state = StateRunning
	s.elapsed = 0
	s.interruptions = 0
	s.hyperfocus = false
	s.startTickerLocked()
	return nil
}

// Pause suspends the session without resetting elapsed time.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return fmt.Errorf("%w: pause is only valid while running", ErrInvalidState)
	}
	s.state = StatePaused
	s.stopTickerLocked()
	return nil
}

// Resume continues a paused session.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return fmt.Errorf("%w: resume is only valid while paused", ErrInvalidState)
	}
	s.state = StateRunning
	s.startTickerLocked()
	return nil
}

// End stops the session and returns its summary for persistence. Valid from
// Running or Paused.
func (s *Session) End() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning && s.state != StatePaused {
		return Summary{}, fmt.Errorf("%w: end is only valid while running or paused", ErrInvalidState)
	}
	s.state = StateEnded
	s.stopTickerLocked()
	return s.summaryLocked(), nil
}

// AddInterruption records an interruption. Valid while Running or Paused.
func (s *Session) AddInterruption() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning && s.state != StatePaused {
		return fmt.Errorf("%w: interruptions only count while running or paused", ErrInvalidState)
	}
	s.interruptions++
	return nil
}

// Tick advances elapsed time by one second. The internal ticker calls this
// while Running; it is exported so tests can drive time deterministically.
// Ticks outside the Running state are ignored.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	s.elapsed++
	if s.elapsed >= HyperfocusThreshold && !s.hyperfocus {
		s.hyperfocus = true // one-way latch, cleared only by Start
	}
}

// Close releases the ticker regardless of state, for teardown of the owning
// session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickerLocked()
}

// State returns the current state.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current elapsed time, interruption count, and
// hyperfocus flag.
func (s *Session) Snapshot() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	return Summary{
		ElapsedSeconds: s.elapsed,
		Interruptions:  s.interruptions,
		Hyperfocus:     s.hyperfocus,
	}
}

func (s *Session) startTickerLocked() {
	stop := make(chan struct{})
	s.stop = stop
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.Tick()
			}
		}
	}()
}

func (s *Session) stopTickerLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}
