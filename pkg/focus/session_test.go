package focus

import (
	"errors"
	"testing"
)

func runningSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Tests drive time through Tick directly; the wall-clock ticker is not
	// needed and must not race the assertions.
	s.Close()
	return s
}

// TestHyperfocusLatch verifies the flag stays false through 7,199 seconds,
// trips at 7,200, and remains set through further ticks.
func TestHyperfocusLatch(t *testing.T) {
	s := runningSession(t)

	for i := 0; i < HyperfocusThreshold-1; i++ {
		s.Tick()
	}
	if snap := s.Snapshot(); snap.Hyperfocus {
		t.Fatalf("hyperfocus at %d seconds: want false", snap.ElapsedSeconds)
	}

	s.Tick()
	if snap := s.Snapshot(); !snap.Hyperfocus {
		t.Fatalf("hyperfocus at %d seconds: want true", snap.ElapsedSeconds)
	}

	for i := 0; i < 100; i++ {
		s.Tick()
	}
	if !s.Snapshot().Hyperfocus {
		t.Error("hyperfocus latch must stay set through further ticks")
	}
}

// TestStartResetsEverything verifies Start clears elapsed time, the
// interruption count, and the hyperfocus latch.
func TestStartResetsEverything(t *testing.T) {
	s := runningSession(t)
	for i := 0; i < HyperfocusThreshold; i++ {
		s.Tick()
	}
	s.AddInterruption()
	if _, err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	s.Close()

	snap := s.Snapshot()
	if snap.ElapsedSeconds != 0 || snap.Interruptions != 0 || snap.Hyperfocus {
		t.Errorf("start must reset the session, got %+v", snap)
	}
}

// TestPauseStopsTime verifies ticks are ignored while paused and elapsed
// time survives pause/resume.
func TestPauseStopsTime(t *testing.T) {
	s := runningSession(t)
	for i := 0; i < 10; i++ {
		s.Tick()
	}

	if err := s.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	s.Tick() // must not advance
	if got := s.Snapshot().ElapsedSeconds; got != 10 {
		t.Errorf("elapsed while paused: want 10, got %d", got)
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	s.Close()
	s.Tick()
	if got := s.Snapshot().ElapsedSeconds; got != 11 {
		t.Errorf("elapsed after resume: want 11, got %d", got)
	}
}

// TestEndReturnsSummary verifies End hands back elapsed time, interruptions,
// and the hyperfocus flag.
func TestEndReturnsSummary(t *testing.T) {
	s := runningSession(t)
	for i := 0; i < 90; i++ {
		s.Tick()
	}
	s.AddInterruption()
	s.AddInterruption()

	summary, err := s.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if summary.ElapsedSeconds != 90 {
		t.Errorf("elapsed: want 90, got %d", summary.ElapsedSeconds)
	}
	if summary.Interruptions != 2 {
		t.Errorf("interruptions: want 2, got %d", summary.Interruptions)
	}
	if summary.Hyperfocus {
		t.Error("hyperfocus: want false for a short session")
	}
	if s.State() != StateEnded {
		t.Errorf("state: want %q, got %q", StateEnded, s.State())
	}
}

// TestInterruptionsValidWhilePaused verifies interruptions count in both
// Running and Paused.
func TestInterruptionsValidWhilePaused(t *testing.T) {
	s := runningSession(t)
	s.Pause()
	if err := s.AddInterruption(); err != nil {
		t.Fatalf("interruption while paused: %v", err)
	}
	if got := s.Snapshot().Interruptions; got != 1 {
		t.Errorf("interruptions: want 1, got %d", got)
	}
}

// TestInvalidTransitions pins the rejected transitions.
func TestInvalidTransitions(t *testing.T) {
	s := NewSession()

	if err := s.Pause(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("pause from idle: want ErrInvalidState, got %v", err)
	}
	if err := s.Resume(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("resume from idle: want ErrInvalidState, got %v", err)
	}
	if _, err := s.End(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("end from idle: want ErrInvalidState, got %v", err)
	}
	if err := s.AddInterruption(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("interruption from idle: want ErrInvalidState, got %v", err)
	}

	s.Start()
	s.Close()
	if err := s.Start(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("start while running: want ErrInvalidState, got %v", err)
	}
}

// TestTickIgnoredOutsideRunning verifies stray ticks after End change
// nothing.
func TestTickIgnoredOutsideRunning(t *testing.T) {
	s := runningSession(t)
	s.Tick()
	s.End()
	s.Tick()
	if got := s.Snapshot().ElapsedSeconds; got != 1 {
		t.Errorf("elapsed after end: want 1, got %d", got)
	}
}
