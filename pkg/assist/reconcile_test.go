package assist

import (
	"context"
	"errors"
	"testing"

	"focusdash/pkg/task"
)

// fakeExtractor returns canned candidates or a canned error.
type fakeExtractor struct {
	candidates []Candidate
	err        error
	calls      int
}

func (f *fakeExtractor) Extract(_ context.Context, text string, maxTasks int) ([]Candidate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := append([]Candidate(nil), f.candidates...)
	if len(out) > maxTasks {
		out = out[:maxTasks]
	}
	return out, nil
}

func newTestSuggestions(ext *fakeExtractor) (*Suggestions, *task.MemStore) {
	store := task.NewMemStore(nil)
	return NewSuggestions(ext, NewScanner(), store, nil), store
}

// TestAcceptCommitsOneTask verifies that with 3 presented candidates,
// accepting one commits exactly one task with the remapped priority and
// leaves 2 presented.
func TestAcceptCommitsOneTask(t *testing.T) {
	ext := &fakeExtractor{candidates: []Candidate{
		{Title: "one", Priority: PriorityLow},
		{Title: "two", Priority: PriorityHigh},
		{Title: "three", Priority: PriorityMedium},
	}}
	s, store := newTestSuggestions(ext)
	ctx := context.Background()

	batch, err := s.Submit(ctx, "three things to do", 10)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(batch.Candidates) != 3 {
		t.Fatalf("presented: want 3, got %d", len(batch.Candidates))
	}

	created, err := s.Accept(ctx, batch.Candidates[1].ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if created.Title != "two" {
		t.Errorf("title: want %q, got %q", "two", created.Title)
	}
	if created.Priority != 5 {
		t.Errorf("priority: want 5 (high remapped), got %d", created.Priority)
	}
	if created.Source != task.SourceAIGenerated {
		t.Errorf("source: want %q, got %q", task.SourceAIGenerated, created.Source)
	}

	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("committed tasks: want 1, got %d", n)
	}
	if len(s.Pending()) != 2 {
		t.Errorf("remaining presented: want 2, got %d", len(s.Pending()))
	}
}

// TestRejectAllClearsRemainder verifies RejectAll discards everything and
// commits nothing further.
func TestRejectAllClearsRemainder(t *testing.T) {
	ext := &fakeExtractor{candidates: []Candidate{
		{Title: "a", Priority: PriorityLow},
		{Title: "b", Priority: PriorityMedium},
	}}
	s, store := newTestSuggestions(ext)
	ctx := context.Background()

	if _, err := s.Submit(ctx, "two things", 10); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if n := s.RejectAll(); n != 2 {
		t.Errorf("rejected: want 2, got %d", n)
	}
	if len(s.Pending()) != 0 {
		t.Errorf("presented after RejectAll: want 0, got %d", len(s.Pending()))
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("committed tasks: want 0, got %d", n)
	}
}

// TestAcceptAllCommitsEverything verifies the batch-level accept shortcut.
func TestAcceptAllCommitsEverything(t *testing.T) {
	ext := &fakeExtractor{candidates: []Candidate{
		{Title: "a", Priority: PriorityLow},
		{Title: "b", Priority: PriorityHigh},
		{Title: "c", Priority: PriorityMedium},
	}}
	s, store := newTestSuggestions(ext)
	ctx := context.Background()

	s.Submit(ctx, "three things", 10)
	created, err := s.AcceptAll(ctx)
	if err != nil {
		t.Fatalf("accept all: %v", err)
	}
	if len(created) != 3 {
		t.Errorf("created: want 3, got %d", len(created))
	}
	if n, _ := store.Count(ctx); n != 3 {
		t.Errorf("committed tasks: want 3, got %d", n)
	}
	if len(s.Pending()) != 0 {
		t.Errorf("presented after AcceptAll: want 0, got %d", len(s.Pending()))
	}
}

// TestRejectDiscardsWithoutTrace verifies a rejected candidate disappears
// and cannot be accepted afterwards.
func TestRejectDiscardsWithoutTrace(t *testing.T) {
	ext := &fakeExtractor{candidates: []Candidate{{Title: "only", Priority: PriorityLow}}}
	s, store := newTestSuggestions(ext)
	ctx := context.Background()

	batch, _ := s.Submit(ctx, "one thing", 10)
	id := batch.Candidates[0].ID

	if err := s.Reject(id); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := s.Accept(ctx, id); !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("accept after reject: want ErrCandidateNotFound, got %v", err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("committed tasks: want 0, got %d", n)
	}
}

// TestOverlappingBatchesAccumulate verifies a second submission does not
// clear a still-presented batch; candidates accumulate as independent
// batches until individually resolved.
func TestOverlappingBatchesAccumulate(t *testing.T) {
	ext := &fakeExtractor{candidates: []Candidate{{Title: "first batch", Priority: PriorityLow}}}
	s, _ := newTestSuggestions(ext)
	ctx := context.Background()

	s.Submit(ctx, "batch one", 10)
	ext.candidates = []Candidate{{Title: "second batch", Priority: PriorityHigh}}
	s.Submit(ctx, "batch two", 10)

	if got := len(s.Batches()); got != 2 {
		t.Fatalf("batches: want 2, got %d", got)
	}
	pending := s.Pending()
	if len(pending) != 2 {
		t.Fatalf("pending: want 2, got %d", len(pending))
	}
	if pending[0].Title != "first batch" || pending[1].Title != "second batch" {
		t.Errorf("batch order lost: %+v", pending)
	}
}

// TestSubmitFailureLeavesEverythingUntouched verifies a Timeout from the
// collaborator yields zero candidates, the timeout kind, and an unchanged
// store and presented set.
func TestSubmitFailureLeavesEverythingUntouched(t *testing.T) {
	ext := &fakeExtractor{err: ErrTimeout}
	s, store := newTestSuggestions(ext)
	ctx := context.Background()

	batch, err := s.Submit(ctx, "anything", 10)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
	if batch != nil {
		t.Errorf("want no batch on failure, got %+v", batch)
	}
	if len(s.Pending()) != 0 {
		t.Errorf("presented: want 0, got %d", len(s.Pending()))
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("committed tasks: want 0, got %d", n)
	}
}

// TestSensitiveInputFlagsCandidates verifies candidates extracted from text
// that trips the scanner carry the sensitive_data_detected flag.
func TestSensitiveInputFlagsCandidates(t *testing.T) {
	ext := &fakeExtractor{candidates: []Candidate{{Title: "review record", Priority: PriorityMedium}}}
	s, _ := newTestSuggestions(ext)

	batch, err := s.Submit(context.Background(), "update employee id 4412 records", 10)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !batch.SensitiveData {
		t.Error("batch should be marked sensitive")
	}
	if !batch.Candidates[0].HasFlag(FlagSensitiveData) {
		t.Errorf("candidate missing %s flag: %+v", FlagSensitiveData, batch.Candidates[0])
	}
}

// TestSubmitRejectsEmptyText verifies blank input is refused locally without
// calling the service.
func TestSubmitRejectsEmptyText(t *testing.T) {
	ext := &fakeExtractor{}
	s, _ := newTestSuggestions(ext)

	if _, err := s.Submit(context.Background(), "   ", 10); err == nil {
		t.Fatal("want error for blank text")
	}
	if ext.calls != 0 {
		t.Errorf("service calls: want 0, got %d", ext.calls)
	}
}
