package assist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"focusdash/pkg/event"
	"focusdash/pkg/task"
)

// Extractor is the slice of Client the reconciliation workflow depends on.
type Extractor interface {
	Extract(ctx context.Context, text string, maxTasks int) ([]Candidate, error)
}

// Batch is one extraction's worth of presented candidates. Overlapping
// submissions queue independent batches rather than interleaving into a
// single list, so a new extraction cannot mix with stale candidates.
type Batch struct {
	ID            string      `json:"id"`
	SensitiveData bool        `json:"sensitive_data"`
	Candidates    []Candidate `json:"candidates"`
}

// Suggestions runs the accept/reject workflow that turns extracted
// candidates into committed tasks. Candidates stay presented until
// individually resolved or swept by AcceptAll/RejectAll.
type Suggestions struct {
	mu      sync.Mutex
	client  Extractor
	scanner *Scanner
	store   task.Store
	events  event.Appender
	batches []*Batch
}

// NewSuggestions creates the reconciliation workflow. The event appender may
// be nil.
func NewSuggestions(client Extractor, scanner *Scanner, store task.Store, events event.Appender) *Suggestions {
	return &Suggestions{
		client:  client,
		scanner: scanner,
		store:   store,
		events:  events,
	}
}

// Submit scans the text, asks the service for candidates, and presents them
// as a new batch. On extraction failure no batch is added and the store is
// untouched; the error is one of the client's failure kinds.
func (s *Suggestions) Submit(ctx context.Context, text string, maxTasks int) (*Batch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input text", ErrService)
	}

	sensitive := s.scanner != nil && s.scanner.Scan(text)

	candidates, err := s.client.Extract(ctx, text, maxTasks)
	if err != nil {
		return nil, err
	}

	b := &Batch{
		ID:            uuid.Must(uuid.NewV7()).String(),
		SensitiveData: sensitive,
	}
	for _, c := range candidates {
		c.ID = uuid.Must(uuid.NewV7()).String()
		if sensitive && !c.HasFlag(FlagSensitiveData) {
			c.Flags = append(c.Flags, FlagSensitiveData)
		}
		b.Candidates = append(b.Candidates, c)
	}

	s.mu.Lock()
	s.batches = append(s.batches, b)
	snapshot := s.cloneBatch(b)
	s.mu.Unlock()

	return snapshot, nil
}

// Pending returns all presented candidates across batches, oldest batch
// first, preserving the service's ranking within each batch.
func (s *Suggestions) Pending() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Candidate
	for _, b := range s.batches {
		out = append(out, b.Candidates...)
	}
	return out
}

// Batches returns a snapshot of the presented batches.
func (s *Suggestions) Batches() []Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Batch, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, *s.cloneBatch(b))
	}
	return out
}

// Accept converts the candidate into a committed task and removes it from
// the presented set. The commit happens before removal, so a store failure
// leaves the candidate presented.
func (s *Suggestions) Accept(ctx context.Context, candidateID string) (*task.Task, error) {
	s.mu.Lock()
	c, ok := s.findLocked(candidateID)
	s.mu.Unlock()
	if !ok {
		return nil, ErrCandidateNotFound
	}

	created, err := s.store.Create(ctx, c.ToTask())
	if err != nil {
		return nil, fmt.Errorf("commit candidate %s: %w", candidateID, err)
	}

	s.mu.Lock()
	s.removeLocked(candidateID)
	s.mu.Unlock()

	if s.events != nil {
		s.events.Append(ctx, "suggestion.accepted", "suggestions", map[string]any{
			"task_id": created.ID,
			"title":   created.Title,
		})
	}
	return created, nil
}

// Reject discards the candidate with no trace.
func (s *Suggestions) Reject(candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocked(candidateID); !ok {
		return ErrCandidateNotFound
	}
	s.removeLocked(candidateID)
	return nil
}

// AcceptAll converts every remaining candidate across all batches. On a
// store failure the candidates committed so far stay committed, the failing
// one stays presented, and the error is returned.
func (s *Suggestions) AcceptAll(ctx context.Context) ([]task.Task, error) {
	pending := s.Pending()

	var created []task.Task
	for _, c := range pending {
		t, err := s.Accept(ctx, c.ID)
		if err != nil {
			return created, err
		}
		created = append(created, *t)
	}
	return created, nil
}

// RejectAll discards every remaining candidate and returns how many were
// dropped.
func (s *Suggestions) RejectAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, b := range s.batches {
		n += len(b.Candidates)
	}
	s.batches = nil
	return n
}

func (s *Suggestions) findLocked(candidateID string) (*Candidate, bool) {
	for _, b := range s.batches {
		for i := range b.Candidates {
			if b.Candidates[i].ID == candidateID {
				cp := b.Candidates[i]
				return &cp, true
			}
		}
	}
	return nil, false
}

func (s *Suggestions) removeLocked(candidateID string) {
	for bi, b := range s.batches {
		for i := range b.Candidates {
			if b.Candidates[i].ID == candidateID {
				b.Candidates = append(b.Candidates[:i], b.Candidates[i+1:]...)
				if len(b.Candidates) == 0 {
					s.batches = append(s.batches[:bi], s.batches[bi+1:]...)
				}
				return
			}
		}
	}
}

func (s *Suggestions) cloneBatch(b *Batch) *Batch {
	cp := *b
	cp.Candidates = append([]Candidate(nil), b.Candidates...)
	return &cp
}
