// Package idgen produces task ids.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a fresh id on every call.
type Generator interface {
	NewID() string
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

func (UUID) NewID() string { return uuid.NewString() }

// Sequence yields Prefix-1, Prefix-2, ... and is meant for tests.
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}

// Func adapts a plain function to Generator.
type Func func() string

func (f Func) NewID() string { return f() }
