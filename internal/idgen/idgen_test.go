package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGeneratesDistinctV4(t *testing.T) {
	g := UUID{}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := g.NewID()
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequenceIsDeterministic(t *testing.T) {
	s := NewSequence("task")
	assert.Equal(t, "task-1", s.NewID())
	assert.Equal(t, "task-2", s.NewID())

	other := NewSequence("task")
	assert.Equal(t, "task-1", other.NewID())
}

func TestFunc(t *testing.T) {
	var g Generator = Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", g.NewID())
}
