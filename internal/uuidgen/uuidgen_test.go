package uuidgen

import (
	"testing"

	"github.com/asim/chatd/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestNextIsMonotonic(t *testing.T) {
	g := New(1)
	first := g.Next()
	second := g.Next()
	require.Equal(t, wire.UUID{Generator: 1, Sequence: 1}, first)
	require.Equal(t, wire.UUID{Generator: 1, Sequence: 2}, second)
}

func TestObserveAdvancesPastReplayedSequence(t *testing.T) {
	g := New(1)
	g.Observe(wire.UUID{Generator: 1, Sequence: 41})
	next := g.Next()
	require.Equal(t, wire.UUID{Generator: 1, Sequence: 42}, next)
}

func TestObserveIgnoresOtherGenerators(t *testing.T) {
	g := New(1)
	g.Observe(wire.UUID{Generator: 2, Sequence: 999})
	next := g.Next()
	require.Equal(t, wire.UUID{Generator: 1, Sequence: 1}, next)
}

func TestSequenceReflectsNextWithoutConsuming(t *testing.T) {
	g := New(1)
	g.Next()
	g.Next()
	require.EqualValues(t, 3, g.Sequence())
	require.EqualValues(t, 3, g.Sequence())
}

func TestAdvanceOnlyMovesForward(t *testing.T) {
	g := New(1)
	g.Advance(100)
	require.Equal(t, wire.UUID{Generator: 1, Sequence: 100}, g.Next())

	g.Advance(50)
	require.Equal(t, wire.UUID{Generator: 1, Sequence: 101}, g.Next())
}

func TestParseTextualForm(t *testing.T) {
	id, err := Parse("[3.14]")
	require.NoError(t, err)
	require.Equal(t, wire.UUID{Generator: 3, Sequence: 14}, id)

	_, err = Parse("not-a-uuid")
	require.Error(t, err)
}
