package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointLoadBeforeSaveIsAbsent(t *testing.T) {
	cp, err := OpenCheckpoint(t.TempDir() + "/checkpoint.db")
	require.NoError(t, err)
	defer cp.Close()

	_, _, _, ok := cp.Load()
	assert.False(t, ok)
}

func TestCheckpointSaveThenLoadRoundTrips(t *testing.T) {
	cp, err := OpenCheckpoint(t.TempDir() + "/checkpoint.db")
	require.NoError(t, err)
	defer cp.Close()

	cp.Save(128, 7, []byte(`{"Users":[]}`))

	offset, seq, snapshot, ok := cp.Load()
	require.True(t, ok)
	assert.EqualValues(t, 128, offset)
	assert.EqualValues(t, 7, seq)
	assert.Equal(t, `{"Users":[]}`, string(snapshot))
}

func TestCheckpointSaveOverwritesPriorRow(t *testing.T) {
	cp, err := OpenCheckpoint(t.TempDir() + "/checkpoint.db")
	require.NoError(t, err)
	defer cp.Close()

	cp.Save(1, 1, []byte("a"))
	cp.Save(2, 2, []byte("b"))

	offset, seq, snapshot, ok := cp.Load()
	require.True(t, ok)
	assert.EqualValues(t, 2, offset)
	assert.EqualValues(t, 2, seq)
	assert.Equal(t, "b", string(snapshot))
}
