package bipbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMappedInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		m, err := NewMapped(size)
		assert.ErrorIs(t, err, ErrInvalidSize)
		assert.Nil(t, m)
	}
}

func TestMappedReserveCommit(t *testing.T) {
	m, err := NewMapped(4096)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 4096, m.Cap())
	assert.True(t, m.IsEmpty())

	n := copy(m.Reserve(5), "hello")
	m.Commit(n)
	assert.Equal(t, []byte("hello"), m.Read())

	m.Decommit(5)
	assert.True(t, m.IsEmpty())
}

func TestMappedClose(t *testing.T) {
	m, err := NewMapped(64)
	require.NoError(t, err)

	copy(m.Reserve(3), "abc")
	m.Commit(3)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Equal(t, 0, m.Cap())
	assert.Empty(t, m.Read())
	assert.Empty(t, m.Reserve(8))
}
