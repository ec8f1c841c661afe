package uuid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUIDIsVersion7(t *testing.T) {
	gen := New()

	first, err := uuid.Parse(gen.NewUUID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), first.Version())

	second, err := uuid.Parse(gen.NewUUID())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
