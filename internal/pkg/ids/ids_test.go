package ids

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PrefixAndULID(t *testing.T) {
	id := New(Transaction)
	require.True(t, strings.HasPrefix(id, "TXN-"))
	_, err := ulid.Parse(strings.TrimPrefix(id, "TXN-"))
	assert.NoError(t, err)
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(Fee)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestOrNew(t *testing.T) {
	assert.Equal(t, "TXN-42", OrNew("  TXN-42 ", Transaction))
	assert.True(t, strings.HasPrefix(OrNew("", Document), "DOC-"))
	assert.True(t, strings.HasPrefix(OrNew("   ", Entity), "ENT-"))
}
