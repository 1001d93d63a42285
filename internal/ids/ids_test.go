package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(Deal(), "DEAL"))
	assert.Len(t, Deal(), 10)

	assert.True(t, strings.HasPrefix(Offer(), "OFF"))
	assert.Len(t, Offer(), 9)

	assert.True(t, strings.HasPrefix(Transaction(), "TXN"))
	assert.Len(t, Transaction(), 11)
}

func TestProperty(t *testing.T) {
	assert.True(t, strings.HasPrefix(Property("Mumbai"), "MUM"))
	assert.True(t, strings.HasPrefix(Property("pune"), "PUN"))
	// Short city names still produce a usable id.
	assert.True(t, strings.HasPrefix(Property("Ib"), "IB"))
}

func TestUniqueness(t *testing.T) {
	// Rapid-fire generation must never collide, even inside one
	// millisecond.
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Deal()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
