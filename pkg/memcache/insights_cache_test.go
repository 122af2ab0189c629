package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestInsightsCache_setGet verifies basic storage and the miss path.
func TestInsightsCache_setGet(t *testing.T) {
	c := NewInsightsCache[string](time.Minute)

	_, ok := c.Get("tokyo,japan")
	require.False(t, ok)

	c.Set("tokyo,japan", "spring is best")

	got, ok := c.Get("tokyo,japan")
	require.True(t, ok)
	require.Equal(t, "spring is best", got)
}

// TestInsightsCache_expiry verifies that entries past their TTL miss.
func TestInsightsCache_expiry(t *testing.T) {
	c := NewInsightsCache[int](10 * time.Millisecond)

	c.Set("k", 42)
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("k")
	require.False(t, ok)
}

// TestInsightsCache_overwrite verifies that Set refreshes both value and TTL.
func TestInsightsCache_overwrite(t *testing.T) {
	c := NewInsightsCache[int](time.Minute)

	c.Set("k", 1)
	c.Set("k", 2)

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, got)
}
