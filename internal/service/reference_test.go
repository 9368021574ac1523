package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingReferenceFormat(t *testing.T) {
	ref, err := GenerateBookingReference()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "CBE"), "reference %q should start with CBE", ref)
	// Prefix + base-36 millisecond timestamp + 12 hex chars of randomness.
	assert.Greater(t, len(ref), 15)
	assert.Equal(t, strings.ToUpper(ref), ref, "reference should be upper case")
}

func TestGenerateBookingReferenceUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10_000)
	for i := 0; i < 10_000; i++ {
		ref, err := GenerateBookingReference()
		require.NoError(t, err)
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference %q after %d generations", ref, i)
		}
		seen[ref] = struct{}{}
	}
}
