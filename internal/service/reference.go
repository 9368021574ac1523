package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// referencePrefix brands every booking reference.
const referencePrefix = "CBE"

// GenerateBookingReference produces a human-readable booking reference:
// the prefix, the current millisecond timestamp in base 36, and 48 bits of
// randomness. The timestamp keeps references roughly sortable; the random
// suffix makes collisions between concurrent bookings negligible. The
// database's unique constraint remains the final arbiter.
func GenerateBookingReference() (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate booking reference: %w", err)
	}

	var b strings.Builder
	b.WriteString(referencePrefix)
	b.WriteString(strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36)))
	b.WriteString(strings.ToUpper(hex.EncodeToString(suffix)))
	return b.String(), nil
}
