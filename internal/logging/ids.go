package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateID creates a unique run or emission identifier.
// Format: YYYYMMDD_HHMMSS_xxxxxx (timestamp + 6 random hex chars)
// Example: 20261019_205106_a7b3c1
func GenerateID(now time.Time) string {
	random := make([]byte, 3)
	_, _ = rand.Read(random)
	return now.UTC().Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// ShortID extracts the random suffix from an identifier.
// Example: "20261019_205106_a7b3c1" -> "a7b3c1"
func ShortID(id string) string {
	const suffixLen = 6
	if len(id) < suffixLen {
		return id
	}
	return id[len(id)-suffixLen:]
}
