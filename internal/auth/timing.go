package auth

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// FailureDelay pads failed login attempts with a small randomized sleep so
// "user not found" and "wrong password" take a similar amount of wall time.
type FailureDelay struct {
	baseMs   int
	randomMs int
}

func NewFailureDelay(baseMs, randomMs int) *FailureDelay {
	return &FailureDelay{baseMs: baseMs, randomMs: randomMs}
}

// Sleep blocks for base + [0, random) milliseconds.
func (d *FailureDelay) Sleep() {
	delay := time.Duration(d.baseMs) * time.Millisecond
	if d.randomMs > 0 {
		if n, err := cryptoRandIntn(d.randomMs); err == nil {
			delay += time.Duration(n) * time.Millisecond
		}
	}
	time.Sleep(delay)
}

// cryptoRandIntn returns a random number in [0, max) using crypto/rand;
// math/rand is avoided for anything security-adjacent.
func cryptoRandIntn(max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return 0, err
	}

	randomValue := binary.BigEndian.Uint64(randomBytes)
	return int(randomValue % uint64(max)), nil
}
