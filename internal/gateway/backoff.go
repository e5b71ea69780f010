// ABOUTME: Reconnect backoff policy
// ABOUTME: Exponential growth with cap, jitter, and reset on success
package gateway

import (
	"math/rand"
	"time"
)

// Backoff computes reconnect delays: exponential doubling from Initial,
// capped at Max, with optional proportional jitter. Reset puts the next
// delay back at Initial.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
	Jitter  float64 // fraction of the delay, e.g. 0.2 for ±20%

	attempts int
}

// Next returns the delay before the next connection attempt and advances the
// attempt counter.
func (b *Backoff) Next() time.Duration {
	d := b.Initial
	for i := 0; i < b.attempts; i++ {
		d *= 2
		if d >= b.Max || d <= 0 {
			d = b.Max
			break
		}
	}
	if d > b.Max {
		d = b.Max
	}
	b.attempts++

	if b.Jitter > 0 {
		spread := (rand.Float64()*2 - 1) * b.Jitter * float64(d)
		d += time.Duration(spread)
		if d < 0 {
			d = 0
		}
	}

	return d
}

// Attempts returns the number of consecutive failures so far.
func (b *Backoff) Attempts() int {
	return b.attempts
}

// Reset clears the failure streak after a successful connection.
func (b *Backoff) Reset() {
	b.attempts = 0
}
