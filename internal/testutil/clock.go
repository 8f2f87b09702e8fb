package testutil

import (
	"sync"
	"time"
)

// StepClock returns a deterministic time source that advances by one
// second on every call, starting at 2024-01-01T00:00:00Z.
func StepClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := current
		current = current.Add(time.Second)
		return now
	}
}
