package mocks

import (
	"sync"

	"github.com/matiasolis/impostor-party/internal/dependencies/random"
)

// MockRandom replays queued values instead of generating random ones. An
// exhausted queue yields zero values, so a test only queues the draws it
// cares about. Safe for concurrent use; server goroutines may draw while the
// test goroutine queues.
type MockRandom struct {
	mu sync.Mutex

	intnQueue   []int
	stringQueue []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates an empty MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued int, or 0 when the queue is empty
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intnQueue) == 0 {
		return 0
	}
	result := r.intnQueue[0]
	r.intnQueue = r.intnQueue[1:]
	return result
}

// String pops the next queued string, or "" when the queue is empty
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stringQueue) == 0 {
		return ""
	}
	result := r.stringQueue[0]
	r.stringQueue = r.stringQueue[1:]
	return result
}

// QueueIntn appends values for Intn to replay in order
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnQueue = append(r.intnQueue, values...)
}

// QueueString appends values for String to replay in order
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringQueue = append(r.stringQueue, values...)
}

// Reset drops any unconsumed values
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnQueue = nil
	r.stringQueue = nil
}
