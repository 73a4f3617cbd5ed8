package mocks

import (
	"sync"

	"github.com/mcoot/codechallenge-go/internal/dependencies/random"
)

// MockRandom replays queued results. Once a queue is exhausted Intn
// returns 0 and String returns a string of the first alphabet letter.
type MockRandom struct {
	mu          sync.Mutex
	IntnResults []int
	intnIndex   int
	Strings     []string
	stringIndex int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom that returns intns in order
func NewMockRandom(intns ...int) *MockRandom {
	return &MockRandom{IntnResults: intns}
}

// Intn returns the next queued result, clamped into [0, n)
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.intnIndex >= len(r.IntnResults) || n <= 0 {
		return 0
	}
	v := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stringIndex < len(r.Strings) {
		s := r.Strings[r.stringIndex]
		r.stringIndex++
		return s
	}
	if alphabet == "" {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[0]
	}
	return string(out)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Strings = append(r.Strings, values...)
}
