package mocks

import (
	"github.com/mcoot/rpgroster/internal/dependencies/random"
)

// MockRandom replays queued results. Exhausted queues yield 0 and false.
type MockRandom struct {
	intn    []int
	percent []bool
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with empty queues
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	if len(r.intn) == 0 {
		return 0
	}
	v := r.intn[0]
	r.intn = r.intn[1:]
	return v
}

func (r *MockRandom) Percent(p int) bool {
	if len(r.percent) == 0 {
		return false
	}
	v := r.percent[0]
	r.percent = r.percent[1:]
	return v
}

// QueueIntn appends results for Intn
func (r *MockRandom) QueueIntn(values ...int) {
	r.intn = append(r.intn, values...)
}

// QueuePercent appends results for Percent
func (r *MockRandom) QueuePercent(values ...bool) {
	r.percent = append(r.percent, values...)
}
