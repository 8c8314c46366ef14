package linop

import (
	"log/slog"
	"sync/atomic"
)

// payload is the state shared by the transforms of one linear operator.
// Each transform owns one slot; the deleter runs when the last slot is
// released.
type payload struct {
	live atomic.Int32
	del  func()
}

// slot is one transform's claim on a payload.
type slot struct {
	p        *payload
	released atomic.Bool
}

// newPayload creates n slots sharing del.
func newPayload(n int, del func()) []*slot {
	p := &payload{del: del}
	p.live.Store(int32(n))

	slots := make([]*slot, n)
	for i := range slots {
		slots[i] = &slot{p: p}
	}
	return slots
}

// release drops the slot's claim. Releasing a slot twice panics.
func (s *slot) release() {
	if s.released.Swap(true) {
		panic("linop: payload slot released twice")
	}
	if s.p.live.Add(-1) > 0 {
		return
	}
	slog.Debug("linop: releasing operator state")
	if s.p.del != nil {
		s.p.del()
	}
}
