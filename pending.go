package virc

import (
	"context"
	"sync"
	"sync/atomic"
)

// A pending is a one-shot future for a sent command awaiting its server
// response. It resolves exactly once; later resolutions are no-ops, so a
// handler and the teardown path may race safely.
type pending struct {
	once   sync.Once
	done   chan struct{}
	result int
	err    error
}

func newPending() *pending {
	return &pending{done: make(chan struct{})}
}

func (p *pending) resolve(result int, err error) {
	p.once.Do(func() {
		p.result = result
		p.err = err
		close(p.done)
	})
}

func (p *pending) wait(ctx context.Context) (int, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// A pendingSlot holds at most one in-flight operation of its kind. Claiming
// an occupied slot fails synchronously rather than queueing.
type pendingSlot struct {
	ptr atomic.Pointer[pending]
}

func (slot *pendingSlot) claim() (*pending, bool) {
	p := newPending()
	if !slot.ptr.CompareAndSwap(nil, p) {
		return nil, false
	}

	return p, true
}

// release frees the slot if it still holds p. Used when the caller gives up
// (context cancellation) without the response having arrived.
func (slot *pendingSlot) release(p *pending) {
	slot.ptr.CompareAndSwap(p, nil)
}

// take removes and returns the current occupant, if any. The response
// handler and the teardown path both resolve through take, so the slot is
// free again by the time the waiter wakes up.
func (slot *pendingSlot) take() *pending {
	return slot.ptr.Swap(nil)
}
