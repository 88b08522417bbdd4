// Package flood spaces outbound messages so that a well-behaved client does
// not trip server-side flood protection. The pacer only schedules; it never
// sleeps on its own, and it never drops or reorders messages.
package flood

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrHitOutOfOrder is returned by Hit when a hit is registered with a time
// earlier than the previous hit.
var ErrHitOutOfOrder = errors.New("flood: hit registered out of order")

// A Pacer tracks the send rate and answers, for each message, how long the
// caller must wait before putting it on the wire.
//
// After Cooldown of silence everything resets and the next message goes out
// immediately. Messages spaced more than Delay apart are never delayed. A
// burst of up to BurstCount messages is let through with BurstDelay spacing;
// past that, messages are spaced Delay apart until the cooldown is reached
// again.
type Pacer struct {
	mutex sync.Mutex

	cooldown   time.Duration
	delay      time.Duration
	burstDelay time.Duration
	burstCount int

	burst    int
	lastHit  time.Time // pacing anchor, may run ahead of wall time
	lastSeen time.Time // last registered hit, for order validation
}

// NewPacer returns a pacer with the default tuning: a 2s cooldown, 1s delay,
// 300ms burst delay and a burst of 4.
func NewPacer() *Pacer {
	return NewPacerTuned(2*time.Second, time.Second, 300*time.Millisecond, 4)
}

// NewPacerTuned returns a pacer with custom tuning.
func NewPacerTuned(cooldown, delay, burstDelay time.Duration, burstCount int) *Pacer {
	return &Pacer{
		cooldown:   cooldown,
		delay:      delay,
		burstDelay: burstDelay,
		burstCount: burstCount,
	}
}

// Hit registers a message at time t and returns how long the caller must
// wait from t before sending it. Hits must be registered in non-decreasing
// time order.
func (pacer *Pacer) Hit(t time.Time) (time.Duration, error) {
	pacer.mutex.Lock()
	defer pacer.mutex.Unlock()

	if t.Before(pacer.lastSeen) {
		return 0, ErrHitOutOfOrder
	}
	pacer.lastSeen = t

	return pacer.hit(t), nil
}

// Wait registers a hit at the current time and blocks until the message may
// be sent, or until ctx is done.
func (pacer *Pacer) Wait(ctx context.Context) error {
	pacer.mutex.Lock()
	now := time.Now()
	if now.After(pacer.lastSeen) {
		pacer.lastSeen = now
	}
	wait := pacer.hit(now)
	pacer.mutex.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (pacer *Pacer) hit(t time.Time) time.Duration {
	sinceLast := t.Sub(pacer.lastHit)

	if pacer.lastHit.IsZero() || sinceLast > pacer.cooldown {
		pacer.burst = 0
		pacer.lastHit = t
		return 0
	}

	if sinceLast > pacer.delay {
		pacer.lastHit = t
		return 0
	}

	pacer.burst++
	if pacer.burst <= pacer.burstCount {
		if sinceLast > pacer.burstDelay {
			pacer.lastHit = t
			return 0
		}

		pacer.lastHit = pacer.lastHit.Add(pacer.burstDelay)
		return pacer.burstDelay - sinceLast
	}

	pacer.lastHit = pacer.lastHit.Add(pacer.delay)
	return pacer.delay - sinceLast
}
