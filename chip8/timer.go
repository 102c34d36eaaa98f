package chip8

import "time"

/// Timer is an 8-bit register that counts down once per period until it
/// reaches zero.
///
type Timer struct {
	value    byte
	deadline time.Time
	period   time.Duration
}

/// NewTimer returns a stopped timer that counts down once per period.
///
func NewTimer(period time.Duration) *Timer {
	return &Timer{period: period}
}

/// Update decrements the timer by one if now is past the deadline, and
/// schedules the next decrement one period after now.
///
func (t *Timer) Update(now time.Time) {
	if !now.After(t.deadline) {
		return
	}

	t.deadline = now.Add(t.period)

	if t.value > 0 {
		t.value--
	}
}

/// Set loads a new value.
///
func (t *Timer) Set(v byte) {
	t.value = v
}

/// Value returns the current count.
///
func (t *Timer) Value() byte {
	return t.value
}

/// Active returns true while the count is non-zero.
///
func (t *Timer) Active() bool {
	return t.value > 0
}

/// Reset zeroes the count and forgets the deadline.
///
func (t *Timer) Reset() {
	t.value = 0
	t.deadline = time.Time{}
}
