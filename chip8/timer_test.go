package chip8

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimer(t *testing.T) {
	period := time.Second / 60
	start := time.Unix(100, 0)
	timer := NewTimer(period)

	timer.Set(2)
	timer.Update(start)
	assert.Equal(t, byte(1), timer.Value())

	// still inside the period
	timer.Update(start.Add(period / 2))
	assert.Equal(t, byte(1), timer.Value())

	timer.Update(start.Add(period + time.Nanosecond))
	assert.Equal(t, byte(0), timer.Value())
	assert.False(t, timer.Active())

	// never below zero
	timer.Update(start.Add(10 * period))
	assert.Equal(t, byte(0), timer.Value())
}

func TestTimerReset(t *testing.T) {
	timer := NewTimer(time.Second / 60)

	timer.Set(9)
	assert.True(t, timer.Active())

	timer.Reset()
	assert.Equal(t, byte(0), timer.Value())
}
