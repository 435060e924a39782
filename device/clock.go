package device

import "time"

// Clock provides millisecond ticks in the style of an embedded millis()
// counter. Ticks wrap at the uint32 maximum; all elapsed-time checks in this
// package rely on unsigned subtraction to stay correct across the wrap.
type Clock interface {
	Millis() uint32
	SleepMillis(ms uint32)
}

// WallClock implements Clock over the real wall clock.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

func (c *WallClock) SleepMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
