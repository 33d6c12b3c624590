package ggframe

import "time"

// fpsCounter tracks rendered frames over one-second windows.
type fpsCounter struct {
	frames      int
	windowStart time.Time
}

// Tick records one frame at the given time. When at least a full second
// has elapsed since the window opened, it returns the accumulated count
// and true, then starts a fresh window at now. The count includes the
// frame just recorded.
func (c *fpsCounter) Tick(now time.Time) (int, bool) {
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.frames++
	if now.Sub(c.windowStart) >= time.Second {
		n := c.frames
		c.frames = 0
		c.windowStart = now
		return n, true
	}
	return 0, false
}

// reset clears the counter so the next Tick opens a new window.
func (c *fpsCounter) reset() {
	c.frames = 0
	c.windowStart = time.Time{}
}
