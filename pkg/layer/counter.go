package layer

// DefaultReloadEvery is the number of transformed batches between two
// calibration reloads. At a 60Hz frame rate that is about once a second.
const DefaultReloadEvery = 60

// ReloadCounter counts transformed batches and tells when a reload is due.
// It wraps around at 65535 like the frame counter it replaces.
type ReloadCounter struct {
	n     uint16
	every uint16
}

// NewReloadCounter returns a counter firing every every ticks. Zero disables
// it.
func NewReloadCounter(every uint16) ReloadCounter {
	return ReloadCounter{every: every}
}

// Tick advances the counter and reports whether a reload is due, which is
// exactly when the new value is a multiple of every. A zero every never fires.
func (c *ReloadCounter) Tick() bool {
	c.n++
	if c.every == 0 {
		return false
	}
	return c.n%c.every == 0
}

// Value returns the number of ticks since the last Reset, modulo 65536.
func (c *ReloadCounter) Value() uint16 {
	return c.n
}

// Reset sets the counter back to zero. The period is kept.
func (c *ReloadCounter) Reset() {
	c.n = 0
}
