package flux

// cursor walks a flux ntuple cyclically, starting each cycle at offset.
type cursor struct {
	n       int64 // entries in the ntuple
	entry   int64 // next entry to read
	offset  int64 // first entry of each cycle
	inCycle int64 // entries read in the current cycle
	cycle   int   // current cycle, starting at 1
	ncycles int   // cycle limit, 0 for unbounded

	last   int64 // last entry read
	loaded bool
}

func newCursor(n int64, ncycles int) cursor {
	return cursor{n: n, cycle: 1, ncycles: ncycles, last: None}
}

// setOffset must be called before the first read.
func (c *cursor) setOffset(off int64) {
	c.offset = off
	c.entry = off
}

// advance records a read of the current entry and moves to the next one.
// It reports whether that read completed a cycle.
func (c *cursor) advance() bool {
	c.last = c.entry
	c.loaded = true
	c.entry = (c.entry + 1) % c.n
	c.inCycle++
	if c.inCycle < c.n {
		return false
	}
	c.inCycle = 0
	c.entry = c.offset
	c.cycle++
	return true
}

func (c *cursor) end() bool {
	return c.ncycles > 0 && c.cycle > c.ncycles
}

func (c *cursor) index() int64 {
	if !c.loaded {
		return None
	}
	return c.last
}

func (c *cursor) rewind() {
	c.entry = c.offset
	c.inCycle = 0
	c.cycle = 1
	c.loaded = false
}
