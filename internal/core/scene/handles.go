package scene

import "sync"

// The host's low-level API hands out one shared function-set handle that gets
// repointed at whatever object a call touches. Here that becomes an arena of
// cursors: each lookup borrows a cursor, points it at one record for the
// duration of a single command, and returns it. Cursors are never held across
// commands, so two lookups can never alias through a stale handle.

type cursor struct {
	rec  *record
	attr *attrRecord
	// local part of the attribute the cursor is pointed at, "" for node
	// cursors.
	attrName string
}

type cursorArena struct {
	pool sync.Pool
}

func newCursorArena() *cursorArena {
	return &cursorArena{
		pool: sync.Pool{
			New: func() any { return new(cursor) },
		},
	}
}

func (a *cursorArena) acquire(rec *record) *cursor {
	c := a.pool.Get().(*cursor)
	c.rec = rec
	return c
}

func (a *cursorArena) release(c *cursor) {
	c.rec = nil
	c.attr = nil
	c.attrName = ""
	a.pool.Put(c)
}
