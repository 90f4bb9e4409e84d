package filesystem

// DirCursor is a forward-only iterator over the entries of one directory.
// It provides a simple Next pattern plus a single Rewind back to the first entry.
type DirCursor interface {
	// Next advances to the next entry and returns it.
	// Returns (DirEntry{}, false) when the listing is exhausted or on error.
	// Check Err() after Next() returns false to distinguish between the two.
	Next() (DirEntry, bool)

	// Rewind restarts the listing from its first entry.
	Rewind() error

	// Err returns any error that occurred while listing.
	Err() error

	// Close releases the listing.
	Close() error
}

// DirEntry is one child of a listed directory.
type DirEntry struct {
	Name  string
	IsDir bool
}

// sliceCursor serves a listing that was read in one go.
// reload is called on Rewind so changes on the volume become visible.
type sliceCursor struct {
	entries []DirEntry
	index   int
	err     error
	reload  func() ([]DirEntry, error)
}

// newSliceCursor creates a cursor over entries; reload may be nil.
func newSliceCursor(entries []DirEntry, reload func() ([]DirEntry, error)) *sliceCursor {
	return &sliceCursor{
		entries: entries,
		index:   -1,
		reload:  reload,
	}
}

func (c *sliceCursor) Close() error {
	c.entries = nil

	return nil
}

func (c *sliceCursor) Err() error {
	return c.err
}

func (c *sliceCursor) Next() (DirEntry, bool) {
	if c.err != nil {
		return DirEntry{}, false
	}

	c.index++
	if c.index >= len(c.entries) {
		c.index = len(c.entries)
		return DirEntry{}, false
	}

	return c.entries[c.index], true
}

func (c *sliceCursor) Rewind() error {
	c.index = -1

	if c.reload == nil {
		return nil
	}

	entries, err := c.reload()
	if err != nil {
		c.err = err
		return err
	}

	c.entries = entries
	c.err = nil

	return nil
}
