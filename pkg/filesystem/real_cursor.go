package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// readDirBatch is how many entries are pulled from the OS per ReadDir call.
const readDirBatch = 64

// realDirCursor lists a local directory lazily, in the order the OS returns entries.
type realDirCursor struct {
	dir     string
	file    *os.File
	pending []os.DirEntry
	done    bool
	err     error
}

// newRealDirCursor opens dir and positions the cursor before its first entry.
func newRealDirCursor(dir string) (*realDirCursor, error) {
	cursor := &realDirCursor{dir: dir}

	err := cursor.open()
	if err != nil {
		return nil, err
	}

	return cursor, nil
}

// Close releases the directory handle.
func (c *realDirCursor) Close() error {
	if c.file == nil {
		return nil
	}

	err := c.file.Close()
	c.file = nil

	return err
}

// Err returns any error that occurred while listing.
func (c *realDirCursor) Err() error {
	return c.err
}

// Next returns the next directory entry.
func (c *realDirCursor) Next() (DirEntry, bool) {
	for len(c.pending) == 0 {
		if c.done || c.err != nil || c.file == nil {
			return DirEntry{}, false
		}

		// ReadDir with n > 0 does not sort, which keeps the on-disk order.
		batch, err := c.file.ReadDir(readDirBatch)
		c.pending = batch

		if errors.Is(err, io.EOF) {
			c.done = true
		} else if err != nil {
			c.err = fmt.Errorf("failed to read directory %s: %w", c.dir, err)
		}
	}

	entry := c.pending[0]
	c.pending = c.pending[1:]

	// Symlinks are not followed: a link to a folder lists as a non-directory.
	return DirEntry{Name: entry.Name(), IsDir: entry.IsDir()}, true
}

// Rewind reopens the directory so the listing starts over.
func (c *realDirCursor) Rewind() error {
	_ = c.Close()

	c.pending = nil
	c.done = false
	c.err = nil

	return c.open()
}

func (c *realDirCursor) open() error {
	file, err := os.Open(c.dir) // #nosec G304 - directory is confined to the volume root
	if err != nil {
		c.err = err
		return err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		c.err = err

		return err
	}

	if !info.IsDir() {
		_ = file.Close()
		c.err = fmt.Errorf("%s: %w", c.dir, ErrNotDirectory)

		return c.err
	}

	c.file = file

	return nil
}
