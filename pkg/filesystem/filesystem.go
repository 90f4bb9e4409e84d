// Package filesystem provides an abstraction layer over the storage volume that holds
// frame folders, so the sequencing logic can run against a local card, a remote
// volume over SFTP, or an in-memory fake without change.
//
// All paths handed to a FileSystem are volume-absolute ("/folder03/000001.jpg").
// Implementations backed by a real directory join them onto their configured root.
package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Exported variables.
var (
	ErrIsDirectory  = errors.New("is a directory")
	ErrNotDirectory = errors.New("not a directory")
)

// File is an interface that abstracts file operations.
// This allows us to work with both real files and mock files.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Stat() (os.FileInfo, error)
}

// FileSystem is the storage capability consumed by the sequencer.
type FileSystem interface {
	// Exists reports whether a file or directory exists at path.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// OpenDir opens a forward-only, rewindable listing of the directory at path.
	OpenDir(path string) (DirCursor, error)

	// Open opens a file for reading.
	Open(path string) (File, error)

	// Create creates or truncates a file for writing.
	Create(path string) (File, error)

	// WriteFileAtomic replaces the file at path with data so that a crash
	// leaves either the old or the new content, never a mix.
	WriteFileAtomic(path string, data []byte) error

	Stat(path string) (os.FileInfo, error)
}

// RealFileSystem implements FileSystem on a mounted volume rooted at a local directory.
type RealFileSystem struct {
	root string
}

// NewRealFileSystem creates a RealFileSystem whose volume root is the given directory.
func NewRealFileSystem(root string) *RealFileSystem {
	return &RealFileSystem{root: filepath.Clean(root)}
}

// Root returns the local directory backing the volume.
func (fs *RealFileSystem) Root() string {
	return fs.root
}

// Create creates a file for writing.
func (fs *RealFileSystem) Create(name string) (File, error) {
	file, err := os.Create(fs.resolve(name)) // #nosec G304 - path is confined to the volume root
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}

	return file, nil
}

// Exists reports whether name exists on the volume.
func (fs *RealFileSystem) Exists(name string) (bool, error) {
	_, err := os.Stat(fs.resolve(name))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("failed to check %s: %w", name, err)
}

// Open opens a file for reading.
func (fs *RealFileSystem) Open(name string) (File, error) {
	file, err := os.Open(fs.resolve(name)) // #nosec G304 - path is confined to the volume root
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	return file, nil
}

// OpenDir opens a directory listing in on-disk order.
func (fs *RealFileSystem) OpenDir(name string) (DirCursor, error) {
	cursor, err := newRealDirCursor(fs.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", name, err)
	}

	return cursor, nil
}

// Stat returns file information.
func (fs *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	info, err := os.Stat(fs.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	return info, nil
}

// WriteFileAtomic writes data through a temp file and rename.
func (fs *RealFileSystem) WriteFileAtomic(name string, data []byte) error {
	err := atomic.WriteFile(fs.resolve(name), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}

// resolve maps a volume-absolute path onto the local root.
// Cleaning the rooted path first keeps ".." from escaping the volume.
func (fs *RealFileSystem) resolve(name string) string {
	clean := path.Clean("/" + name)

	return filepath.Join(fs.root, filepath.FromSlash(clean))
}
