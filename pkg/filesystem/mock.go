package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"sync"
	"time"
)

// Mock operation names accepted by FailOn.
const (
	OpCreate  = "create"
	OpExists  = "exists"
	OpOpen    = "open"
	OpOpenDir = "opendir"
	OpRewind  = "rewind"
	OpWrite   = "write"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Directory listings enumerate children in the order they were added,
// which lets tests model arbitrary storage listing orders.
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string]*mockFile
	order    []string
	failures map[string]error
	visited  int
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	path    string
	data    []byte
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.perm }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// mockFileHandle implements the File interface for reading/writing.
type mockFileHandle struct {
	fs     *MockFileSystem
	path   string
	reader *bytes.Reader
	writer *bytes.Buffer
	closed bool
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.reader == nil {
		return 0, io.EOF
	}
	return f.reader.Read(p)
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.writer == nil {
		return 0, fmt.Errorf("write %s: file opened read-only", f.path)
	}
	return f.writer.Write(p)
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true

	if f.writer != nil {
		f.fs.mu.Lock()
		defer f.fs.mu.Unlock()

		f.fs.putLocked(f.path, f.writer.Bytes(), time.Now())
	}

	return nil
}

func (f *mockFileHandle) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, os.ErrClosed
	}

	return f.fs.Stat(f.path)
}

// NewMockFileSystem creates a new in-memory filesystem with an empty root.
func NewMockFileSystem() *MockFileSystem {
	fs := &MockFileSystem{
		files:    make(map[string]*mockFile),
		failures: make(map[string]error),
	}
	fs.files["/"] = &mockFile{path: "/", isDir: true, perm: 0o755, modTime: time.Now()}

	return fs
}

// Create creates a file for writing. Content becomes visible on Close.
func (fs *MockFileSystem) Create(name string) (File, error) {
	name = cleanMockPath(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.failureLocked(OpCreate, name); err != nil {
		return nil, err
	}

	if parent, ok := fs.files[path.Dir(name)]; !ok || !parent.isDir {
		return nil, fmt.Errorf("create %s: %w", name, os.ErrNotExist)
	}

	if file, ok := fs.files[name]; ok && file.isDir {
		return nil, fmt.Errorf("create %s: %w", name, ErrIsDirectory)
	}

	fs.putLocked(name, []byte{}, time.Now())

	return &mockFileHandle{
		fs:     fs,
		path:   name,
		writer: &bytes.Buffer{},
	}, nil
}

// Exists checks if a path exists in the mock filesystem.
func (fs *MockFileSystem) Exists(name string) (bool, error) {
	name = cleanMockPath(name)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.failureLocked(OpExists, name); err != nil {
		return false, err
	}

	_, exists := fs.files[name]

	return exists, nil
}

// Open opens a file for reading.
func (fs *MockFileSystem) Open(name string) (File, error) {
	name = cleanMockPath(name)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.failureLocked(OpOpen, name); err != nil {
		return nil, err
	}

	file, exists := fs.files[name]
	if !exists {
		return nil, fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}

	if file.isDir {
		return nil, fmt.Errorf("open %s: %w", name, ErrIsDirectory)
	}

	return &mockFileHandle{
		fs:     fs,
		path:   name,
		reader: bytes.NewReader(file.data),
	}, nil
}

// OpenDir lists the direct children of a directory in insertion order.
func (fs *MockFileSystem) OpenDir(name string) (DirCursor, error) {
	name = cleanMockPath(name)

	entries, err := fs.listDir(name)
	if err != nil {
		return nil, err
	}

	reload := func() ([]DirEntry, error) {
		fs.mu.RLock()
		err := fs.failureLocked(OpRewind, name)
		fs.mu.RUnlock()

		if err != nil {
			return nil, err
		}

		return fs.listDir(name)
	}

	return &mockDirCursor{fs: fs, sliceCursor: newSliceCursor(entries, reload)}, nil
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	name = cleanMockPath(name)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[name]
	if !exists {
		return nil, fmt.Errorf("stat %s: %w", name, os.ErrNotExist)
	}

	return &mockFileInfo{
		name:    path.Base(name),
		size:    int64(len(file.data)),
		modTime: file.modTime,
		isDir:   file.isDir,
		perm:    file.perm,
	}, nil
}

// WriteFileAtomic replaces the file content in one step, or not at all.
func (fs *MockFileSystem) WriteFileAtomic(name string, data []byte) error {
	name = cleanMockPath(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.failureLocked(OpWrite, name); err != nil {
		return err
	}

	if parent, ok := fs.files[path.Dir(name)]; !ok || !parent.isDir {
		return fmt.Errorf("write %s: %w", name, os.ErrNotExist)
	}

	fs.putLocked(name, data, time.Now())

	return nil
}

// Helper methods for testing

// AddDir adds a directory (and any missing parents) to the mock filesystem.
func (fs *MockFileSystem) AddDir(name string) {
	name = cleanMockPath(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.mkdirAllLocked(name)
}

// AddFile adds a file to the mock filesystem, creating parent directories as needed.
func (fs *MockFileSystem) AddFile(name string, content []byte) {
	name = cleanMockPath(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.mkdirAllLocked(path.Dir(name))
	fs.putLocked(name, content, time.Now())
}

// ClearFailures removes all injected failures.
func (fs *MockFileSystem) ClearFailures() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.failures = make(map[string]error)
}

// EntriesVisited returns how many entries all cursors of this filesystem have yielded.
func (fs *MockFileSystem) EntriesVisited() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.visited
}

// FailOn makes the given operation on path return err until cleared.
func (fs *MockFileSystem) FailOn(op, name string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.failures[op+":"+cleanMockPath(name)] = err
}

// GetFile retrieves a file's content from the mock filesystem.
func (fs *MockFileSystem) GetFile(name string) ([]byte, error) {
	name = cleanMockPath(name)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[name]
	if !exists {
		return nil, os.ErrNotExist
	}

	if file.isDir {
		return nil, ErrIsDirectory
	}

	return append([]byte(nil), file.data...), nil
}

// ListFiles returns all paths in the mock filesystem, sorted.
func (fs *MockFileSystem) ListFiles() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (fs *MockFileSystem) failureLocked(op, name string) error {
	if err, ok := fs.failures[op+":"+name]; ok {
		return fmt.Errorf("%s %s: %w", op, name, err)
	}

	return nil
}

func (fs *MockFileSystem) listDir(name string) ([]DirEntry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.failureLocked(OpOpenDir, name); err != nil {
		return nil, err
	}

	dir, exists := fs.files[name]
	if !exists {
		return nil, fmt.Errorf("opendir %s: %w", name, os.ErrNotExist)
	}

	if !dir.isDir {
		return nil, fmt.Errorf("opendir %s: %w", name, ErrNotDirectory)
	}

	entries := make([]DirEntry, 0)
	for _, p := range fs.order {
		if p == name || path.Dir(p) != name {
			continue
		}
		entries = append(entries, DirEntry{Name: path.Base(p), IsDir: fs.files[p].isDir})
	}

	return entries, nil
}

// mkdirAllLocked creates name and its parents; the lock must be held.
func (fs *MockFileSystem) mkdirAllLocked(name string) {
	if name == "/" {
		return
	}

	fs.mkdirAllLocked(path.Dir(name))

	if _, exists := fs.files[name]; !exists {
		fs.files[name] = &mockFile{path: name, modTime: time.Now(), isDir: true, perm: 0o755}
		fs.order = append(fs.order, name)
	}
}

// putLocked stores file content, keeping the listing position of an existing entry.
func (fs *MockFileSystem) putLocked(name string, data []byte, modTime time.Time) {
	if file, exists := fs.files[name]; exists {
		file.data = append([]byte(nil), data...)
		file.modTime = modTime
		return
	}

	fs.files[name] = &mockFile{
		path:    name,
		data:    append([]byte(nil), data...),
		modTime: modTime,
		perm:    0o644,
	}
	fs.order = append(fs.order, name)
}

// mockDirCursor counts the entries it yields on the owning filesystem.
type mockDirCursor struct {
	*sliceCursor
	fs *MockFileSystem
}

func (c *mockDirCursor) Next() (DirEntry, bool) {
	entry, ok := c.sliceCursor.Next()
	if ok {
		c.fs.mu.Lock()
		c.fs.visited++
		c.fs.mu.Unlock()
	}

	return entry, ok
}

func cleanMockPath(name string) string {
	return path.Clean("/" + name)
}
