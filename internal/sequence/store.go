package sequence

import (
	"fmt"
	"io"

	"github.com/joe/frame-folders/pkg/filesystem"
)

// Exported constants.
const (
	// DefaultRecordPath is where the state record lives on the volume.
	DefaultRecordPath = "/folder.txt"
)

// maxRecordSize bounds how much of the record is read: the longest folder name,
// the delimiter, a 16-byte number field and a trailing newline.
const maxRecordSize = MaxFolderNameLen + 1 + 16 + 2

// Store loads and saves the sequence State as a small text record on the volume.
type Store struct {
	fs   filesystem.FileSystem
	path string
}

// NewStore creates a Store for the record at path; an empty path uses DefaultRecordPath.
func NewStore(fs filesystem.FileSystem, path string) *Store {
	if path == "" {
		path = DefaultRecordPath
	}

	return &Store{fs: fs, path: path}
}

// Path returns the volume path of the record.
func (s *Store) Path() string {
	return s.path
}

// Load reads the record. On any error the zero State is returned with the error.
func (s *Store) Load() (State, error) {
	file, err := s.fs.Open(s.path)
	if err != nil {
		return State{}, fmt.Errorf("failed to open state record %s: %w", s.path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	record, err := io.ReadAll(io.LimitReader(file, int64(maxRecordSize)+1))
	if err != nil {
		return State{}, fmt.Errorf("failed to read state record %s: %w", s.path, err)
	}

	if len(record) > maxRecordSize {
		return State{}, fmt.Errorf("%w: %s is larger than %d bytes", ErrMalformedRecord, s.path, maxRecordSize)
	}

	state, err := DecodeRecord(record)
	if err != nil {
		return State{}, fmt.Errorf("state record %s: %w", s.path, err)
	}

	return state, nil
}

// Save replaces the record with state. If the write fails the previous record is left as it was.
func (s *Store) Save(state State) error {
	if err := ValidateFolderName(state.Folder); err != nil {
		return fmt.Errorf("refusing to save state: %w", err)
	}

	if state.Number < 0 {
		return fmt.Errorf("refusing to save state: negative file number %d", state.Number)
	}

	err := s.fs.WriteFileAtomic(s.path, EncodeRecord(state))
	if err != nil {
		return fmt.Errorf("failed to save state record %s: %w", s.path, err)
	}

	return nil
}
