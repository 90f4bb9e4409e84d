package sequence

import "errors"

// Exported variables.
var (
	// ErrFolderNameTooLong is returned for folder names that would not fit a frame path.
	ErrFolderNameTooLong = errors.New("folder name too long")
	// ErrInvalidFolderName is returned for folder names that cannot round-trip through the state record.
	ErrInvalidFolderName = errors.New("invalid folder name")
	// ErrMalformedRecord is returned when the state record cannot be parsed.
	ErrMalformedRecord = errors.New("malformed state record")
	// ErrNegativeDelta is returned when asked to move the sequence backwards.
	ErrNegativeDelta = errors.New("negative advance delta")
	// ErrNoCandidate is returned when a rollover finds no folder holding a first frame.
	ErrNoCandidate = errors.New("no suitable folder found")
	// ErrSequenceOverflow is reported when the file number no longer fits the path format.
	ErrSequenceOverflow = errors.New("file number exceeds path format")
)
