package sequence

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joe/frame-folders/pkg/filesystem"
)

// Outcome describes where an advance or rollover left the sequence.
type Outcome int

const (
	// OutcomeAdvanced means the next frame exists in the current folder.
	OutcomeAdvanced Outcome = iota
	// OutcomeRolledOver means a folder holding a first frame was selected.
	OutcomeRolledOver
	// OutcomeExhausted means no folder holds a first frame; the folder is unchanged.
	OutcomeExhausted
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeRolledOver:
		return "rolled-over"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// RolloverResult reports what a folder search found.
type RolloverResult struct {
	Outcome Outcome
	// Folder is the current folder after the search.
	Folder string
	// CurrentFound is true when the previous folder was present in the listing.
	CurrentFound bool
	// Wrapped is true when the listing was restarted to search ahead of the previous folder.
	Wrapped bool
	// Inspected counts the listing entries looked at.
	Inspected int
}

// rolloverPhase is a state of the folder search.
type rolloverPhase int

const (
	phaseLocating rolloverPhase = iota
	phaseScanning
	phaseFound
	phaseExhausted
)

// Scanner searches the volume root for the next folder that can receive the sequence.
type Scanner struct {
	fs     filesystem.FileSystem
	store  *Store
	filter FolderFilter
	logger *zap.Logger
}

// NewScanner creates a Scanner. A nil filter allows every folder; a nil logger discards output.
func NewScanner(fs filesystem.FileSystem, store *Store, filter FolderFilter, logger *zap.Logger) *Scanner {
	if filter == nil {
		filter = allowAll{}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scanner{
		fs:     fs,
		store:  store,
		filter: filter,
		logger: logger,
	}
}

// rolloverScan carries one search over a directory listing.
type rolloverScan struct {
	cursor  filesystem.DirCursor
	state   *State
	result  RolloverResult
	err     error
	wrapped bool
}

// Rollover restarts the sequence at 1 and moves state to the first directory after
// the current folder, in listing order, that contains frame 1. The listing wraps
// around at most once. The chosen folder is saved to the store immediately.
//
// When nothing qualifies the folder is left as it was and the outcome is
// OutcomeExhausted. A returned error reports a storage failure; state is valid
// either way.
func (s *Scanner) Rollover(state *State) (RolloverResult, error) {
	logger := s.logger.With(zap.String("current_folder", state.Folder))
	logger.Info("Searching new folder")

	state.Number = 1

	exhausted := RolloverResult{Outcome: OutcomeExhausted, Folder: state.Folder}

	cursor, err := s.fs.OpenDir("/")
	if err != nil {
		logger.Warn("Failed to open volume root", zap.Error(err))
		return exhausted, fmt.Errorf("rollover: %w", err)
	}

	defer func() {
		_ = cursor.Close()
	}()

	if err := cursor.Rewind(); err != nil {
		logger.Warn("Failed to rewind volume root", zap.Error(err))
		return exhausted, fmt.Errorf("rollover: %w", err)
	}

	scan := &rolloverScan{
		cursor: cursor,
		state:  state,
		result: exhausted,
	}

	phase := phaseLocating
	for phase != phaseFound && phase != phaseExhausted {
		switch phase {
		case phaseLocating:
			phase = s.locateCurrent(scan, logger)
		case phaseScanning:
			phase = s.scanForCandidate(scan, logger)
		case phaseFound, phaseExhausted:
		}
	}

	scan.result.Wrapped = scan.wrapped

	if phase == phaseExhausted {
		scan.result.Outcome = OutcomeExhausted
		scan.result.Folder = state.Folder

		logger.Warn("Suitable folder not found",
			zap.Int("inspected", scan.result.Inspected),
			zap.Error(ErrNoCandidate))
	}

	return scan.result, scan.err
}

// locateCurrent consumes the listing up to and including the current folder.
// If the folder is not listed the whole listing has been read, so the candidate
// scan starts over from the first entry and that pass already counts as the wrap.
func (s *Scanner) locateCurrent(scan *rolloverScan, logger *zap.Logger) rolloverPhase {
	for {
		entry, ok := scan.cursor.Next()
		if !ok {
			break
		}

		scan.result.Inspected++

		if entry.IsDir && entry.Name == scan.state.Folder {
			logger.Debug("Current folder found", zap.String("entry", entry.Name))

			scan.result.CurrentFound = true

			return phaseScanning
		}
	}

	if err := scan.cursor.Err(); err != nil {
		logger.Warn("Listing failed while locating current folder", zap.Error(err))
	}

	logger.Debug("Current folder was not found, rewinding")

	return s.rewind(scan, logger)
}

// scanForCandidate continues the listing and stops at the first directory holding frame 1.
func (s *Scanner) scanForCandidate(scan *rolloverScan, logger *zap.Logger) rolloverPhase {
	for {
		entry, ok := scan.cursor.Next()
		if !ok {
			break
		}

		scan.result.Inspected++

		if s.isCandidate(entry, logger) {
			s.selectFolder(scan, entry.Name, logger)
			return phaseFound
		}
	}

	if err := scan.cursor.Err(); err != nil {
		logger.Warn("Listing failed while scanning for a folder", zap.Error(err))
	}

	if scan.wrapped {
		return phaseExhausted
	}

	logger.Debug("Reached end of listing, rewinding")

	return s.rewind(scan, logger)
}

func (s *Scanner) isCandidate(entry filesystem.DirEntry, logger *zap.Logger) bool {
	logger.Debug("Checking entry", zap.String("entry", entry.Name), zap.Bool("dir", entry.IsDir))

	if !entry.IsDir {
		return false
	}

	if !s.filter.Allows(entry.Name) {
		logger.Debug("Folder excluded by filter", zap.String("entry", entry.Name))
		return false
	}

	if err := ValidateFolderName(entry.Name); err != nil {
		logger.Warn("Skipping folder", zap.String("entry", entry.Name), zap.Error(err))
		return false
	}

	firstFrame := BuildPath(entry.Name, 1)

	exists, err := s.fs.Exists(firstFrame)
	if err != nil {
		logger.Warn("Failed to check first frame", zap.String("path", firstFrame), zap.Error(err))
		return false
	}

	if !exists {
		logger.Debug("First frame not found, moving on", zap.String("path", firstFrame))
	}

	return exists
}

// selectFolder makes name the current folder and persists it.
func (s *Scanner) selectFolder(scan *rolloverScan, name string, logger *zap.Logger) {
	scan.state.Folder = name
	scan.result.Outcome = OutcomeRolledOver
	scan.result.Folder = name

	logger.Info("Found new folder", zap.String("folder", name))

	if s.store == nil {
		return
	}

	if err := s.store.Save(*scan.state); err != nil {
		logger.Warn("Failed to persist new folder", zap.String("folder", name), zap.Error(err))
		scan.err = fmt.Errorf("rollover: %w", err)
	}
}

// rewind restarts the listing for the wraparound pass.
func (s *Scanner) rewind(scan *rolloverScan, logger *zap.Logger) rolloverPhase {
	scan.wrapped = true

	if err := scan.cursor.Rewind(); err != nil {
		logger.Warn("Failed to rewind volume root", zap.Error(err))
		scan.err = fmt.Errorf("rollover: %w", err)

		return phaseExhausted
	}

	return phaseScanning
}
