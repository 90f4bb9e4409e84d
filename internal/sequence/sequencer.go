// Package sequence keeps track of which frame a display should show next.
//
// Frames live on a volume as "/<folder>/<NNNNNN>.jpg". A Sequencer holds the
// current folder and file number, advances the number, and when the next frame
// is missing moves on to the next folder in the volume listing that holds a
// first frame. The current folder survives restarts through a small
// "<folder>,<number>" record kept on the same volume.
package sequence

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/joe/frame-folders/pkg/filesystem"
)

// Sequencer is the frame position for one volume. It is not safe for concurrent use.
type Sequencer struct {
	fs      filesystem.FileSystem
	store   *Store
	scanner *Scanner
	filter  FolderFilter
	logger  *zap.Logger
	state   State
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecordPath stores the state record at path instead of DefaultRecordPath.
func WithRecordPath(path string) Option {
	return func(s *Sequencer) {
		s.store = NewStore(s.fs, path)
	}
}

// WithFilter restricts which folders a rollover may select.
func WithFilter(filter FolderFilter) Option {
	return func(s *Sequencer) {
		s.filter = filter
	}
}

// New creates a Sequencer over fs positioned at the volume root, number 0.
func New(fs filesystem.FileSystem, opts ...Option) *Sequencer {
	seq := &Sequencer{
		fs:     fs,
		logger: zap.NewNop(),
	}

	seq.store = NewStore(fs, DefaultRecordPath)

	for _, opt := range opts {
		opt(seq)
	}

	seq.scanner = NewScanner(fs, seq.store, seq.filter, seq.logger)

	return seq
}

// Initialize loads the state record. A missing or unreadable record keeps the
// current position; a malformed one resets it to the initial position. Either
// way the Sequencer stays usable and the error is returned for reporting.
func (s *Sequencer) Initialize() error {
	state, err := s.store.Load()
	if err == nil {
		s.state = state
		s.logger.Info("Loaded state",
			zap.String("folder", state.Folder),
			zap.Int("number", state.Number))

		return nil
	}

	if errors.Is(err, ErrMalformedRecord) {
		s.state = State{}
		s.logger.Warn("State record is malformed, starting from the volume root", zap.Error(err))
	} else {
		s.logger.Warn("Failed to load state, keeping current position", zap.Error(err))
	}

	return err
}

// State returns the current position.
func (s *Sequencer) State() State {
	return s.state
}

// CurrentPath returns the frame path for the current position.
func (s *Sequencer) CurrentPath() string {
	return s.state.Path()
}

// RecordPath returns where the state record is kept on the volume.
func (s *Sequencer) RecordPath() string {
	return s.store.Path()
}

// Advance moves delta frames forward. If the resulting frame does not exist, or
// its number no longer fits the path format, a rollover selects the next folder
// and the number restarts at 1.
//
// A negative delta is rejected with ErrNegativeDelta and nothing changes. Other
// errors report storage trouble during a rollover; the returned Outcome and the
// position are valid regardless.
func (s *Sequencer) Advance(delta int) (Outcome, error) {
	if delta < 0 {
		return OutcomeAdvanced, fmt.Errorf("%w: %d", ErrNegativeDelta, delta)
	}

	if s.state.Number > math.MaxInt-delta {
		s.logger.Warn("File number overflow, moving to next folder",
			zap.Int("number", s.state.Number),
			zap.Int("delta", delta),
			zap.Error(ErrSequenceOverflow))

		return s.rollover()
	}

	s.state.Number += delta

	if !FitsPathFormat(s.state.Number) {
		s.logger.Warn("File number overflow, moving to next folder",
			zap.Int("number", s.state.Number),
			zap.Error(ErrSequenceOverflow))

		return s.rollover()
	}

	path := s.state.Path()
	s.logger.Debug("Checking frame", zap.String("path", path))

	exists, err := s.fs.Exists(path)
	if err != nil {
		s.logger.Warn("Failed to check frame", zap.String("path", path), zap.Error(err))
		exists = false
	}

	if exists {
		return OutcomeAdvanced, nil
	}

	s.logger.Info("Frame not found", zap.String("path", path))

	return s.rollover()
}

// Rollover moves to the next folder holding a first frame, as Advance does when
// the current folder runs out.
func (s *Sequencer) Rollover() (RolloverResult, error) {
	return s.scanner.Rollover(&s.state)
}

// Save writes the current position to the state record. Rollovers save on their
// own; Save is a checkpoint so that a restart resumes at the same frame.
func (s *Sequencer) Save() error {
	if err := s.store.Save(s.state); err != nil {
		s.logger.Warn("Failed to save state", zap.Error(err))
		return err
	}

	return nil
}

func (s *Sequencer) rollover() (Outcome, error) {
	result, err := s.scanner.Rollover(&s.state)

	return result.Outcome, err
}
