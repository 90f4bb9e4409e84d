// Package player steps a frame sequence on a timer.
package player

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/joe/frame-folders/internal/sequence"
)

// Stepper is the part of a sequence the player drives.
type Stepper interface {
	Advance(delta int) (sequence.Outcome, error)
	CurrentPath() string
	State() sequence.State
}

// Waker blocks until the volume may have gained frames.
type Waker interface {
	Wait(ctx context.Context) error
}

// Frame is the result of one step.
type Frame struct {
	Path    string
	State   sequence.State
	Outcome sequence.Outcome
	Err     error
}

// Options configures a Player.
type Options struct {
	Interval time.Duration
	Delta    int
	// Waker, if set, is used instead of the interval when no folder has frames.
	Waker  Waker
	Logger *zap.Logger
}

// Player advances a Stepper every interval.
type Player struct {
	seq      Stepper
	interval time.Duration
	delta    int
	waker    Waker
	logger   *zap.Logger
	steps    int
}

// New creates a Player.
func New(seq Stepper, opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Player{
		seq:      seq,
		interval: opts.Interval,
		delta:    opts.Delta,
		waker:    opts.Waker,
		logger:   logger,
	}
}

// Interval returns the time between steps.
func (p *Player) Interval() time.Duration {
	return p.interval
}

// Steps returns how many steps have been taken.
func (p *Player) Steps() int {
	return p.steps
}

// CanWait reports whether the player can wait for the volume to change.
func (p *Player) CanWait() bool {
	return p.waker != nil
}

// Step advances once.
func (p *Player) Step() Frame {
	return p.StepBy(p.delta)
}

// StepBy advances delta frames, regardless of the configured delta.
func (p *Player) StepBy(delta int) Frame {
	p.steps++

	outcome, err := p.seq.Advance(delta)
	if err != nil {
		p.logger.Warn("Advance reported a problem", zap.Error(err))
	}

	frame := Frame{
		Path:    p.seq.CurrentPath(),
		State:   p.seq.State(),
		Outcome: outcome,
		Err:     err,
	}

	p.logger.Debug("Step",
		zap.String("path", frame.Path),
		zap.Stringer("outcome", outcome))

	return frame
}

// Wait blocks until the volume changes or ctx ends. Without a waker it returns at once.
func (p *Player) Wait(ctx context.Context) error {
	if p.waker == nil {
		return nil
	}

	p.logger.Info("No folder has frames, waiting for the volume to change")

	return p.waker.Wait(ctx)
}

// Run steps immediately and then every interval, passing each frame to emit,
// until ctx ends. When no folder has frames and a waker is set, the
// next step happens once the waker returns instead of after the interval.
func (p *Player) Run(ctx context.Context, emit func(Frame)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return ignoreCancel(err)
		}

		frame := p.Step()
		emit(frame)

		if frame.Outcome == sequence.OutcomeExhausted && p.waker != nil {
			if err := p.Wait(ctx); err != nil {
				return ignoreCancel(err)
			}

			ticker.Reset(p.interval)

			continue
		}

		select {
		case <-ctx.Done():
			return ignoreCancel(ctx.Err())
		case <-ticker.C:
		}
	}
}

// ignoreCancel treats the end of ctx as a normal stop.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	return err
}
