// Package main is the entry point for the frame-folders application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/frame-folders/internal/config"
	"github.com/joe/frame-folders/internal/logging"
	"github.com/joe/frame-folders/internal/player"
	"github.com/joe/frame-folders/internal/sequence"
	"github.com/joe/frame-folders/internal/tui"
	actionable "github.com/joe/frame-folders/pkg/errors"
	"github.com/joe/frame-folders/pkg/filesystem"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	interactive := cfg.Command() == config.CommandPlay && !cfg.Play.NoTUI && term.IsTerminal(int(os.Stdout.Fd()))

	err = run(ctx, cfg, interactive, os.Stdout)

	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the configured subcommand against the volume.
func run(ctx context.Context, cfg *config.Config, interactive bool, out io.Writer) error {
	logger, closeLog, err := newLogger(cfg, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	fs, closeFS, err := filesystem.CreateFileSystem(cfg.Root)
	if err != nil {
		return err //nolint:wrapcheck // already names the volume
	}
	defer closeFS()

	filter, err := sequence.NewGlobFilter(cfg.Folders)
	if err != nil {
		return err //nolint:wrapcheck // validation error is self-describing
	}

	seq := sequence.New(fs,
		sequence.WithLogger(logger),
		sequence.WithRecordPath(cfg.StateFile),
		sequence.WithFilter(filter),
	)

	// A missing or malformed record is reported by the sequencer and playback starts over.
	_ = seq.Initialize()

	switch cfg.Command() {
	case config.CommandShow:
		printState(out, seq.State())
		return nil

	case config.CommandAdvance:
		return runAdvance(seq, cfg.Advance.Delta, out)

	case config.CommandRollover:
		return runRollover(seq, out)

	case config.CommandPlay:
		return runPlay(ctx, cfg, seq, logger, interactive, out)
	}

	return nil
}

func runAdvance(seq *sequence.Sequencer, delta int, out io.Writer) error {
	outcome, err := seq.Advance(delta)
	if errors.Is(err, sequence.ErrNegativeDelta) {
		return err
	}

	fmt.Fprintln(out, seq.CurrentPath())

	saveErr := seq.Save()

	if outcome == sequence.OutcomeExhausted {
		return errors.Join(sequence.ErrNoCandidate, err, saveErr)
	}

	return errors.Join(err, saveErr)
}

func runRollover(seq *sequence.Sequencer, out io.Writer) error {
	result, err := seq.Rollover()

	printState(out, seq.State())

	if result.Outcome == sequence.OutcomeExhausted {
		return errors.Join(sequence.ErrNoCandidate, err)
	}

	return err
}

func runPlay(
	ctx context.Context,
	cfg *config.Config,
	seq *sequence.Sequencer,
	logger *zap.Logger,
	interactive bool,
	out io.Writer,
) error {
	opts := player.Options{
		Interval: cfg.Play.Interval,
		Delta:    cfg.Play.Delta,
		Logger:   logger,
	}

	if cfg.Play.Watch {
		parsed, err := filesystem.ParsePath(cfg.Root)
		if err != nil {
			return err //nolint:wrapcheck // validated already
		}

		opts.Waker = player.NewDirWatcher(parsed.LocalPath, logger)
	}

	p := player.New(seq, opts)

	var err error
	if interactive {
		err = tui.Run(ctx, p, cfg.Root)
	} else {
		err = p.Run(ctx, func(frame player.Frame) {
			fmt.Fprintln(out, frame.Path)
		})
	}

	// Checkpoint so a restart resumes at the last frame shown.
	return errors.Join(err, seq.Save())
}

func newLogger(cfg *config.Config, interactive bool) (*zap.Logger, func(), error) {
	// The interactive screen owns the terminal; log only to a file there.
	if interactive && cfg.LogFile == "" {
		return zap.NewNop(), func() {}, nil
	}

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat.String(),
		OutputPath: cfg.LogFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return logger.With(zap.String("volume", cfg.Root)), closer, nil
}

func printState(out io.Writer, state sequence.State) {
	folder := state.Folder
	if folder == "" {
		folder = "(volume root)"
	}

	fmt.Fprintf(out, "folder: %s\n", folder)
	fmt.Fprintf(out, "number: %d\n", state.Number)
	fmt.Fprintf(out, "path:   %s\n", state.Path())
}

func printError(w io.Writer, err error) {
	enriched := actionable.NewEnricher().Enrich(err, "")

	fmt.Fprintf(w, "Error: %v\n", err)

	if suggestions := actionable.FormatSuggestions(enriched); suggestions != "" {
		fmt.Fprintln(w, suggestions)
	}
}
