// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap/zapcore"

	"github.com/joe/frame-folders/pkg/filesystem"
)

// Exported constants.
const (
	DefaultStateFile = "/folder.txt"
	DefaultInterval  = 2 * time.Second
	DefaultDelta     = 1
)

// Exported variables.
var (
	ErrRootRequired    = errors.New("volume root is required (--root or FRAME_FOLDERS_ROOT)")
	ErrWatchNeedsLocal = errors.New("--watch only works on a local volume")
)

// LogFormat selects how log entries are encoded
type LogFormat int

const (
	// LogConsole - human-readable lines
	LogConsole LogFormat = iota
	// LogJSON - one JSON object per line
	LogJSON
)

// String returns the string representation of LogFormat
func (lf LogFormat) String() string {
	switch lf {
	case LogConsole:
		return "console"
	case LogJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseLogFormat parses a string into a LogFormat
func ParseLogFormat(s string) (LogFormat, error) {
	s = strings.ToLower(s)
	switch s {
	case "console", "text":
		return LogConsole, nil
	case "json":
		return LogJSON, nil
	default:
		return LogConsole, fmt.Errorf("invalid log format: %s (valid: console, json)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (lf *LogFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseLogFormat(string(text))
	if err != nil {
		return err
	}
	*lf = parsed
	return nil
}

// Command identifies the subcommand to run
type Command int

const (
	// CommandPlay - continuous playback (default)
	CommandPlay Command = iota
	// CommandShow - print the current position
	CommandShow
	// CommandAdvance - advance once and checkpoint
	CommandAdvance
	// CommandRollover - force a folder search
	CommandRollover
)

// String returns the subcommand name
func (c Command) String() string {
	switch c {
	case CommandPlay:
		return "play"
	case CommandShow:
		return "show"
	case CommandAdvance:
		return "advance"
	case CommandRollover:
		return "rollover"
	default:
		return "unknown"
	}
}

// ShowCmd prints the current folder, number and frame path.
type ShowCmd struct{}

// AdvanceCmd advances the sequence once.
type AdvanceCmd struct {
	Delta int `arg:"-n,--delta" default:"1" help:"Number of frames to move forward"`
}

// RolloverCmd forces a search for the next folder.
type RolloverCmd struct{}

// PlayCmd advances the sequence on a timer.
type PlayCmd struct {
	Interval time.Duration `arg:"-i,--interval" default:"2s" help:"Time between frames"`
	Delta    int           `arg:"-n,--delta" default:"1" help:"Number of frames to move forward each tick"`
	Watch    bool          `arg:"-w,--watch" help:"When no folder has frames, wait for the volume to change (local volumes only)"`
	NoTUI    bool          `arg:"--no-tui" help:"Print frame paths instead of running the interactive screen"`
}

// Config holds the application configuration
type Config struct {
	Root      string    `arg:"-r,--root,env:FRAME_FOLDERS_ROOT" help:"Volume root: local directory or sftp://user@host[:port]/path"`
	StateFile string    `arg:"--state-file" default:"/folder.txt" help:"Volume path of the state record"`
	Folders   string    `arg:"--folders" help:"Glob that folder names must match to be played (e.g. 'trip-*')"`
	LogLevel  string    `arg:"--log-level" default:"info" help:"Log level: debug|info|warn|error"`
	LogFormat LogFormat `arg:"--log-format" default:"console" help:"Log encoding: console|json"`
	LogFile   string    `arg:"--log-file" help:"Write logs to this file instead of stderr"`

	Show     *ShowCmd     `arg:"subcommand:show" help:"Print the current frame"`
	Advance  *AdvanceCmd  `arg:"subcommand:advance" help:"Advance once and save the position"`
	Rollover *RolloverCmd `arg:"subcommand:rollover" help:"Move to the next folder holding a first frame"`
	Play     *PlayCmd     `arg:"subcommand:play" help:"Advance continuously (default)"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Steps through numbered JPEG frames stored in folders on a volume, remembering its place across restarts"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "frame-folders 1.0.0"
}

// Command returns the selected subcommand
func (cfg *Config) Command() Command {
	switch {
	case cfg.Show != nil:
		return CommandShow
	case cfg.Advance != nil:
		return CommandAdvance
	case cfg.Rollover != nil:
		return CommandRollover
	default:
		return CommandPlay
	}
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// ParseArgs parses args (without the program name) and returns configuration.
// Help and version requests come back as arg.ErrHelp and arg.ErrVersion.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	parser, err := arg.NewParser(arg.Config{Program: "frame-folders"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	if err := parser.Parse(args); err != nil {
		return nil, err //nolint:wrapcheck // callers compare against arg.ErrHelp
	}

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	// No subcommand means play
	if cfg.Command() == CommandPlay && cfg.Play == nil {
		cfg.Play = &PlayCmd{Interval: DefaultInterval, Delta: DefaultDelta}
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFile
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the whole configuration
func (cfg *Config) Validate() error {
	if err := cfg.ValidateRoot(); err != nil {
		return err
	}

	if !strings.HasPrefix(cfg.StateFile, "/") || strings.HasSuffix(cfg.StateFile, "/") {
		return fmt.Errorf("state file must be a file path starting with /: %s", cfg.StateFile)
	}

	if err := ValidateFolderPattern(cfg.Folders); err != nil {
		return err
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if cfg.Advance != nil && cfg.Advance.Delta < 0 {
		return fmt.Errorf("delta must not be negative: %d", cfg.Advance.Delta)
	}

	if cfg.Play != nil {
		return cfg.validatePlay()
	}

	return nil
}

func (cfg *Config) validatePlay() error {
	if cfg.Play.Delta < 0 {
		return fmt.Errorf("delta must not be negative: %d", cfg.Play.Delta)
	}

	if cfg.Play.Interval <= 0 {
		return fmt.Errorf("interval must be positive: %s", cfg.Play.Interval)
	}

	if cfg.Play.Watch && cfg.IsRemote() {
		return ErrWatchNeedsLocal
	}

	return nil
}

// ValidateRoot validates that the volume root is a reachable location
func (cfg *Config) ValidateRoot() error {
	if cfg.Root == "" {
		return ErrRootRequired
	}

	parsed, err := filesystem.ParsePath(cfg.Root)
	if err != nil {
		return fmt.Errorf("invalid volume root: %w", err)
	}

	// Remote roots are checked when connecting
	if parsed.IsRemote {
		return nil
	}

	info, err := os.Stat(parsed.LocalPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("volume root does not exist: %s", parsed.LocalPath)
	}
	if err != nil {
		return fmt.Errorf("cannot access volume root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("volume root is not a directory: %s", parsed.LocalPath)
	}

	return nil
}

// IsRemote reports whether the root is an SFTP location
func (cfg *Config) IsRemote() bool {
	return strings.HasPrefix(cfg.Root, "sftp://")
}

// ValidateFolderPattern validates a glob pattern for folder names
func ValidateFolderPattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	if !doublestar.ValidatePattern(strings.ToLower(pattern)) {
		return fmt.Errorf("invalid folder pattern: %s", pattern)
	}

	return nil
}
