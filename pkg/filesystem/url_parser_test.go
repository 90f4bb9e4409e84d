//nolint:varnamelen // Test files use idiomatic short variable names (t, etc.)
package filesystem_test

import (
	"errors"
	"testing"

	"github.com/joe/frame-folders/pkg/filesystem"
)

// TestParsePath_Local tests ParsePath with local filesystem paths.
func TestParsePath_Local(t *testing.T) {
	t.Parallel()

	result, err := filesystem.ParsePath("/media/sdcard/")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.IsRemote {
		t.Error("IsRemote should be false for local path")
	}
	if result.LocalPath != "/media/sdcard" {
		t.Errorf("LocalPath = %q, want %q", result.LocalPath, "/media/sdcard")
	}
}

// TestParsePath_Empty tests that an empty location is rejected.
func TestParsePath_Empty(t *testing.T) {
	t.Parallel()

	_, err := filesystem.ParsePath("  ")
	if !errors.Is(err, filesystem.ErrEmptyVolumePath) {
		t.Errorf("ParsePath(blank) error = %v, want ErrEmptyVolumePath", err)
	}
}

// TestParsedPath_String tests that String renders a location ParsePath accepts again.
func TestParsedPath_String(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"sftp://pi@frame.local:22/frames",
		"sftp://pi@frame.local:2222//mnt/sd",
		"sftp://pi@frame.local:22",
		"/media/sdcard",
	} {
		parsed, err := filesystem.ParsePath(input)
		if err != nil {
			t.Fatalf("ParsePath(%q) failed: %v", input, err)
		}

		if got := parsed.String(); got != input {
			t.Errorf("ParsePath(%q).String() = %q", input, got)
		}
	}
}

// TestParsePath_SFTP tests ParsePath with valid SFTP URLs.
//
//nolint:funlen // Comprehensive table-driven test with many SFTP URL parsing cases
func TestParsePath_SFTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantUser string
		wantHost string
		wantPort int
		wantPath string
	}{
		{
			name:     "basic SFTP URL",
			input:    "sftp://user@host/path",
			wantErr:  false,
			wantUser: "user",
			wantHost: "host",
			wantPort: 22,
			wantPath: "path",
		},
		{
			name:     "SFTP URL with custom port",
			input:    "sftp://admin@server.com:2222/home/data",
			wantErr:  false,
			wantUser: "admin",
			wantHost: "server.com",
			wantPort: 2222,
			wantPath: "home/data",
		},
		{
			name:     "SFTP URL with absolute path",
			input:    "sftp://pi@frame.local//mnt/sd",
			wantErr:  false,
			wantUser: "pi",
			wantHost: "frame.local",
			wantPort: 22,
			wantPath: "/mnt/sd",
		},
		{
			name:     "SFTP URL without path",
			input:    "sftp://pi@frame.local",
			wantErr:  false,
			wantUser: "pi",
			wantHost: "frame.local",
			wantPort: 22,
			wantPath: ".",
		},
		{
			name:    "SFTP URL without username",
			input:   "sftp://host/path",
			wantErr: true,
		},
		{
			name:    "SFTP URL with out of range port",
			input:   "sftp://pi@host:70000/path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := filesystem.ParsePath(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got nil")
				}

				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if result.User != tt.wantUser {
				t.Errorf("User = %q, want %q", result.User, tt.wantUser)
			}
			if result.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", result.Host, tt.wantHost)
			}
			if result.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", result.Port, tt.wantPort)
			}
			if result.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", result.Path, tt.wantPath)
			}
		})
	}
}
