package sequence

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FolderFilter decides which directories may become the current folder.
type FolderFilter interface {
	// Allows returns true if the folder with the given name may be selected.
	Allows(name string) bool
}

// GlobFilter implements FolderFilter using a glob pattern.
// Matching is case-insensitive, since removable volumes are usually FAT formatted.
type GlobFilter struct {
	normalizedPattern string
	isEmpty           bool
}

// NewGlobFilter creates a GlobFilter for pattern. Empty pattern allows every folder.
func NewGlobFilter(pattern string) (*GlobFilter, error) {
	normalized := strings.ToLower(pattern)

	if pattern != "" && !doublestar.ValidatePattern(normalized) {
		return nil, fmt.Errorf("invalid folder pattern %q", pattern) //nolint:err113 // validation with actual value
	}

	return &GlobFilter{
		normalizedPattern: normalized,
		isEmpty:           pattern == "",
	}, nil
}

// Allows returns true if name matches the pattern.
func (f *GlobFilter) Allows(name string) bool {
	if f.isEmpty {
		return true
	}

	matched, err := doublestar.Match(f.normalizedPattern, strings.ToLower(name))
	if err != nil {
		return false
	}

	return matched
}

// String returns the pattern the filter was built from, lowercased.
func (f *GlobFilter) String() string {
	if f.isEmpty {
		return "*"
	}

	return f.normalizedPattern
}

// allowAll is the filter used when none is configured.
type allowAll struct{}

func (allowAll) Allows(string) bool { return true }
