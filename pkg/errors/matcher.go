package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Categories are tried in order, so a message naming both a missing path and an
// SSH failure is reported as remote.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []categoryPatterns{
			{CategoryRecord, []string{
				"malformed state record",
				"folder name too long",
			}},
			{CategoryRemote, []string{
				"ssh connection failed",
				"ssh: handshake failed",
				"sftp session",
				"connection refused",
				"no route to host",
				"known_hosts",
				"no ssh authentication methods",
			}},
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryMedia, []string{
				"input/output error",
				"i/o error",
				"read-only file system",
				"no space left on device",
				"no medium found",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file does not exist",
				"not a directory",
				"path does not exist",
			}},
		},
	}
}

type categoryPatterns struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	rules []categoryPatterns
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
