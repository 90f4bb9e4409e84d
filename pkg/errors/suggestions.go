package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryMedia:
		return g.generateMediaSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryRecord:
		return g.generateRecordSuggestions(affectedPath)
	case CategoryRemote:
		return g.generateRemoteSuggestions(affectedPath)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateMediaSuggestions(_ string) []string {
	return []string{
		"Re-seat the card or reconnect the storage device",
		"Check whether the volume was remounted read-only after an error ('mount | grep ro,')",
		"Run a filesystem check on the card from another machine",
		"Check system logs for hardware issues",
	}
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the volume is mounted at the configured root",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
	}

	suggestions = append(suggestions,
		"Frame folders must already exist; they are never created automatically")

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure the volume is readable, and the state record writable, by this user",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -la' on the volume root")
	}

	return suggestions
}

func (g *suggestionGenerator) generateRecordSuggestions(path string) []string {
	suggestions := []string{
		"The state record must contain '<folder>,<number>', for example 'folder03,128'",
		"Playback continues from the first folder; the record is rewritten on the next folder change",
	}

	if path != "" {
		suggestions = append(suggestions, "Inspect or delete the record: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generateRemoteSuggestions(_ string) []string {
	return []string{
		"Check that the host is reachable and the SSH service is running",
		"Ensure your key is loaded in ssh-agent or present in ~/.ssh",
		"Connect once with 'ssh user@host' to record the host key in ~/.ssh/known_hosts",
	}
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run again with --log-level debug to see each storage operation",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
