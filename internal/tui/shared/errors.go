package shared

import (
	"fmt"
	"strings"

	"github.com/joe/frame-folders/pkg/errors"
)

// RenderProblem renders err with the suggestions the enricher finds for it.
// Messages longer than maxWidth are truncated; maxWidth <= 0 disables truncation.
func RenderProblem(err error, affectedPath string, maxWidth int) string {
	if err == nil {
		return ""
	}

	enriched := errors.NewEnricher().Enrich(err, affectedPath)

	errMsg := enriched.Error()
	if maxWidth > 3 && len(errMsg) > maxWidth {
		errMsg = errMsg[:maxWidth-3] + "..."
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %s", ErrorSymbol(), RenderError(errMsg))

	if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
		builder.WriteString("\n  ")
		builder.WriteString(strings.ReplaceAll(suggestions, "\n", "\n  "))
	}

	return builder.String()
}
