package errors_test

import (
	"strings"
	"testing"

	"github.com/joe/frame-folders/pkg/errors"
)

func TestSuggestionGenerator_EveryCategoryHasSuggestions(t *testing.T) {
	t.Parallel()

	generator := errors.NewSuggestionGenerator()

	for _, category := range []errors.ErrorCategory{
		errors.CategoryMedia,
		errors.CategoryPath,
		errors.CategoryPermission,
		errors.CategoryRecord,
		errors.CategoryRemote,
		errors.CategoryUnknown,
		errors.ErrorCategory("made-up"),
	} {
		if suggestions := generator.Generate(category, ""); len(suggestions) == 0 {
			t.Errorf("expected suggestions for category %q", category)
		}
	}
}

func TestSuggestionGenerator_IncludesPath(t *testing.T) {
	t.Parallel()

	generator := errors.NewSuggestionGenerator()

	for _, category := range []errors.ErrorCategory{
		errors.CategoryPath,
		errors.CategoryPermission,
		errors.CategoryRecord,
		errors.CategoryUnknown,
	} {
		suggestions := generator.Generate(category, "/mnt/sd/folder.txt")
		if !strings.Contains(strings.Join(suggestions, "\n"), "/mnt/sd/folder.txt") {
			t.Errorf("expected %q suggestions to mention the path, got %v", category, suggestions)
		}
	}
}

func TestSuggestionGenerator_PathErrorsMentionNoAutoCreate(t *testing.T) {
	t.Parallel()

	suggestions := errors.NewSuggestionGenerator().Generate(errors.CategoryPath, "")
	if !strings.Contains(strings.Join(suggestions, "\n"), "never created") {
		t.Errorf("expected path suggestions to explain folders are not created, got %v", suggestions)
	}
}
