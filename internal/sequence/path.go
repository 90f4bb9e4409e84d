package sequence

import (
	"fmt"
	"strings"
)

// Exported constants.
const (
	// FrameExtension is the fixed suffix of every frame file.
	FrameExtension = ".jpg"
	// NumberDigits is the zero-padded width of the file number in a frame path.
	NumberDigits = 6
	// MaxFileNumber is the largest number that fits NumberDigits.
	MaxFileNumber = 999999
	// PathCapacity is the size of the path buffer frame paths were designed around,
	// including its terminator.
	PathCapacity = 128
	// MaxFolderNameLen leaves room in PathCapacity for "/", "/", the digits, the extension
	// and the terminator.
	MaxFolderNameLen = PathCapacity - 2 - NumberDigits - len(FrameExtension) - 1
)

// BuildPath returns the volume path of frame number in folder.
// An empty folder means the volume root. Numbers above MaxFileNumber are
// rendered with more digits; callers check FitsPathFormat first.
func BuildPath(folder string, number int) string {
	if folder == "" {
		return fmt.Sprintf("/%0*d%s", NumberDigits, number, FrameExtension)
	}

	return fmt.Sprintf("/%s/%0*d%s", folder, NumberDigits, number, FrameExtension)
}

// FitsPathFormat reports whether number can be written in NumberDigits digits.
func FitsPathFormat(number int) bool {
	return number >= 0 && number <= MaxFileNumber
}

// ValidateFolderName checks that name can be a current folder: short enough for a
// frame path and free of the separators used by paths and the state record.
func ValidateFolderName(name string) error {
	if len(name) > MaxFolderNameLen {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFolderNameTooLong, len(name), MaxFolderNameLen)
	}

	if strings.ContainsAny(name, "/,\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidFolderName, name)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFolderName, name)
	}

	return nil
}
