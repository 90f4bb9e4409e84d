package sequence

import (
	"bytes"
	"fmt"
	"strconv"
)

// recordDelimiter separates the folder name from the file number in the state record.
const recordDelimiter = ','

// State is the position of the sequence: the folder receiving frames and the
// number of the current frame within it. The zero value is the initial position.
type State struct {
	Folder string
	Number int
}

// Path returns the frame path for the state.
func (s State) Path() string {
	return BuildPath(s.Folder, s.Number)
}

// String renders the state as it is stored in the record.
func (s State) String() string {
	return string(EncodeRecord(s))
}

// EncodeRecord renders a state as "<folder>,<number>".
func EncodeRecord(state State) []byte {
	record := make([]byte, 0, len(state.Folder)+1+NumberDigits)
	record = append(record, state.Folder...)
	record = append(record, recordDelimiter)

	return strconv.AppendInt(record, int64(state.Number), 10)
}

// DecodeRecord parses "<folder>,<number>". Trailing whitespace is ignored.
// Any other deviation is an error and the zero State is returned.
func DecodeRecord(record []byte) (State, error) {
	idx := bytes.IndexByte(record, recordDelimiter)
	if idx < 0 {
		return State{}, fmt.Errorf("%w: %q has no %q delimiter", ErrMalformedRecord, record, recordDelimiter)
	}

	folder := string(record[:idx])
	if err := ValidateFolderName(folder); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	digits := bytes.TrimRight(record[idx+1:], " \t\r\n")
	if len(digits) == 0 {
		return State{}, fmt.Errorf("%w: %q has no file number", ErrMalformedRecord, record)
	}

	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return State{}, fmt.Errorf("%w: file number %q is not a decimal", ErrMalformedRecord, digits)
		}
	}

	number, err := strconv.Atoi(string(digits))
	if err != nil {
		return State{}, fmt.Errorf("%w: file number %q: %w", ErrMalformedRecord, digits, err)
	}

	return State{Folder: folder, Number: number}, nil
}
