package scoreboard

import (
	"errors"
	"fmt"
)

var ErrInvalidNumber = errors.New("value is not a base-10 integer")
var ErrInvalidType = errors.New("value has an unsupported type")
var ErrMissingCountry = errors.New("country is required")
var ErrMultipleMarkers = errors.New("scoreboard has more than one voter row")
var ErrNoValidScoreboards = errors.New("no valid scoreboards found")
var ErrNotAnArray = errors.New("scoreboard file must be a JSON array of score entries")
var ErrNotAnObject = errors.New("combined file must be a JSON object keyed by scoreboard")
var ErrEmptyScoreboard = errors.New("scoreboard file is empty")
var ErrDuplicateKey = errors.New("files map to the same scoreboard key")
var ErrUnsupportedFile = errors.New("unsupported file format, use .json or .csv")

// FieldError reports which field of a raw score record could not be normalized.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v (got %v)", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// RecordError ties a normalization failure to the index of the offending record.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid entry at index %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
