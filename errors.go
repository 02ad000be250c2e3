package img2ascii

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports empty image data, a non-positive column count
	// or an image with no pixels. Nothing is written to the sink.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecodeFailed wraps the decoder error when the image bytes cannot
	// be interpreted. Nothing is written to the sink.
	ErrDecodeFailed = errors.New("image decode failed")

	// ErrSinkFailed wraps an error returned by the sink. Characters written
	// before the failure stay written.
	ErrSinkFailed = errors.New("sink failed")

	// ErrInvariantViolation is matched by every *InvariantError.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// InvariantError describes a broken geometry or atlas invariant. It means
// the cell geometry and the stamp table disagree, not that the input was bad.
type InvariantError struct {
	// Row and Col locate the cell being converted, or are -1 when the
	// failure is not tied to a cell.
	Row, Col int
	// Candidate is the stamp index involved, or -1.
	Candidate int
	Reason    string
}

func (e *InvariantError) Error() string {
	msg := ErrInvariantViolation.Error()
	if e.Row >= 0 && e.Col >= 0 {
		msg += fmt.Sprintf(": cell (%d, %d)", e.Col, e.Row)
	}
	if e.Candidate >= 0 {
		msg += fmt.Sprintf(": candidate %d", e.Candidate)
	}
	return msg + ": " + e.Reason
}

// Is lets errors.Is(err, ErrInvariantViolation) match.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}
