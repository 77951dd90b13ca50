package epoch

import "errors"

var (
	// ErrInvalidWidth is returned when an epoch width is zero or negative.
	ErrInvalidWidth = errors.New("epoch width must be positive")

	// ErrEpochNotFound is returned when a referenced epoch id does not exist.
	ErrEpochNotFound = errors.New("epoch not found")

	// ErrCounterNotFound is returned when a referenced counter id does not exist.
	ErrCounterNotFound = errors.New("counter not found")

	// ErrTooManyEpochs signals that more than one epoch matched a canonical
	// bucket. Storage is inconsistent; it is surfaced, never repaired.
	ErrTooManyEpochs = errors.New("too many epochs returned for one bucket")
)
