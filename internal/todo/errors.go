package todo

import "go.trai.ch/zerr"

var (
	// ErrOutOfRange is returned when a position does not address a current task.
	ErrOutOfRange = zerr.New("task position out of range")

	// ErrNotFound is returned when no task carries the selected ID.
	ErrNotFound = zerr.New("task not found")

	// ErrInvalidText is returned for text that is not valid UTF-8.
	ErrInvalidText = zerr.New("task text is not valid UTF-8")

	// ErrUnsupported is returned by the basic store for operations it lacks.
	ErrUnsupported = zerr.New("operation not supported by the basic store")
)

func outOfRange(op string, pos, length int) error {
	err := zerr.With(zerr.Wrap(ErrOutOfRange, op), "position", pos)
	return zerr.With(err, "length", length)
}

func notFound(op, id string) error {
	return zerr.With(zerr.Wrap(ErrNotFound, op), "id", id)
}

func invalidText(op string) error {
	return zerr.Wrap(ErrInvalidText, op)
}

func unsupported(op string) error {
	return zerr.Wrap(ErrUnsupported, op)
}
