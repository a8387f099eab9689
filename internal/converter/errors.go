package converter

import (
	"errors"
	"fmt"
)

// Every conversion failure wraps exactly one of these. Match with errors.Is.
var (
	// ErrStructureNotFound: an expected container is not in the document,
	// usually a layout change or the wrong page type.
	ErrStructureNotFound = errors.New("structure not found")
	// ErrAttributeMissing: the element is there but an expected attribute is not.
	ErrAttributeMissing = errors.New("attribute missing")
	// ErrValueParse: a present attribute or text does not convert.
	ErrValueParse = errors.New("value does not parse")
	// ErrUnrecognizedVariant: a valid value outside the known layout.
	ErrUnrecognizedVariant = errors.New("unrecognized schema variant")
)

func notFound(what string) error {
	return fmt.Errorf("%w: %s", ErrStructureNotFound, what)
}

func missingAttr(attr, on string) error {
	return fmt.Errorf("%w: %s on %s", ErrAttributeMissing, attr, on)
}

func badValue(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrValueParse, what, err)
}

// Listing is the outcome of converting a page with repeated records.
// A record that fails to convert is left out and its error kept in Skipped.
type Listing[T any] struct {
	Items   []T
	Skipped []error
}

func (l *Listing[T]) skip(index int, err error) {
	l.Skipped = append(l.Skipped, fmt.Errorf("record %d: %w", index, err))
}
