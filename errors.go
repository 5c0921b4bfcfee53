package crsat

import "fmt"

// MalformedInputError reports a problem with caller-supplied course data:
// an unparsable TimeCode, a non-positive interval, or a hard/soft
// reference to a section that was never defined.
type MalformedInputError struct {
	Context string
	Err     error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s: %v", e.Context, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func malformedf(context, format string, args ...interface{}) error {
	return &MalformedInputError{Context: context, Err: fmt.Errorf(format, args...)}
}

// InvariantError reports an encoder-internal bug: an empty clause, or a
// zero, duplicated or self-negating literal, reaching the clause sink.
// Encountering one means the encoder produced a clause the data model
// forbids, not that the input was bad.
type InvariantError struct {
	Context string
	Err     error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s: %v", e.Context, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func invariantf(context, format string, args ...interface{}) error {
	return &InvariantError{Context: context, Err: fmt.Errorf(format, args...)}
}
