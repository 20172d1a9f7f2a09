package digest

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInput    Kind = "input"
	KindUpstream Kind = "upstream"
	KindInternal Kind = "internal"
)

var ErrNoInterests = errors.New("no interests given")

// Error is the classified failure of a digest run.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, treating unclassified errors as internal.
func KindOf(err error) Kind {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Kind
	}
	return KindInternal
}

func inputErr(err error) error    { return &Error{Kind: KindInput, Err: err} }
func upstreamErr(err error) error { return &Error{Kind: KindUpstream, Err: err} }
func internalErr(err error) error { return &Error{Kind: KindInternal, Err: err} }
