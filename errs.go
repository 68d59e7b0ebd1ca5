package docjson

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/docjson-io/docjson/ir"
)

var (
	// ErrMissingDocument reports an operation that requires an existing
	// document at the key.
	ErrMissingDocument = errors.New("could not perform this operation on a key that doesn't exist")
	// ErrIndexOutOfBounds reports an array index outside the valid range
	// after normalization.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrNotRepresentable reports a numeric result that is not a finite
	// representable number.
	ErrNotRepresentable = errors.New("can not represent result as a number")
)

// WrongTypeError reports a matched node whose runtime type does not
// satisfy an operation's precondition.
type WrongTypeError struct {
	Expected ir.Type
	Actual   ir.Type
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("wrong type of path value - expected a %s but found %s", e.Expected, e.Actual)
}

// OpErrors is the structured per-match failure list of one multi-match
// write. Each entry keeps the canonical path of its match site, so a
// caller can attribute failures precisely instead of relying on the
// collapsed message.
type OpErrors []*ir.MatchError

// Err collapses the list for the caller boundary: nil for no failures,
// the failure itself when there is exactly one, and a combined error
// carrying every failure otherwise. Each collapsed entry keeps its
// match-site path in the message and unwraps to the underlying error.
func (es OpErrors) Err() error {
	switch len(es) {
	case 0:
		return nil
	case 1:
		return es[0]
	default:
		var err error
		for _, e := range es {
			err = multierr.Append(err, e)
		}
		return err
	}
}
