package flux

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccess          = errors.New("flux file is not accessible")
	ErrUnknownLocation = errors.New("unknown detector location")
	ErrMissingBranch   = errors.New("missing critical branch")
	ErrNoLocation      = errors.New("no entries for detector location in a full cycle")
	ErrMaxWeight       = errors.New("non-positive maximum flux weight")
	ErrDecayMode       = errors.New("unexpected decay mode")
	ErrRead            = errors.New("could not read flux entry")
	ErrNotLoaded       = errors.New("flux driver not loaded")
)

// FatalError reports a condition after which the flux stream must not
// be used any further. Callers are expected to abort the job.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return "flux: " + e.Op + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }

// IsFatal reports whether err, or an error it wraps, is a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// MissingError lists the critical branches a flux tree lacks.
type MissingError struct {
	Tree     string
	Branches []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%v in tree %q: %s", ErrMissingBranch, e.Tree, strings.Join(e.Branches, ", "))
}

func (e *MissingError) Is(target error) bool { return target == ErrMissingBranch }
