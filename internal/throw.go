package internal

import "github.com/pkg/errors"

// Threading errors through the triangulation and every per-pixel step of the
// morph would add a lot of noise for conditions that only malformed input can
// reach. Instead, we use panics, and the public API recovers to convert to an
// error.

type MorphError struct {
	error
}

func (e MorphError) Unwrap() error {
	return e.error
}

// Panic with a MorphError.
func fatalf(format string, args ...interface{}) {
	panic(MorphError{errors.Errorf(format, args...)})
}

// Convert a recovered MorphError into an error. Anything else is a real panic
// and is re-raised.
func HandleMorphPanicRecover(r interface{}) error {
	if r != nil {
		if morphError, ok := r.(MorphError); ok {
			return morphError
		}
		panic(r)
	}
	return nil
}
