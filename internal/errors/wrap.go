package errors

import stderrors "errors"

// As forwards to the standard library errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is forwards to the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
