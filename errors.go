package nmutate

import (
	"github.com/pkg/errors"
)

type arityError struct {
	cause error
}

// ArityError annotates an error as being caused by binding a Combined
// mutation with the wrong number of arguments.
func ArityError(err error) error {
	if err == nil {
		return nil
	}
	return arityError{
		cause: errors.WithStack(err),
	}
}

func (e arityError) Error() string { return e.cause.Error() }
func (e arityError) Unwrap() error { return e.cause }
func (e arityError) Cause() error  { return e.cause }
func (e arityError) Is(err error) bool {
	_, ok := err.(arityError)
	return ok
}
func IsArityError(err error) bool {
	var e arityError
	return errors.Is(err, e)
}

type argumentTypeError struct {
	cause error
}

// ArgumentTypeError annotates an error as being caused by an argument
// that is not the type its mutation takes.
func ArgumentTypeError(err error) error {
	if err == nil {
		return nil
	}
	return argumentTypeError{
		cause: errors.WithStack(err),
	}
}

func (e argumentTypeError) Error() string { return e.cause.Error() }
func (e argumentTypeError) Unwrap() error { return e.cause }
func (e argumentTypeError) Cause() error  { return e.cause }
func (e argumentTypeError) Is(err error) bool {
	_, ok := err.(argumentTypeError)
	return ok
}

func IsArgumentTypeError(err error) bool {
	var e argumentTypeError
	return errors.Is(err, e)
}
