// Package statefile reads and writes nmutate.State as JSON or YAML.
//
// Decoded states use these Go types: map[string]any for objects, []any
// for arrays, int for integral numbers, float64 for other numbers, string,
// bool, and nil.
package statefile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/muir/nmutate"
	"github.com/pkg/errors"
)

var ErrNotObject = fmt.Errorf("document is not an object")

const (
	JSON = "json"
	YAML = "yaml"
)

var unmarshallers = map[string]func([]byte) (nmutate.State, error){
	YAML: UnmarshalYAML,
	JSON: UnmarshalJSON,
}

var marshallers = map[string]func(nmutate.State) ([]byte, error){
	YAML: MarshalYAML,
	JSON: MarshalJSON,
}

type unmarshalOpts struct {
	FS fs.FS
}

type UnmarshalFileArg func(*unmarshalOpts)

func WithFS(fs fs.FS) UnmarshalFileArg {
	return func(o *unmarshalOpts) {
		o.FS = fs
	}
}

// FormatOf maps a file name to JSON or YAML by its extension.
func FormatOf(file string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file))
	if ext != "" {
		ext = ext[1:]
	}
	switch ext {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", UnknownFileTypeError(errors.Errorf("Could not determine format for %s (%s)", file, ext))
	}
}

func UnmarshalFile(file string, args ...UnmarshalFileArg) (nmutate.State, error) {
	opts := unmarshalOpts{
		FS: unrestrictedFS{},
	}
	for _, f := range args {
		f(&opts)
	}
	format, err := FormatOf(file)
	if err != nil {
		return nil, err
	}
	byts, err := fs.ReadFile(opts.FS, file)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", file)
	}
	state, err := unmarshallers[format](byts)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return state, nil
}

// Marshal encodes state in format, which is JSON or YAML.
func Marshal(format string, state nmutate.State) ([]byte, error) {
	m, ok := marshallers[format]
	if !ok {
		return nil, UnknownFileTypeError(errors.Errorf("unknown format %q", format))
	}
	return m(state)
}

type unrestrictedFS struct{}

func (u unrestrictedFS) Open(name string) (fs.File, error)     { return os.Open(name) }
func (u unrestrictedFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

type unknownFileTypeError struct {
	cause error
}

// UnknownFileTypeError annotates an error as being caused by not knowing the file type.
func UnknownFileTypeError(err error) error {
	if err == nil {
		return nil
	}
	return unknownFileTypeError{
		cause: errors.WithStack(err),
	}
}

func (u unknownFileTypeError) Error() string { return u.cause.Error() }
func (u unknownFileTypeError) Unwrap() error { return u.cause }
func (u unknownFileTypeError) Cause() error  { return u.cause }
func (u unknownFileTypeError) Is(err error) bool {
	_, ok := err.(unknownFileTypeError)
	return ok
}

func IsUnknownFileTypeError(err error) bool {
	var u unknownFileTypeError
	return errors.Is(err, u)
}
