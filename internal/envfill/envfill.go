// Package envfill sets struct fields from environment variables.
//
//	type Config struct {
//		State string   `env:"NMUTATE_STATE"`
//		Tags  []string `env:"NMUTATE_TAGS,split=:"`
//	}
//
// Fields without an env tag, or with env:"-", are left alone.  So are
// fields whose variable is not set.
package envfill

import (
	"os"
	"reflect"

	"github.com/muir/commonerrors"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

type filler struct {
	tag    string
	split  string
	lookup func(string) (string, bool)
}

type Opt func(*filler)

// WithTag changes the struct tag that names variables.  The default is "env".
func WithTag(tag string) Opt {
	return func(f *filler) {
		f.tag = tag
	}
}

// WithLookup replaces os.LookupEnv
func WithLookup(lookup func(string) (string, bool)) Opt {
	return func(f *filler) {
		f.lookup = lookup
	}
}

type envTag struct {
	Variable string `pt:"0"`
	Split    string `pt:"split"`
}

// Fill walks the struct that model points to and sets each field that
// names a variable which is set.
func Fill(model interface{}, opts ...Opt) error {
	f := filler{
		tag:    "env",
		split:  ",",
		lookup: os.LookupEnv,
	}
	for _, o := range opts {
		o(&f)
	}
	v := reflect.ValueOf(model)
	if !v.IsValid() || v.Type().Kind() != reflect.Ptr || v.IsNil() || v.Type().Elem().Kind() != reflect.Struct {
		return commonerrors.ProgrammerError(errors.Errorf(
			"argument to Fill must be a non-nil pointer to a struct, not %T", model))
	}
	v = v.Elem()
	var walkErr error
	reflectutils.WalkStructElements(v.Type(), func(field reflect.StructField) bool {
		if walkErr != nil {
			return false
		}
		filled, err := f.fill(field, v.FieldByIndex(field.Index))
		if err != nil {
			walkErr = errors.Wrap(err, field.Name)
			return false
		}
		return !filled
	})
	return walkErr
}

func (f filler) fill(field reflect.StructField, v reflect.Value) (bool, error) {
	tag := reflectutils.SplitTag(field.Tag).Set().Get(f.tag)
	tagData := envTag{
		Split: f.split,
	}
	err := tag.Fill(&tagData)
	if err != nil {
		return false, errors.Wrapf(err, "%s tag", f.tag)
	}
	if tagData.Variable == "" || tagData.Variable == "-" {
		return false, nil
	}
	value, ok := f.lookup(tagData.Variable)
	if !ok {
		return false, nil
	}
	setter, err := reflectutils.MakeStringSetter(field.Type, reflectutils.WithSplitOn(tagData.Split))
	if err != nil {
		return false, errors.Wrapf(err, "%s tag", f.tag)
	}
	err = setter(v, value)
	if err != nil {
		return false, commonerrors.ConfigurationError(errors.Wrapf(err, "environment variable %s", tagData.Variable))
	}
	debugf("envfill: %s set from %s", field.Name, tagData.Variable)
	return true, nil
}
