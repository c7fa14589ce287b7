// Package dagerr provides the error wrapping and aggregation helpers used
// across this module's constructors. It is a thin, renamed adaptation of
// the teacher's util/errwrap package: the same Wrapf, Append and String
// functions plus a New helper, on the same backing libraries.
package dagerr

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf wraps err with a formatted message, or returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New returns an error with the given formatted message.
func New(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Append accumulates err onto reterr, producing a multierror once more than
// one distinct problem has been recorded. Either argument may be nil.
func Append(reterr, err error) error {
	if reterr == nil {
		return err
	}
	if err == nil {
		return reterr
	}
	return multierror.Append(reterr, err)
}

// String renders err as a string, or "" if err is nil.
func String(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
