// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package check provides error-returning assertions for the bodies of
// tcase test-methods.  A test-method reports its outcome through its
// error return, hence its assertions evaluate to an error instead of
// flagging a testing.T, e.g.:
//
//	func (a *Arith) TestAdd(x, y, sum int) error {
//	    return check.Eq(sum, x+y)
//	}
package check

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// assertErr is the common message format of failed assertions.
const assertErr = "assert %s: %s"

// trueErr default message for a failed 'True'-assertion.
const trueErr = "expected given value to be true"

// True returns an error iff given value is not true.
func True(value bool) error {
	if value {
		return nil
	}
	return fmt.Errorf(assertErr, "true", trueErr)
}

// Eq returns an error with a corresponding diff iff given values are
// not equal in terms of go-cmp.
func Eq(want, got interface{}) error {
	if cmp.Equal(want, got) {
		return nil
	}
	return fmt.Errorf(assertErr, "equal",
		fmt.Sprintf("(-want +got):\n%s", cmp.Diff(want, got)))
}

// containsErr default message for a failed 'Contains'-assertion.
const containsErr = "%q doesn't contain %q"

// Contains returns an error iff given string doesn't contain given
// sub-string.
func Contains(str, sub string) error {
	if strings.Contains(str, sub) {
		return nil
	}
	return fmt.Errorf(assertErr, "contains",
		fmt.Sprintf(containsErr, str, sub))
}

// matchedErr default message for a failed 'Matched'-assertion.
const matchedErr = "regexp %q doesn't match %q"

// Matched returns an error iff given string isn't matched by given
// regexp.
func Matched(str, regex string) error {
	rx, err := regexp.Compile(regex)
	if err != nil {
		return fmt.Errorf(assertErr, "matched", err.Error())
	}
	if rx.MatchString(str) {
		return nil
	}
	return fmt.Errorf(assertErr, "matched",
		fmt.Sprintf(matchedErr, regex, str))
}

// errIsErr default message for a failed 'ErrIs'-assertion.
const errIsErr = "given error doesn't wrap target-error"

// ErrIs returns an error iff given error doesn't wrap given target.
func ErrIs(err, target error) error {
	if errors.Is(err, target) {
		return nil
	}
	return fmt.Errorf(assertErr, "error is",
		fmt.Sprintf("%s: %v", errIsErr, err))
}

// panicsErr default message for a failed 'Panics'-assertion.
const panicsErr = "expected given function to panic"

// Panics returns an error iff given function doesn't panic.
func Panics(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = nil
		}
	}()
	err = fmt.Errorf(assertErr, "panics", panicsErr)
	fn()
	return err
}
