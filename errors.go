// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

import "fmt"

// Reason classifies a declaration error, i.e. a configuration fault of
// a case which is detected before any hook or listener was invoked.
type Reason string

const (

	// Unknown reports a requested method which is neither discovered
	// nor recognizable as a test-method.
	Unknown Reason = "no such test-method"

	// NotPublic reports a requested method whose name only differs
	// from a test-method's name by its unexported spelling.
	NotPublic Reason = "test-method is not exported"

	// BadSignature reports a requested method which exists but is
	// variadic or doesn't return nothing or an error.
	BadSignature Reason = "ineligible test-method signature"

	// EmptyThrows reports an expected-failure declaration without a
	// failure kind.
	EmptyThrows Reason = "expected-failure declaration without kind"

	// MissingProvider reports a method with required parameters for
	// which neither providers nor explicit arguments produced a data
	// set.
	MissingProvider Reason = "parameterized test-method without data"

	// NoSequence reports a data provider whose invocation didn't
	// yield a sequence.
	NoSequence Reason = "data provider returned no sequence"

	// BadProviderRow reports a provider entry which can't be turned
	// into a data set of the method's parameters.
	BadProviderRow Reason = "unusable data provider row"

	// ParamsMismatch reports a parameter declaration whose length
	// differs from the method's formal parameter list.
	ParamsMismatch Reason = "parameter declaration mismatch"

	// BadHook reports a SetUp- or TearDown-method with an unsupported
	// signature.
	BadHook Reason = "ineligible hook signature"

	// ExtraData reports more than one explicit data set passed to a
	// single-method run which takes at most one.
	ExtraData Reason = "more than one explicit data set"
)

// DeclarationError reports a configuration fault of a case, e.g. a
// requested method which doesn't exist or a parameterized method
// without any data source.  It is raised before any hook runs and is
// never reported through a listener's OnTestFail-slot.
type DeclarationError struct {
	Method string
	Reason Reason
	detail string
}

func (e *DeclarationError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("tcase: %s: %s", e.Method, e.Reason)
	}
	return fmt.Sprintf("tcase: %s: %s: %s", e.Method, e.Reason, e.detail)
}

// TearDownError reports a failing TearDown-hook of an otherwise
// passing data set; a pending test-body failure always outranks it.
type TearDownError struct {
	Method string
	Err    error
}

func (e *TearDownError) Error() string {
	return fmt.Sprintf("tear down of %s: %v", e.Method, e.Err)
}

// Unwrap returns the wrapped hook failure.
func (e *TearDownError) Unwrap() error { return e.Err }

// ineligible explains why a requested method-name can't be run.
func (c *Case) ineligible(name string) error {
	if unexportedName.MatchString(name) {
		return &DeclarationError{Method: name, Reason: NotPublic}
	}
	if eligibleName.MatchString(name) && c.value.IsValid() {
		if m := c.value.MethodByName(name); m.IsValid() {
			return &DeclarationError{Method: name, Reason: BadSignature}
		}
	}
	return &DeclarationError{Method: name, Reason: Unknown}
}
