// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

import (
	"fmt"
	"reflect"
)

// Spec is the declarative record of a test-method replacing the
// doc-comment annotations of classic xUnit ports: it names the
// method's data providers, an optionally expected failure and its
// ordered formal parameters with optional default values.  A method
// without a record takes no arguments, has no providers and expects no
// failure.
type Spec struct {

	// Providers names in order the data sources of the method's data
	// sets: either a zero-argument method of the case returning a
	// sequence of rows or an external table reference of the form
	// <file>#<query> (see package table).  The data sets of several
	// providers are concatenated in listed order.
	Providers []string

	// Throws declares the failure the method's body is expected to
	// raise; a body raising it passes, anything else is an
	// expectation mismatch.
	Throws *Throws

	// Params declares the method's formal parameters in order.  A
	// named provider-row is merged over the parameter defaults while
	// named values take precedence; a method whose parameters all have
	// defaults may also run without any provider.
	Params []Param
}

// Throws declares an expected failure: Kind is matched against the
// raised failure's type-name, either package-qualified or bare;
// Pattern is an optional regular expression the failure's message must
// match.  An empty Kind is a declaration error.
type Throws struct {
	Kind    string
	Pattern string
}

// Param is one formal parameter of a test-method, i.e. its name for
// merging named provider-rows and an optional default value.  Use the
// Arg and Opt constructors.
type Param struct {
	Name       string
	Default    interface{}
	HasDefault bool
}

// Arg returns a required parameter of given name.
func Arg(name string) Param { return Param{Name: name} }

// Opt returns a parameter of given name defaulting to given value.
func Opt(name string, dflt interface{}) Param {
	return Param{Name: name, Default: dflt, HasDefault: true}
}

// boundMethod is an eligible test-method bound to its case-instance at
// discovery time avoiding late string-based lookup at call time.
type boundMethod struct {
	name string
	fn   reflect.Value
	spec Spec
}

// arity is the number of the method's declared formal parameters.
func (bm *boundMethod) arity() int { return bm.fn.Type().NumIn() }

// validate reports the method's declaration errors which are
// detectable without resolving any data.
func (bm *boundMethod) validate() error {
	if bm.spec.Throws != nil && bm.spec.Throws.Kind == "" {
		return &DeclarationError{
			Method: bm.name, Reason: EmptyThrows}
	}
	if len(bm.spec.Params) > 0 && len(bm.spec.Params) != bm.arity() {
		return &DeclarationError{
			Method: bm.name,
			Reason: ParamsMismatch,
			detail: fmt.Sprintf("%d declared, %d expected",
				len(bm.spec.Params), bm.arity()),
		}
	}
	return nil
}

// defaults returns the data set consisting of all parameter defaults
// and true iff every declared parameter has one.
func (bm *boundMethod) defaults() (DataSet, bool) {
	if len(bm.spec.Params) != bm.arity() {
		return nil, false
	}
	set := make(DataSet, 0, len(bm.spec.Params))
	for _, p := range bm.spec.Params {
		if !p.HasDefault {
			return nil, false
		}
		set = append(set, p.Default)
	}
	return set, true
}

// dataSet turns a provider-row into the method's next data set: a
// mapping is merged over the parameter defaults with named values
// taking precedence, a sequence is used verbatim.
func (bm *boundMethod) dataSet(row interface{}) (DataSet, error) {
	switch row := row.(type) {
	case map[string]interface{}:
		return bm.merge(row)
	case DataSet:
		return bm.positional(row)
	case []interface{}:
		return bm.positional(row)
	default:
		return nil, &DeclarationError{
			Method: bm.name,
			Reason: BadProviderRow,
			detail: fmt.Sprintf("%T is neither a sequence nor a mapping", row),
		}
	}
}

func (bm *boundMethod) positional(row []interface{}) (DataSet, error) {
	if len(row) != bm.arity() {
		return nil, &DeclarationError{
			Method: bm.name,
			Reason: BadProviderRow,
			detail: fmt.Sprintf("%d values for %d parameters",
				len(row), bm.arity()),
		}
	}
	return DataSet(row), nil
}

func (bm *boundMethod) merge(row map[string]interface{}) (DataSet, error) {
	if len(bm.spec.Params) != bm.arity() {
		return nil, &DeclarationError{
			Method: bm.name,
			Reason: ParamsMismatch,
			detail: "named provider-rows need a full parameter declaration",
		}
	}
	set := make(DataSet, 0, bm.arity())
	for _, p := range bm.spec.Params {
		if v, ok := row[p.Name]; ok {
			set = append(set, v)
			continue
		}
		if p.HasDefault {
			set = append(set, p.Default)
			continue
		}
		return nil, &DeclarationError{
			Method: bm.name,
			Reason: BadProviderRow,
			detail: fmt.Sprintf("no value for parameter %q", p.Name),
		}
	}
	return set, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// testSignature is true for a bound method-type taking arbitrary
// arguments and returning either nothing or an error.
func testSignature(t reflect.Type) bool {
	if t.IsVariadic() {
		return false
	}
	switch t.NumOut() {
	case 0:
		return true
	case 1:
		return t.Out(0) == errType
	}
	return false
}

// hookSignature reports a declaration error unless given SetUp- or
// TearDown-method takes no arguments and returns either nothing or an
// error.
func hookSignature(m reflect.Method) error {
	t := m.Type // includes the receiver
	if t.NumIn() != 1 || t.NumOut() > 1 ||
		(t.NumOut() == 1 && t.Out(0) != errType) {
		return &DeclarationError{
			Method: m.Name,
			Reason: BadHook,
			detail: "must take no arguments and return nothing or error",
		}
	}
	return nil
}
