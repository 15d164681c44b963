// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

import (
	"fmt"
	"reflect"

	"github.com/telgara/tcase/expect"
)

// DataSet is one positional argument bundle for a single invocation of
// a test-method.  Data sets produced from named provider-rows are the
// union of the parameter defaults and the named values, named values
// taking precedence; positional rows are used verbatim.
type DataSet []interface{}

// RunTest executes given test-method once per data set: a given
// explicit data set is the only one used, bypassing the method's
// providers, and more than one is a declaration error; otherwise the
// providers' rows are expanded in listed order.  Each data set runs through the
// set-up/execute/tear-down sequence whereas tear-down runs even if the
// body raised.  A pending body failure outranks a pending tear-down
// failure; the terminal error of a failing data set is broadcast
// through OnTestFail, then OnAfterRunTest, then returned, abandoning
// the method's remaining data sets.  Passing data sets broadcast
// OnTestPass and OnAfterRunTest.  Declaration errors are returned
// before any listener or hook was invoked.
func (c *Case) RunTest(method string, explicit ...DataSet) error {
	if c.hookErr != nil {
		return c.hookErr
	}
	bm, ok := c.methods[method]
	if !ok {
		return c.ineligible(method)
	}
	if err := bm.validate(); err != nil {
		return err
	}
	sets, err := c.expand(bm, explicit)
	if err != nil {
		return err
	}
	c.broadcast(func(l Listener) {
		if l.OnBeforeRunTest != nil {
			l.OnBeforeRunTest(c, method)
		}
	})
	checker := &expect.Checker{Assert: c.assert}
	for _, set := range sets {
		if err := c.runSet(bm, set, checker); err != nil {
			return err
		}
	}
	return nil
}

// expand resolves a test-method's data sets: an explicit set is used
// as is, declared providers are resolved and concatenated in listed
// order, a provider-less method runs once on its parameter defaults or
// on the empty data set.
func (c *Case) expand(bm *boundMethod, explicit []DataSet) (
	[]DataSet, error,
) {
	if len(explicit) > 1 {
		return nil, &DeclarationError{
			Method: bm.name, Reason: ExtraData}
	}
	if len(explicit) == 1 {
		return explicit, nil
	}
	if len(bm.spec.Providers) == 0 {
		if bm.arity() == 0 {
			return []DataSet{{}}, nil
		}
		defaults, ok := bm.defaults()
		if !ok {
			return nil, &DeclarationError{
				Method: bm.name, Reason: MissingProvider}
		}
		return []DataSet{defaults}, nil
	}
	var sets []DataSet
	for _, provider := range bm.spec.Providers {
		rows, err := c.getData(provider)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			set, err := bm.dataSet(row)
			if err != nil {
				return nil, err
			}
			sets = append(sets, set)
		}
	}
	if len(sets) == 0 && bm.arity() > 0 {
		return nil, &DeclarationError{
			Method: bm.name, Reason: MissingProvider}
	}
	return sets, nil
}

// runSet runs one data set through the set-up/execute/tear-down
// sequence and reconciles its outcome.
func (c *Case) runSet(
	bm *boundMethod, set DataSet, checker *expect.Checker,
) error {
	c.broadcast(func(l Listener) {
		if l.OnBeforeSetUp != nil {
			l.OnBeforeSetUp(c, bm.name)
		}
	})
	if err := c.hook(c.setUp); err != nil {
		return fmt.Errorf("set up of %s: %w", bm.name, err)
	}
	c.broadcast(func(l Listener) {
		if l.OnAfterSetUp != nil {
			l.OnAfterSetUp(c, bm.name)
		}
	})

	var testErr error
	if bm.spec.Throws != nil {
		testErr = checker.Raised(func() error { return bm.call(set) },
			bm.spec.Throws.Kind, bm.spec.Throws.Pattern)
	} else {
		testErr = expect.Call(func() error { return bm.call(set) })
	}

	// tear-down is the sole guaranteed release mechanism: it runs no
	// matter how the body fared and its failure never masks a pending
	// body failure.
	c.broadcast(func(l Listener) {
		if l.OnBeforeTearDown != nil {
			l.OnBeforeTearDown(c, bm.name)
		}
	})
	downErr := c.hook(c.tearDown)
	c.broadcast(func(l Listener) {
		if l.OnAfterTearDown != nil {
			l.OnAfterTearDown(c, bm.name)
		}
	})

	err := testErr
	if err == nil && downErr != nil {
		err = &TearDownError{Method: bm.name, Err: downErr}
	}
	if err != nil {
		err = fmt.Errorf("%s(%s): %w", bm.name, renderOneLine(set), err)
		c.broadcast(func(l Listener) {
			if l.OnTestFail != nil {
				l.OnTestFail(c, bm.name, set, err)
			}
		})
		c.broadcast(func(l Listener) {
			if l.OnAfterRunTest != nil {
				l.OnAfterRunTest(c, bm.name, set)
			}
		})
		return err
	}
	c.broadcast(func(l Listener) {
		if l.OnTestPass != nil {
			l.OnTestPass(c, bm.name, set)
		}
	})
	c.broadcast(func(l Listener) {
		if l.OnAfterRunTest != nil {
			l.OnAfterRunTest(c, bm.name, set)
		}
	})
	return nil
}

// hook invokes given SetUp- or TearDown-method converting a panic or a
// non-nil error return into the hook's failure.
func (c *Case) hook(m *reflect.Method) error {
	if m == nil {
		return nil
	}
	return expect.Call(func() error {
		out := m.Func.Call([]reflect.Value{c.value})
		if len(out) == 1 {
			if err, _ := out[0].Interface().(error); err != nil {
				return err
			}
		}
		return nil
	})
}

// call invokes the bound test-method with given data set converting
// its values to the formal parameter types.
func (bm *boundMethod) call(set DataSet) error {
	t := bm.fn.Type()
	if len(set) != t.NumIn() {
		return fmt.Errorf("%d arguments for %d parameters",
			len(set), t.NumIn())
	}
	in := make([]reflect.Value, len(set))
	for i, v := range set {
		pt := t.In(i)
		if v == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(pt) {
			if !rv.Type().ConvertibleTo(pt) {
				return fmt.Errorf("argument %d: %T is not assignable to %s",
					i+1, v, pt)
			}
			rv = rv.Convert(pt)
		}
		in[i] = rv
	}
	out := bm.fn.Call(in)
	if len(out) == 1 {
		if err, _ := out[0].Interface().(error); err != nil {
			return err
		}
	}
	return nil
}
