// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tcase is the execution engine of a data-driven test-case
// abstraction: it discovers the test-methods of a case by naming
// convention, expands each method's declared data providers into data
// sets, runs every data set through the set-up/execute/tear-down
// sequence and reports each outcome to the case's registered
// listeners.
//
// A case embeds [Case] and declares test-methods, i.e. exported
// methods whose name starts with "Test" followed by an upper-case
// letter, a digit or an underscore:
//
//	type Arith struct{ tcase.Case }
//
//	func (a *Arith) SetUp() error    { ... } // optional
//	func (a *Arith) TearDown() error { ... } // optional
//
//	func (a *Arith) TestAdd(x, y, sum int) error {
//	    return check.Eq(sum, x+y)
//	}
//
//	func (a *Arith) ProvideSums() []interface{} {
//	    return []interface{}{
//	        map[string]interface{}{"x": 1, "y": 2, "sum": 3},
//	        map[string]interface{}{"x": 5, "y": 5, "sum": 10},
//	    }
//	}
//
//	func (a *Arith) Specs() map[string]tcase.Spec {
//	    return map[string]tcase.Spec{"TestAdd": {
//	        Providers: []string{"ProvideSums"},
//	        Params: []tcase.Param{
//	            tcase.Arg("x"), tcase.Arg("y"), tcase.Arg("sum")},
//	    }}
//	}
//
//	func main() { tcase.Run(&Arith{}) }
//
// The engine guarantees for every run data set that TearDown runs even
// if the test body raised, that a pending body failure outranks a
// pending tear-down failure and that exactly one of the
// OnTestFail/OnTestPass listener events fires, always followed by
// OnAfterRunTest.  The first failing data set of the first failing
// method aborts the whole run; there is no collect-all-failures mode.
//
// A [Spec.Throws] declaration turns a method's run into an
// expected-failure check: the body passes iff it raises a failure of
// the declared kind whose message matches the declared pattern (see
// package expect).  Providers either name a zero-argument method of
// the case returning a row sequence or reference an external YAML
// table as <file>#<query> resolved relative to the case's defining
// source-file (see package table).
//
// The engine is single-threaded and synchronous: hooks, bodies and
// listeners run to completion before the next step begins; it neither
// discovers case-types nor runs methods in parallel nor collects
// aggregate statistics.
package tcase
