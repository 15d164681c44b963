// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/exp/slices"
)

// Case implements the private methods of the CaseEmbedder interface.
// I.e. if you want to run the test-methods of your own case using
// *tcase.Run* you must embed this type, e.g.:
//
//	type Arith struct { tcase.Case }
//
//	// optional SetUp-method
//	// optional TearDown-method
//
//	// ... the test-methods of *Arith* ...
//
//	func main() {
//	    if err := tcase.Run(&Arith{}); err != nil { ... }
//	}
//
// A test-method is any exported method whose name starts with "Test"
// followed by an upper-case letter, a digit or an underscore, taking
// zero or more arguments and returning either nothing or an error.  A
// non-nil error return fails the test-method's current data set.
type Case struct {
	self  interface{}
	value reflect.Value
	rtype reflect.Type
	file  string

	setUp, tearDown *reflect.Method
	hookErr         error

	methods map[string]*boundMethod
	order   []string

	listeners []Listener
	out       io.Writer
	args      []string
	assert    bool
}

// eligibleName matches the names of test-methods: the literal "Test"
// followed by an upper-case letter, a digit or an underscore.  The
// corresponding unexported spelling is recognized only to report it as
// a not-public declaration error.
var (
	eligibleName   = regexp.MustCompile(`^Test[A-Z0-9_]`)
	unexportedName = regexp.MustCompile(`^test[A-Z0-9_]`)
)

// init initializes this case's reused reflection values, discovers its
// test-methods in method-table order and binds optional hooks and
// method-records.
func (c *Case) init(self interface{}, file string) *Case {
	c.self, c.file = self, file
	c.value = reflect.ValueOf(self)
	c.rtype = reflect.TypeOf(self)
	c.assert = true
	c.methods = map[string]*boundMethod{}
	var records map[string]Spec
	if r, ok := self.(Recorded); ok {
		records = r.Specs()
	}
	for i := 0; i < c.rtype.NumMethod(); i++ {
		m := c.rtype.Method(i)
		switch m.Name {
		case "SetUp":
			if err := hookSignature(m); err != nil {
				c.hookErr = err
				continue
			}
			c.setUp = &m
		case "TearDown":
			if err := hookSignature(m); err != nil {
				c.hookErr = err
				continue
			}
			c.tearDown = &m
		}
		if !eligibleName.MatchString(m.Name) {
			continue
		}
		if !testSignature(c.value.Method(i).Type()) {
			// stays discovered: running it reports its declaration
			// error instead of skipping it
			c.order = append(c.order, m.Name)
			continue
		}
		c.methods[m.Name] = &boundMethod{
			name: m.Name,
			fn:   c.value.Method(i),
			spec: records[m.Name],
		}
		c.order = append(c.order, m.Name)
	}
	return c
}

// CaseEmbedder is automatically implemented by embedding a
// Case-instance.  I.e.:
//
//	type Arith struct{ tcase.Case }
//
// implements the CaseEmbedder-interface's private methods.
type CaseEmbedder interface {
	init(interface{}, string) *Case
}

// Recorded may be implemented by a case-embedder to attach a
// Spec-record to test-methods needing data providers, an
// expected-failure declaration or named parameters, e.g.:
//
//	func (a *Arith) Specs() map[string]tcase.Spec {
//	    return map[string]tcase.Spec{
//	        "TestAdd": {
//	            Providers: []string{"ProvideSums"},
//	            Params: []tcase.Param{
//	                tcase.Arg("a"), tcase.Arg("b"), tcase.Arg("sum")},
//	        },
//	    }
//	}
//
// Test-methods without a record need neither data nor an expectation
// and take no arguments.
type Recorded interface {
	Specs() map[string]Spec
}

// Listen appends given listener to the case's listeners which are
// notified of run-lifecycle events in registration order.  Listeners
// are never removed during a run.
func (c *Case) Listen(l Listener) { c.listeners = append(c.listeners, l) }

// SetOutput replaces the writer introspection mode reports to which
// defaults to os.Stdout.
func (c *Case) SetOutput(w io.Writer) { c.out = w }

// SetArgs replaces the invocation arguments evaluated by a run for a
// trailing method-token which default to os.Args[1:].
func (c *Case) SetArgs(args []string) { c.args = args }

// File returns the name of the source-file the case was run from which
// external table references of data providers are resolved against.
func (c *Case) File() string { return c.file }

// Methods returns the names of the discovered test-methods in
// discovery order.
func (c *Case) Methods() []string { return slices.Clone(c.order) }

// Asserting returns false iff the case's expectation checking has been
// disabled, i.e. after a run in introspection mode.
func (c *Case) Asserting() bool { return c.assert }

func (c *Case) output() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

func (c *Case) invocationArgs() []string {
	if c.args == nil {
		return os.Args[1:]
	}
	return c.args
}

// Run discovers the test-methods of given case-embedder and executes
// them.  Is a method-name given only this method is run; a given name
// starting with a two-dashes flag-prefix is ignored.  Otherwise the
// case's invocation arguments are scanned for a trailing method-token
// and all discovered methods are run in discovery order if none is
// found.  A trailing ListMethods-token switches to introspection mode:
// the discovered method-names are reported to the case's output writer
// and nothing is executed.  The first failing data set of the first
// failing method aborts the run and is returned; declaration errors
// abort it before any hook or listener was invoked.
func Run(c CaseEmbedder, method ...string) error {
	_, file, _, _ := runtime.Caller(1)
	cs := c.init(c, file)
	selected := ""
	if len(method) > 0 {
		selected = method[0]
	}
	return cs.run(selected)
}

// RunTest initializes given case-embedder and executes exactly one of
// its test-methods.  A given explicit data set is used verbatim
// instead of the method's providers which allows to re-run a single
// failing data row; passing more than one is a declaration error.
func RunTest(c CaseEmbedder, method string, explicit ...DataSet) error {
	_, file, _, _ := runtime.Caller(1)
	return c.init(c, file).RunTest(method, explicit...)
}

// ListMethods is the reserved method-token switching a run into
// introspection mode.
const ListMethods = "list-methods"

// methodToken matches a trailing invocation argument selecting a
// method, either bare or in its --method=<name> form.
var methodToken = regexp.MustCompile(`^(--method=)?([\w-]+)$`)

func (c *Case) run(method string) error {
	if strings.HasPrefix(method, "--") { // legacy flag, not a selection
		method = ""
	}
	if method == "" {
		if token, ok := trailingMethod(c.invocationArgs()); ok {
			if token == ListMethods {
				return c.listMethods()
			}
			method = token
		}
	}
	if method == "" {
		for _, name := range c.order {
			if err := c.RunTest(name); err != nil {
				return err
			}
		}
		return nil
	}
	if !slices.Contains(c.order, method) {
		return c.ineligible(method)
	}
	return c.RunTest(method)
}

// trailingMethod extracts a method-token from the last of given
// invocation arguments.
func trailingMethod(args []string) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	m := methodToken.FindStringSubmatch(args[len(args)-1])
	if m == nil {
		return "", false
	}
	return m[2], true
}

// listMethods disables the case's expectation checking and reports the
// discovered method-names as a machine-readable comma-joined list.
func (c *Case) listMethods() error {
	c.assert = false
	_, err := fmt.Fprintf(c.output(), "Content-Type: text/plain\n\n[%s]\n",
		strings.Join(c.order, ","))
	return err
}
