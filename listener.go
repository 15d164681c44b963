// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Listener is a set of optional callback slots, one per run-lifecycle
// event; populate only the slots you care about, nil slots are
// silently skipped.  Slots are invoked synchronously in listener
// registration order and their failures are not caught, i.e. a
// panicking listener aborts the run.
//
// For every run data set exactly one of OnTestFail or OnTestPass fires,
// always followed by OnAfterRunTest; OnBeforeRunTest fires exactly
// once per executed method, before any of its data sets is processed.
type Listener struct {
	OnBeforeRunTest  func(c *Case, method string)
	OnBeforeSetUp    func(c *Case, method string)
	OnAfterSetUp     func(c *Case, method string)
	OnBeforeTearDown func(c *Case, method string)
	OnAfterTearDown  func(c *Case, method string)
	OnTestFail       func(c *Case, method string, set DataSet, err error)
	OnTestPass       func(c *Case, method string, set DataSet)
	OnAfterRunTest   func(c *Case, method string, set DataSet)
}

// broadcast fans a lifecycle event out to the registered listeners in
// registration order.
func (c *Case) broadcast(fire func(Listener)) {
	for _, l := range c.listeners {
		fire(l)
	}
}

// NewConsoleListener returns a listener reporting each method's data
// set outcomes to given writer, failures in red with their error
// indented line by line, passes in green.
func NewConsoleListener(w io.Writer) Listener {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	return Listener{
		OnBeforeRunTest: func(c *Case, method string) {
			fmt.Fprintf(w, "[%s]\n", method)
		},
		OnTestPass: func(c *Case, method string, set DataSet) {
			pass.Fprintf(w, "  ok %s(%s)\n", method, renderOneLine(set))
		},
		OnTestFail: func(c *Case, method string, set DataSet, err error) {
			fail.Fprintf(w, "  FAILED: %s\n", method)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		},
	}
}
