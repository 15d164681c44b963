// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package expect provides the expected-failure primitive of the tcase
// execution engine: run a callable and check that it raised a failure
// of a declared kind whose message matches a declared pattern.
// Raising covers both a returned non-nil error and a panic; panics are
// captured as *Panic failures.
package expect

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Checker checks expected failures of one dispatcher invocation.  A
// zero Checker doesn't assert, i.e. it runs callables without checking
// anything; assertion checking is enabled by its creator for exactly
// one run and disabled in introspection mode.
type Checker struct {
	Assert bool
}

// Raised invokes given callable and checks that it raised a failure of
// given kind with a message matching given pattern.  It returns nil on
// a match and a *Mismatch if the callable raised a failure of a
// different kind, with a non-matching message, or none at all.  An
// empty pattern matches any message.  A non-asserting checker invokes
// the callable and reports no mismatch.
func (c *Checker) Raised(fn func() error, kind, pattern string) error {
	raised := Call(fn)
	if !c.Assert {
		return nil
	}
	rx, err := compile(pattern)
	if err != nil {
		return err
	}
	if raised == nil {
		return &Mismatch{Kind: kind, Pattern: pattern}
	}
	if !matchKind(raised, kind) || !rx.MatchString(raised.Error()) {
		return &Mismatch{Kind: kind, Pattern: pattern, Got: raised}
	}
	return nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = ".*"
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("expect: message pattern: %w", err)
	}
	return rx, nil
}

// Call invokes given callable converting a panic into a *Panic
// failure.
func Call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Panic{Value: r}
		}
	}()
	return fn()
}

// Panic is the captured failure of a panicking callable.
type Panic struct {
	Value interface{}
}

func (p *Panic) Error() string { return fmt.Sprintf("panic: %v", p.Value) }

// Unwrap returns the panic's value iff it is an error.
func (p *Panic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// Kind is the type-name a failure is matched by: the dynamic type of
// the error, or of a panic's value, without a leading pointer-star,
// e.g. "fs.PathError".
func Kind(raised error) string {
	if p, ok := raised.(*Panic); ok {
		if err, ok := p.Value.(error); ok {
			raised = err
		} else {
			return strings.TrimPrefix(
				reflect.TypeOf(p.Value).String(), "*")
		}
	}
	return strings.TrimPrefix(reflect.TypeOf(raised).String(), "*")
}

// matchKind is true if given kind names the raised failure's type,
// either package-qualified or bare.
func matchKind(raised error, kind string) bool {
	name := Kind(raised)
	if name == kind {
		return true
	}
	return strings.HasSuffix(name, "."+kind)
}

// Mismatch reports a failed expected-failure check: either nothing was
// raised (Got is nil) or the raised failure's kind or message didn't
// match the declaration.
type Mismatch struct {
	Kind    string
	Pattern string
	Got     error
}

func (m *Mismatch) Error() string {
	exp := m.Kind
	if m.Pattern != "" {
		exp = fmt.Sprintf("%s matching %q", m.Kind, m.Pattern)
	}
	if m.Got == nil {
		return fmt.Sprintf("expected %s to be raised; nothing was", exp)
	}
	return fmt.Sprintf("expected %s to be raised; got %s: %v",
		exp, Kind(m.Got), m.Got)
}

// Unwrap returns the actually raised failure if any.
func (m *Mismatch) Unwrap() error { return m.Got }
