// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telgara/tcase"
	"github.com/telgara/tcase/expect"
)

// hooked logs its hooks and body into one sequence together with a
// sequencing-listener to pin down the executor's interleaving.
type hooked struct {
	tcase.Case
	Log       []string
	failBody  bool
	failDown  bool
	failSetUp bool
	panicBody bool
	runs      int
}

func (h *hooked) log(s string) { h.Log = append(h.Log, s) }

func (h *hooked) SetUp() error {
	h.log("setUp")
	if h.failSetUp {
		return errors.New("broken set up")
	}
	return nil
}

func (h *hooked) TearDown() error {
	h.log("tearDown")
	if h.failDown {
		return errors.New("broken tear down")
	}
	return nil
}

func (h *hooked) TestBody() error {
	h.log("body")
	h.runs++
	if h.panicBody {
		panic("unhinged")
	}
	if h.failBody {
		return errors.New("broken body")
	}
	return nil
}

func (h *hooked) TestRows(v int) error {
	h.log(fmt.Sprintf("row %d", v))
	h.runs++
	if v > 1 {
		return fmt.Errorf("value %d", v)
	}
	return nil
}

func (h *hooked) TestNeedsData(x string) error { return nil }

func (h *hooked) ProvideRows() []interface{} {
	return []interface{}{
		[]interface{}{1}, []interface{}{2}, []interface{}{3}}
}

func (h *hooked) Specs() map[string]tcase.Spec {
	return map[string]tcase.Spec{
		"TestRows": {
			Providers: []string{"ProvideRows"},
			Params:    []tcase.Param{tcase.Arg("v")},
		},
	}
}

// sequencing returns a listener logging events into the fixture's own
// log, interleaved with its hook entries.
func sequencing(h *hooked) tcase.Listener {
	return tcase.Listener{
		OnBeforeRunTest: func(_ *tcase.Case, m string) {
			h.log("beforeRun")
		},
		OnBeforeSetUp: func(_ *tcase.Case, m string) {
			h.log("beforeSetUp")
		},
		OnAfterSetUp: func(_ *tcase.Case, m string) {
			h.log("afterSetUp")
		},
		OnBeforeTearDown: func(_ *tcase.Case, m string) {
			h.log("beforeTearDown")
		},
		OnAfterTearDown: func(_ *tcase.Case, m string) {
			h.log("afterTearDown")
		},
		OnTestFail: func(_ *tcase.Case, m string, _ tcase.DataSet, _ error) {
			h.log("fail")
		},
		OnTestPass: func(_ *tcase.Case, m string, _ tcase.DataSet) {
			h.log("pass")
		},
		OnAfterRunTest: func(_ *tcase.Case, m string, _ tcase.DataSet) {
			h.log("afterRun")
		},
	}
}

func Test_a_passing_data_set_runs_the_full_lifecycle(t *testing.T) {
	h := &hooked{}
	h.Listen(sequencing(h))
	require.NoError(t, tcase.RunTest(h, "TestBody"))
	assert.Equal(t, []string{
		"beforeRun",
		"beforeSetUp", "setUp", "afterSetUp",
		"body",
		"beforeTearDown", "tearDown", "afterTearDown",
		"pass", "afterRun",
	}, h.Log)
}

func Test_tear_down_runs_after_a_failing_body(t *testing.T) {
	h := &hooked{failBody: true}
	h.Listen(sequencing(h))
	err := tcase.RunTest(h, "TestBody")
	require.Error(t, err)
	assert.Equal(t, []string{
		"beforeRun",
		"beforeSetUp", "setUp", "afterSetUp",
		"body",
		"beforeTearDown", "tearDown", "afterTearDown",
		"fail", "afterRun",
	}, h.Log)
}

func Test_tear_down_runs_after_a_panicking_body(t *testing.T) {
	h := &hooked{panicBody: true}
	err := tcase.RunTest(h, "TestBody")
	require.Error(t, err)
	var p *expect.Panic
	require.ErrorAs(t, err, &p)
	assert.Equal(t, "unhinged", p.Value)
	assert.Contains(t, h.Log, "tearDown")
}

func Test_a_body_failure_outranks_a_tear_down_failure(t *testing.T) {
	h := &hooked{failBody: true, failDown: true}
	err := tcase.RunTest(h, "TestBody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken body")
	var down *tcase.TearDownError
	assert.False(t, errors.As(err, &down))
}

func Test_a_tear_down_failure_alone_fails_the_data_set(t *testing.T) {
	h := &hooked{failDown: true}
	h.Listen(sequencing(h))
	err := tcase.RunTest(h, "TestBody")
	var down *tcase.TearDownError
	require.ErrorAs(t, err, &down)
	assert.Equal(t, "TestBody", down.Method)
	// the failing tear down doesn't suppress its after-event
	assert.Contains(t, h.Log, "afterTearDown")
	assert.Contains(t, h.Log, "fail")
}

func Test_before_run_test_fires_once_for_all_data_sets(t *testing.T) {
	h := &hooked{}
	h.Listen(sequencing(h))
	err := tcase.RunTest(h, "TestRows")
	require.Error(t, err) // row 2 fails
	before := 0
	for _, e := range h.Log {
		if e == "beforeRun" {
			before++
		}
	}
	assert.Equal(t, 1, before)
}

func Test_a_failing_data_set_abandons_the_remaining_ones(
	t *testing.T,
) {
	h := &hooked{}
	err := tcase.RunTest(h, "TestRows")
	require.Error(t, err)
	assert.Equal(t, 2, h.runs) // rows 1 and 2; row 3 never ran
	assert.Contains(t, err.Error(), "value 2")
}

func Test_tear_down_count_equals_set_up_count(t *testing.T) {
	for _, fixture := range []*hooked{
		{}, {failBody: true}, {panicBody: true}, {failDown: true},
	} {
		_ = tcase.RunTest(fixture, "TestBody")
		setUps, tearDowns := 0, 0
		for _, e := range fixture.Log {
			switch e {
			case "setUp":
				setUps++
			case "tearDown":
				tearDowns++
			}
		}
		assert.Equal(t, setUps, tearDowns)
	}
}

func Test_an_explicit_data_set_bypasses_the_providers(t *testing.T) {
	h := &hooked{}
	err := tcase.RunTest(h, "TestRows", tcase.DataSet{5})
	require.Error(t, err)
	assert.Equal(t, 1, h.runs)
	assert.Contains(t, err.Error(), "value 5")
}

func Test_more_than_one_explicit_data_set_is_a_declaration_error(
	t *testing.T,
) {
	h := &hooked{}
	h.Listen(sequencing(h))
	err := tcase.RunTest(h, "TestRows", tcase.DataSet{5}, tcase.DataSet{6})
	var decl *tcase.DeclarationError
	require.ErrorAs(t, err, &decl)
	assert.Equal(t, "TestRows", decl.Method)
	assert.Equal(t, tcase.ExtraData, decl.Reason)
	assert.Equal(t, 0, h.runs)
	assert.Empty(t, h.Log)
}

func Test_terminal_errors_carry_method_and_data_set_context(
	t *testing.T,
) {
	h := &hooked{}
	err := tcase.RunTest(h, "TestRows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TestRows(2)")
}

func Test_parameterized_method_without_data_fails_before_any_hook(
	t *testing.T,
) {
	h := &hooked{}
	h.Listen(sequencing(h))
	err := tcase.RunTest(h, "TestNeedsData")
	var decl *tcase.DeclarationError
	require.ErrorAs(t, err, &decl)
	assert.Equal(t, tcase.MissingProvider, decl.Reason)
	assert.Empty(t, h.Log)
}

func Test_a_set_up_failure_propagates_without_a_run_outcome(
	t *testing.T,
) {
	h := &hooked{failSetUp: true}
	h.Listen(sequencing(h))
	err := tcase.RunTest(h, "TestBody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set up of TestBody")
	assert.NotContains(t, h.Log, "body")
	assert.NotContains(t, h.Log, "tearDown")
	assert.NotContains(t, h.Log, "fail")
	assert.NotContains(t, h.Log, "pass")
}

// throwing declares expected failures in all the ways that must be
// reconciled by the executor.
type throwing struct {
	tcase.Case
	quiet bool
}

func (tr *throwing) TestRaises() error {
	if tr.quiet {
		return nil
	}
	return &limitError{"over the limit"}
}

func (tr *throwing) TestWrongKind() error {
	return errors.New("over the limit")
}

func (tr *throwing) TestEmptyKind() error { return nil }

func (tr *throwing) Specs() map[string]tcase.Spec {
	throws := &tcase.Throws{Kind: "limitError", Pattern: "over the"}
	return map[string]tcase.Spec{
		"TestRaises":    {Throws: throws},
		"TestWrongKind": {Throws: throws},
		"TestEmptyKind": {Throws: &tcase.Throws{}},
	}
}

func Test_raising_the_declared_failure_passes(t *testing.T) {
	require.NoError(t, tcase.RunTest(&throwing{}, "TestRaises"))
}

func Test_raising_nothing_is_an_expectation_mismatch(t *testing.T) {
	err := tcase.RunTest(&throwing{quiet: true}, "TestRaises")
	var mm *expect.Mismatch
	require.ErrorAs(t, err, &mm)
	assert.Nil(t, mm.Got)
}

func Test_raising_the_wrong_kind_is_an_expectation_mismatch(
	t *testing.T,
) {
	err := tcase.RunTest(&throwing{}, "TestWrongKind")
	var mm *expect.Mismatch
	require.ErrorAs(t, err, &mm)
	assert.NotNil(t, mm.Got)
}

func Test_an_empty_expected_failure_kind_is_a_declaration_error(
	t *testing.T,
) {
	err := tcase.RunTest(&throwing{}, "TestEmptyKind")
	var decl *tcase.DeclarationError
	require.ErrorAs(t, err, &decl)
	assert.Equal(t, tcase.EmptyThrows, decl.Reason)
}
