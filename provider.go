// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/telgara/tcase/table"
)

// getData resolves a provider-spec into its rows: a spec containing
// the table-separator is an external table reference resolved relative
// to the case's defining source-file; any other spec names a
// zero-argument method of the case which must return a sequence.
func (c *Case) getData(spec string) ([]interface{}, error) {
	if strings.Contains(spec, table.Separator) {
		path, query, err := table.ParseRef(spec, c.file)
		if err != nil {
			return nil, err
		}
		return table.Load(path, query)
	}
	m := c.value.MethodByName(spec)
	if !m.IsValid() {
		return nil, &DeclarationError{
			Method: spec,
			Reason: NoSequence,
			detail: "no such provider-method",
		}
	}
	if m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
		return nil, &DeclarationError{
			Method: spec,
			Reason: NoSequence,
			detail: "provider must take no arguments and return a sequence",
		}
	}
	return sequence(spec, m.Call(nil)[0])
}

// sequence normalizes a provider-method's return value into its rows.
func sequence(spec string, rv reflect.Value) ([]interface{}, error) {
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() ||
		(rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		got := "nil"
		if rv.IsValid() {
			got = fmt.Sprintf("%s", rv.Type())
		}
		return nil, &DeclarationError{
			Method: spec, Reason: NoSequence, detail: got}
	}
	rows := make([]interface{}, rv.Len())
	for i := range rows {
		rows[i] = rv.Index(i).Interface()
	}
	return rows, nil
}
