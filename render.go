// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

import (
	"fmt"
	"strings"
)

// renderLimit caps a data set's one-line rendering in diagnostic
// messages.
const renderLimit = 120

// renderOneLine renders given value into a single line for failure
// diagnostics, quoting strings and joining a data set's values.
func renderOneLine(v interface{}) string {
	var s string
	switch v := v.(type) {
	case DataSet:
		vv := make([]string, 0, len(v))
		for _, value := range v {
			vv = append(vv, renderOneLine(value))
		}
		s = strings.Join(vv, ", ")
	case string:
		s = fmt.Sprintf("%q", v)
	case nil:
		s = "<nil>"
	default:
		s = fmt.Sprintf("%v", v)
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > renderLimit {
		// cut on a rune boundary to keep the rendering valid utf-8
		rr := []rune(s)
		if len(rr) > renderLimit {
			s = string(rr[:renderLimit]) + "..."
		}
	}
	return s
}
