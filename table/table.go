// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package table loads externally stored data tables for the tcase
// execution engine.  A table reference has the form <file>#<query>
// whereas file names a YAML document mapping query names to row
// sequences and is resolved relative to the referencing case's
// defining source-file:
//
//	sums:
//	  - {a: 1, b: 2, sum: 3}
//	  - {a: 5, b: 5, sum: 10}
//
// Rows are either mappings merged over parameter defaults or
// sequences used positionally.
package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Separator separates a table reference's file from its query.
const Separator = "#"

// ParseRef splits given table reference into its file and query parts
// resolving a relative file against the directory of given defining
// source-file.
func ParseRef(ref, definingFile string) (path, query string, err error) {
	file, query, ok := strings.Cut(ref, Separator)
	if !ok || file == "" || query == "" {
		return "", "", fmt.Errorf(
			"table: reference %q: want <file>%s<query>", ref, Separator)
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(definingFile), file)
	}
	return file, query, nil
}

// Load reads given YAML table-file and returns the row sequence of
// given query.
func Load(path, query string) ([]interface{}, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(bb, &doc); err != nil {
		return nil, fmt.Errorf("table: %s: %w", path, err)
	}
	rows, ok := doc[query]
	if !ok {
		return nil, fmt.Errorf("table: %s: no query %q", path, query)
	}
	seq, ok := rows.([]interface{})
	if !ok {
		return nil, fmt.Errorf(
			"table: %s: query %q is no row sequence", path, query)
	}
	return seq, nil
}
