// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package table_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telgara/tcase/table"
)

func Test_relative_references_resolve_against_the_defining_file(
	t *testing.T,
) {
	path, query, err := table.ParseRef(
		"testdata/rows.yaml#sums", "/home/u/case/arith.go")
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join("/home/u/case", "testdata/rows.yaml"), path)
	assert.Equal(t, "sums", query)
}

func Test_absolute_references_are_kept(t *testing.T) {
	path, _, err := table.ParseRef(
		"/tmp/rows.yaml#sums", "/home/u/case/arith.go")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rows.yaml", path)
}

func Test_a_reference_needs_both_file_and_query(t *testing.T) {
	for _, ref := range []string{"rows.yaml#", "#sums", "rows.yaml"} {
		_, _, err := table.ParseRef(ref, "arith.go")
		assert.Error(t, err, ref)
	}
}

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_a_query_selects_its_row_sequence(t *testing.T) {
	path := write(t, "sums:\n  - {a: 1, b: 2}\n  - [3, 4]\n")
	rows, err := table.Load(path, "sums")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t,
		map[string]interface{}{"a": 1, "b": 2}, rows[0])
	assert.Equal(t, []interface{}{3, 4}, rows[1])
}

func Test_a_missing_query_fails_the_load(t *testing.T) {
	path := write(t, "sums: []\n")
	_, err := table.Load(path, "diffs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no query "diffs"`)
}

func Test_a_non_sequence_query_fails_the_load(t *testing.T) {
	path := write(t, "sums: 42\n")
	_, err := table.Load(path, "sums")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no row sequence")
}

func Test_a_missing_table_file_fails_the_load(t *testing.T) {
	_, err := table.Load(
		filepath.Join(t.TempDir(), "absent.yaml"), "sums")
	assert.Error(t, err)
}
