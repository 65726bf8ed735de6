// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package listing

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrdersOldestFirst(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "app.conf")
	other := conf + ".rpmnew"
	require.NoError(t, os.WriteFile(conf, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("new"), 0o644))

	older := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(conf, older, older))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, conf, other, Options{}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Configuration file '"+conf+"'\n"))
	assert.Less(t, strings.Index(out, conf+" "), strings.Index(out, other+" "),
		"older file should be listed first")
}

func TestRenderMissingFile(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "app.conf")
	require.NoError(t, os.WriteFile(conf, []byte("x"), 0o644))

	var buf bytes.Buffer
	err := Render(&buf, conf, conf+".rpmnew", Options{})
	assert.Error(t, err)
}

func TestSELinuxContextPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	// tmpfs in the test environment has no SELinux labels.
	ctx := selinuxContext(path)
	assert.NotEmpty(t, ctx)
}
