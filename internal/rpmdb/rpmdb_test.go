// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package rpmdb

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned stdout keyed by the joined argv.
type fakeRunner struct {
	out  map[string]string
	errs map[string]error
}

func (f fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	key := name + " " + strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return []byte(f.out[key]), nil
}

func testClient(r Runner) *Client {
	// Empty DBPath disables the sqlite fast path.
	return &Client{Bin: "rpm", Runner: r}
}

// exitError mimics rpm exiting nonzero, the way exec reports it.
func exitError() error {
	return fmt.Errorf("rpm: %w", &exec.ExitError{})
}

// execError mimics rpm failing to run at all.
func execError() error {
	return &exec.Error{Name: "rpm", Err: exec.ErrNotFound}
}

func TestInstalledFallsBackToRPM(t *testing.T) {
	c := testClient(fakeRunner{out: map[string]string{
		"rpm -qa --qf %{NAME}\n": "zsh\nbash\nhttpd\n",
	}})

	names, err := c.Installed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh", "bash", "httpd"}, names)
}

func TestConfigFiles(t *testing.T) {
	c := testClient(fakeRunner{out: map[string]string{
		"rpm -qc httpd": "/etc/httpd/conf/httpd.conf\n/etc/httpd/conf.d/welcome.conf\n",
	}})

	files, err := c.ConfigFiles(context.Background(), "httpd")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/etc/httpd/conf/httpd.conf",
		"/etc/httpd/conf.d/welcome.conf",
	}, files)
}

func TestConfigFilesNoFiles(t *testing.T) {
	c := testClient(fakeRunner{out: map[string]string{
		"rpm -qc filesystem": "(contains no files)\n",
	}})

	files, err := c.ConfigFiles(context.Background(), "filesystem")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestConfigFilesNotInstalled(t *testing.T) {
	c := testClient(fakeRunner{errs: map[string]error{
		"rpm -qc nosuch": exitError(),
	}})

	_, err := c.ConfigFiles(context.Background(), "nosuch")
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestConfigFilesExecFailure(t *testing.T) {
	c := testClient(fakeRunner{errs: map[string]error{
		"rpm -qc httpd": execError(),
	}})

	// A missing rpm binary is not "not installed".
	_, err := c.ConfigFiles(context.Background(), "httpd")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotInstalled)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestOwner(t *testing.T) {
	c := testClient(fakeRunner{out: map[string]string{
		"rpm -qf --qf %{NAME} /etc/httpd/conf/httpd.conf": "httpd",
	}})

	owner, err := c.Owner(context.Background(), "/etc/httpd/conf/httpd.conf")
	require.NoError(t, err)
	assert.Equal(t, "httpd", owner)
}

func TestOwnerUnowned(t *testing.T) {
	c := testClient(fakeRunner{errs: map[string]error{
		"rpm -qf --qf %{NAME} /etc/stray.conf": exitError(),
	}})

	_, err := c.Owner(context.Background(), "/etc/stray.conf")
	assert.ErrorIs(t, err, ErrUnowned)
}

func TestOwnerExecFailure(t *testing.T) {
	c := testClient(fakeRunner{errs: map[string]error{
		"rpm -qf --qf %{NAME} /etc/app.conf": execError(),
	}})

	// A broken rpm must not make tracked files look orphaned.
	_, err := c.Owner(context.Background(), "/etc/app.conf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnowned)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
