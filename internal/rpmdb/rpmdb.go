// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package rpmdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/confctl/confctl/internal/log"
)

// ErrNotInstalled is returned when a queried package is not in the database.
var ErrNotInstalled = errors.New("package is not installed")

// ErrUnowned is returned when no installed package tracks a file.
var ErrUnowned = errors.New("file is not owned by any package")

// Runner executes a package database query and returns its stdout. It exists
// so tests can substitute canned output for the rpm binary.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		log.Tracef("%s %v stderr: %s", name, args, strings.TrimSpace(stderr.String()))
	}
	return out, err
}

// Client answers queries about the installed package set and the
// configuration files it tracks. The rpm binary is the authority; when the
// database carries a sqlite name index, the installed set is read from it
// directly to avoid forking per query.
type Client struct {
	Bin    string
	DBPath string
	Runner Runner
}

// NewClient returns a Client wired to the system rpm database.
func NewClient() *Client {
	return &Client{
		Bin:    "rpm",
		DBPath: "/var/lib/rpm/rpmdb.sqlite",
		Runner: execRunner{},
	}
}

// Installed returns the names of all installed packages.
func (c *Client) Installed(ctx context.Context) ([]string, error) {
	if names, err := c.installedFromIndex(ctx); err == nil {
		log.Debugf("installed set from sqlite index: %d packages", len(names))
		return names, nil
	} else {
		log.Debugf("sqlite index unavailable, falling back to rpm: %v", err)
	}

	out, err := c.Runner.Output(ctx, c.Bin, "-qa", "--qf", "%{NAME}\n")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}
	return splitLines(out), nil
}

// ConfigFiles returns the configuration files tracked for the given package.
// A package that is not installed yields ErrNotInstalled. Only a nonzero rpm
// exit means "not installed"; a runner that could not execute at all is a
// real failure and propagates.
func (c *Client) ConfigFiles(ctx context.Context, pkg string) ([]string, error) {
	out, err := c.Runner.Output(ctx, c.Bin, "-qc", pkg)
	if err != nil {
		if isExit(err) {
			return nil, fmt.Errorf("%s: %w", pkg, ErrNotInstalled)
		}
		return nil, fmt.Errorf("failed to query config files of %s: %w", pkg, err)
	}

	var files []string
	for _, line := range splitLines(out) {
		// rpm prints a sentence, not a path, for packages without files.
		if strings.HasPrefix(line, "/") {
			files = append(files, line)
		}
	}
	return files, nil
}

// Owner returns the name of the package that tracks the given file, or
// ErrUnowned when rpm exits nonzero because it knows nothing about it. Any
// other failure propagates: a broken rpm must not make every file look
// orphaned.
func (c *Client) Owner(ctx context.Context, path string) (string, error) {
	out, err := c.Runner.Output(ctx, c.Bin, "-qf", "--qf", "%{NAME}", path)
	if err != nil {
		if isExit(err) {
			return "", fmt.Errorf("%s: %w", path, ErrUnowned)
		}
		return "", fmt.Errorf("failed to query owner of %s: %w", path, err)
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", fmt.Errorf("%s: %w", path, ErrUnowned)
	}
	return name, nil
}

// isExit reports whether err is rpm itself exiting nonzero, as opposed to
// rpm failing to run (missing binary, permission, canceled context).
func isExit(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
