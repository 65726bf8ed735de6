// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/confctl/confctl/internal/log"
)

// DefaultContext is the number of context lines around each hunk.
const DefaultContext = 3

// Unified returns a unified diff of the two files, with modification times
// in the headers. Files that are not valid UTF-8 are handed to diff(1),
// whose binary-file summary is returned instead.
func Unified(ctx context.Context, fromFile, toFile string, contextLines int) (string, error) {
	fromInfo, err := os.Stat(fromFile)
	if err != nil {
		return "", err
	}
	toInfo, err := os.Stat(toFile)
	if err != nil {
		return "", err
	}

	fromBytes, err := os.ReadFile(fromFile)
	if err != nil {
		return "", err
	}
	toBytes, err := os.ReadFile(toFile)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(fromBytes) || !utf8.Valid(toBytes) {
		log.Debugf("binary content, delegating to diff(1): %s %s", fromFile, toFile)
		return external(ctx, fromFile, toFile)
	}

	if contextLines <= 0 {
		contextLines = DefaultContext
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(fromBytes)),
		B:        difflib.SplitLines(string(toBytes)),
		FromFile: fromFile,
		FromDate: fromInfo.ModTime().Format(time.ANSIC),
		ToFile:   toFile,
		ToDate:   toInfo.ModTime().Format(time.ANSIC),
		Context:  contextLines,
	})
}

// external shells out to diff -u. diff exits 1 when the files differ, which
// is the expected case, so only exec failures are errors.
func external(ctx context.Context, fromFile, toFile string) (string, error) {
	cmd := exec.CommandContext(ctx, "diff", "-u", fromFile, toFile)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return string(out), nil
		}
		return "", fmt.Errorf("failed to run diff: %w", err)
	}
	return string(out), nil
}

// Show computes the diff and presents it: paged through the viewport TUI
// when stdout is a terminal, streamed plainly otherwise.
func Show(ctx context.Context, fromFile, toFile string, contextLines int) error {
	diff, err := Unified(ctx, fromFile, toFile, contextLines)
	if err != nil {
		return err
	}
	if diff == "" {
		diff = "The files are identical.\n"
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		title := fmt.Sprintf("%s → %s", fromFile, toFile)
		return Page(title, Colorize(diff))
	}

	fmt.Fprint(os.Stdout, diff)
	return nil
}

// ShowIfExists shows the diff only when the gate path exists. Used by the
// audit mode, which probes each variant suffix in turn.
func ShowIfExists(ctx context.Context, gate, fromFile, toFile string, contextLines int) error {
	if _, err := os.Lstat(gate); err != nil {
		return nil
	}
	return Show(ctx, fromFile, toFile, contextLines)
}

// splitKeepNewlines is a helper for Colorize.
func splitKeepNewlines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
