// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/confctl/confctl/internal/fileops"
	"github.com/confctl/confctl/internal/log"
)

// ErrNoFrontend means no merge frontend was selected and $MERGE is unset.
var ErrNoFrontend = errors.New("no merge frontend selected")

// ErrMissing means the selected frontend binary is not on PATH.
var ErrMissing = errors.New("merge frontend not found")

// Names lists the recognized frontend values for help text.
var Names = []string{"vimdiff", "gvimdiff", "diffuse", "kdiff3", "meld", "env"}

// Merge hands the live config file and its variant to the selected merge
// frontend. "env" (or an empty name) runs the program named by $MERGE.
// kdiff3 writes the merge result over confFile and, on success, the variant
// and kdiff3's own confFile.orig backup are removed.
func Merge(ctx context.Context, name, confFile, otherFile string, ops fileops.Ops) error {
	switch name {
	case "vimdiff", "gvimdiff", "meld":
		return run(ctx, name, confFile, otherFile)

	case "diffuse":
		if err := run(ctx, name, confFile, otherFile); err != nil {
			return notMerged(err)
		}
		return nil

	case "kdiff3":
		if err := run(ctx, name, confFile, otherFile, "-o", confFile); err != nil {
			return notMerged(err)
		}
		if err := ops.Remove(otherFile); err != nil {
			return err
		}
		// kdiff3 leaves its own backup of the merge target behind.
		if err := ops.Remove(confFile + ".orig"); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil

	case "env", "":
		tool := os.Getenv("MERGE")
		if tool == "" {
			return ErrNoFrontend
		}
		log.Debugf("merging with $MERGE tool: %s", tool)
		return run(ctx, tool, confFile, otherFile)

	default:
		return fmt.Errorf("%w: unknown frontend %q", ErrNoFrontend, name)
	}
}

// notMerged downgrades a tool's nonzero exit to a notice; a missing binary
// stays fatal.
func notMerged(err error) error {
	if errors.Is(err, ErrMissing) {
		return err
	}
	fmt.Println("Files not merged.")
	return nil
}

// run executes the frontend attached to the operator's terminal.
func run(ctx context.Context, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissing, name)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
