// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/confctl/confctl/internal/command"
	"github.com/confctl/confctl/internal/frontend"
)

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "long flag", args: []string{"confctl", "--version"}, want: true},
		{name: "short flag", args: []string{"confctl", "-V"}, want: true},
		{name: "flag after mode", args: []string{"confctl", "-a", "--version"}, want: true},
		{name: "no flag", args: []string{"confctl", "-a"}, want: false},
		{name: "empty", args: []string{"confctl"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handleVersion(tt.args); got != tt.want {
				t.Errorf("handleVersion(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "usage", err: command.ErrUsage, want: 1},
		{name: "no frontend", err: frontend.ErrNoFrontend, want: 2},
		{name: "wrapped no frontend", err: fmt.Errorf("merge: %w", frontend.ErrNoFrontend), want: 2},
		{name: "permission", err: fs.ErrPermission, want: 3},
		{name: "wrapped permission", err: fmt.Errorf("remove: %w", fs.ErrPermission), want: 3},
		{name: "frontend missing", err: frontend.ErrMissing, want: 4},
		{name: "generic", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
