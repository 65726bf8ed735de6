// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/confctl/confctl/internal/config"
	"github.com/confctl/confctl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// The config file is optional; a missing one leaves the defaults in place.
	cfg, _ := config.Load() //nolint
	m := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:  "confctl",
		Usage: "reconcile leftover package-manager config file variants",
		UsageText: "confctl {-a | -o PACKAGE | -c} [options]\n" +
			"   confctl -a -D   # audit all differences non-interactively",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewRootFlags(cfg.Source),
		Action: rootAction,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
