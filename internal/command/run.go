// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/confctl/confctl/internal/clean"
	"github.com/confctl/confctl/internal/config"
	"github.com/confctl/confctl/internal/differ"
	"github.com/confctl/confctl/internal/fileops"
	"github.com/confctl/confctl/internal/frontend"
	"github.com/confctl/confctl/internal/log"
	"github.com/confctl/confctl/internal/prompt"
	"github.com/confctl/confctl/internal/rpmdb"
	"github.com/confctl/confctl/internal/variant"
)

// ErrUsage signals an invalid invocation; main maps it to exit code 1.
var ErrUsage = errors.New("invalid invocation")

// rootAction validates the invocation and dispatches the selected modes. The
// reconcile pass runs before clean when both are requested.
func rootAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("invocation: args=%v cfg=%s", m.Args, m.Config.Source)

	all := cmd.Bool("all")
	owners := cmd.StringSlice("owner")
	cleanMode := cmd.Bool("clean")

	if !all && len(owners) == 0 && !cleanMode {
		_ = cli.ShowAppHelp(cmd)
		return ErrUsage
	}

	db := rpmdb.NewClient()
	ops := fileops.Ops{DryRun: cmd.Bool("debug")}
	diffContext, _ := config.GetInt("diff.context", differ.DefaultContext)

	if all || len(owners) > 0 {
		packages := owners
		if all {
			var err error
			packages, err = db.Installed(ctx)
			if err != nil {
				return err
			}
		}

		loop := &prompt.Loop{
			Frontend:    cmd.String("frontend"),
			SELinux:     cmd.Bool("selinux"),
			DiffContext: diffContext,
			Ops:         ops,
		}

		for _, pkg := range packages {
			if err := handlePackage(ctx, cmd, db, loop, pkg, diffContext); err != nil {
				return err
			}
		}
	}

	if cleanMode {
		dirs, _ := config.GetStringSlice("clean.dirs", clean.DefaultDirs)
		skip, _ := config.GetStringSlice("clean.skip", clean.DefaultSkip)
		return clean.NewScanner(db, dirs, skip, ops).Run(ctx)
	}

	return nil
}

// handlePackage reconciles (or, in diff mode, audits) every config file the
// package tracks. A vanished package is reported and skipped; the run goes
// on with the rest.
func handlePackage(
	ctx context.Context,
	cmd *cli.Command,
	db *rpmdb.Client,
	loop *prompt.Loop,
	pkg string,
	diffContext int,
) error {
	confFiles, err := db.ConfigFiles(ctx, pkg)
	if err != nil {
		if errors.Is(err, rpmdb.ErrNotInstalled) {
			log.Warnf("%v", err)
			return nil
		}
		return err
	}
	log.Debugf("%s: %d config files", pkg, len(confFiles))

	for _, conf := range confFiles {
		if cmd.Bool("diff") {
			if err := auditConfFile(ctx, conf, diffContext); err != nil {
				return err
			}
			continue
		}

		for _, rec := range variant.Discover(conf, pkg) {
			if err := loop.Handle(ctx, rec); err != nil {
				if os.IsPermission(err) ||
					errors.Is(err, frontend.ErrNoFrontend) ||
					errors.Is(err, frontend.ErrMissing) {
					return err
				}
				// Keep going; the remaining files still deserve a decision.
				log.Errorf("failed to reconcile %s: %v", rec.VariantPath(), err)
			}
		}
	}
	return nil
}

// auditConfFile shows each existing variant's diff without prompting. The
// diff direction matches the interactive D option: shipped changes read as
// additions.
func auditConfFile(ctx context.Context, conf string, diffContext int) error {
	rpmnew := conf + variant.KindNew.Suffix()
	rpmsave := conf + variant.KindSave.Suffix()
	rpmorig := conf + variant.KindOrig.Suffix()

	if err := differ.ShowIfExists(ctx, rpmnew, conf, rpmnew, diffContext); err != nil {
		return err
	}
	if err := differ.ShowIfExists(ctx, rpmsave, rpmsave, conf, diffContext); err != nil {
		return err
	}
	return differ.ShowIfExists(ctx, rpmorig, rpmorig, conf, diffContext)
}
