// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/confctl/confctl/internal/frontend"
)

// NewRootFlags builds the root flag set. cfgFile (when a config file was
// found) feeds YAML-sourced values into the frontend flag.
func NewRootFlags(cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "check configuration files of all packages",
		},
		&cli.StringSliceFlag{
			Name:    "owner",
			Aliases: []string{"o"},
			Usage:   "check only configuration files of given `PACKAGE` (repeatable)",
		},
		&cli.BoolFlag{
			Name:    "clean",
			Aliases: []string{"c"},
			Usage:   "find and delete orphaned .rpmnew and .rpmsave files",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "dry run. Just show which file will be deleted",
		},
		&cli.BoolFlag{
			Name:    "diff",
			Aliases: []string{"D"},
			Usage:   "non-interactive diff mode. Useful to audit configs. Use with -a or -o options",
		},
		NewFrontendFlag(cfgFile),
		&cli.BoolFlag{
			Name:        "selinux",
			Aliases:     []string{"Z"},
			Usage:       "display SELinux context of old and new file",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"V"},
			Usage:       "display confctl version",
			HideDefault: true,
		},
	}
}

// NewFrontendFlag constructs the merge frontend flag. Values resolve flag >
// CONFCTL_FRONTEND env > confctl.yaml "frontend" key; the $MERGE program is
// the "env" frontend's concern, not a source here.
func NewFrontendFlag(cfgFile string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "frontend",
		Aliases: []string{"f"},
		Usage: fmt.Sprintf("define which `EDITOR` should be used for merging (%s)",
			strings.Join(frontend.Names, ", ")),
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CONFCTL_FRONTEND"),
		),
		Validator: func(value string) error {
			if value == "" {
				return nil
			}
			for _, n := range frontend.Names {
				if n == value {
					return nil
				}
			}
			return fmt.Errorf("must be one of %v", frontend.Names)
		},
	}

	if cfgFile != "" {
		src := yaml.YAML(flag.Name, altsrc.StringSourcer(cfgFile))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	return flag
}
