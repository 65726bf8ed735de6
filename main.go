// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/confctl/confctl/internal/command"
	"github.com/confctl/confctl/internal/frontend"
	"github.com/confctl/confctl/internal/log"
	"github.com/confctl/confctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	trapInterrupt()

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		log.Debugf("app run err: err=%v", err)
		return exitCodeFor(err)
	}

	return 0
}

// handleVersion checks for --version/-V and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-V" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// exitCodeFor maps run errors onto the documented exit codes: 1 invalid
// invocation, 2 no merge frontend, 3 permission denied, 4 frontend binary
// missing. Anything else is a plain failure.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, command.ErrUsage):
		// Help text was already shown.
		return 1
	case errors.Is(err, frontend.ErrNoFrontend):
		fmt.Fprintf(os.Stderr, "Error: you did not select any frontend for merge.\n")
		return 2
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "You have to run this program as root.")
		return 3
	case errors.Is(err, frontend.ErrMissing):
		fmt.Fprintln(os.Stderr, err)
		return 4
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}

// trapInterrupt exits with the interrupt code instead of the runtime's
// default signal death, matching the documented contract.
func trapInterrupt() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		os.Exit(2)
	}()
}
