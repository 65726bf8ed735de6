// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/confctl/confctl/internal/differ"
	"github.com/confctl/confctl/internal/fileops"
	"github.com/confctl/confctl/internal/frontend"
	"github.com/confctl/confctl/internal/listing"
	"github.com/confctl/confctl/internal/log"
	"github.com/confctl/confctl/internal/variant"
)

const promptNew = ` ==> Package distributor has shipped an updated version.
   What would you like to do about it ?  Your options are:
    Y or I  : install the package maintainer's version
    N or O  : keep your currently-installed version
      D     : show the differences between the versions
      M     : merge configuration files
      Z     : background this process to examine the situation
      S     : skip this file
 The default action is to keep your current version.
*** aliases (Y/I/N/O/D/M/Z/S) [default=N] ? `

const promptSave = ` ==> Package distributor has shipped an updated version.
 ==> Maintainer forced upgrade. Your old version has been backed up.
   What would you like to do about it?  Your options are:
    Y or I  : install (keep) the package maintainer's version
    N or O  : return back to your original file
      D     : show the differences between the versions
      M     : merge configuration files
      Z     : background this process to examine the situation
      S     : skip this file
 The default action is to keep package maintainer's version.
*** aliases (Y/I/N/O/M/D/Z/S) [default=Y] ? `

// Loop drives the per-file decision prompts. In and Out default to stdin and
// stdout; tests substitute buffers.
type Loop struct {
	In  io.Reader
	Out io.Writer

	// Frontend names the merge tool handed to the M option.
	Frontend string
	// SELinux adds context columns to the file listing.
	SELinux bool
	// DiffContext is the number of context lines for the D option.
	DiffContext int
	// Ops performs (or dry-runs) the chosen mutations.
	Ops fileops.Ops

	reader *bufio.Reader
}

func (l *Loop) in() io.Reader {
	if l.In != nil {
		return l.In
	}
	return os.Stdin
}

func (l *Loop) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

// Handle reconciles one record. Identical files are resolved silently by
// dropping the variant; otherwise the operator is asked.
func (l *Loop) Handle(ctx context.Context, rec variant.Record) error {
	conf := rec.Path
	other := rec.VariantPath()

	if eq, err := fileops.Equal(conf, other); err == nil && eq {
		log.Debugf("%s matches %s, dropping variant", other, conf)
		return l.Ops.Remove(other)
	} else if err != nil {
		// A dangling symlink variant still needs an operator decision.
		log.Debugf("compare %s %s: %v", conf, other, err)
	}

	switch rec.Kind {
	case variant.KindNew:
		return l.run(ctx, conf, other, promptNew, "N",
			func(ctx context.Context) error { // D: live vs shipped
				return differ.Show(ctx, conf, other, l.DiffContext)
			},
			func() error { return l.Ops.Overwrite(other, conf) }, // Y
			func() error { return l.Ops.Remove(other) },          // N
		)
	default: // KindSave and KindOrig share the restore flow.
		return l.run(ctx, conf, other, promptSave, "Y",
			func(ctx context.Context) error { // D: saved vs installed
				return differ.Show(ctx, other, conf, l.DiffContext)
			},
			func() error { return l.Ops.Remove(other) },          // Y
			func() error { return l.Ops.Overwrite(other, conf) }, // N
		)
	}
}

// run loops until a terminal option is chosen, then applies it. yes runs for
// Y/I, no for N/O; S leaves both files untouched.
func (l *Loop) run(
	ctx context.Context,
	conf, other, promptText, def string,
	diff func(context.Context) error,
	yes, no func() error,
) error {
	option := ""
	for option != "Y" && option != "I" && option != "N" && option != "O" && option != "S" {
		if err := listing.Render(l.out(), conf, other, listing.Options{SELinux: l.SELinux}); err != nil {
			return err
		}
		fmt.Fprintln(l.out(), promptText)

		option = l.readChoice()
		if option == "" {
			option = def
		}

		switch option {
		case "D":
			if err := diff(ctx); err != nil {
				log.Errorf("diff failed: %v", err)
			}
		case "Z":
			fmt.Fprintln(l.out(), "Run command 'fg' to continue")
			suspend()
		case "M":
			if err := frontend.Merge(ctx, l.Frontend, conf, other, l.Ops); err != nil {
				return err
			}
			// kdiff3 consumes the variant on a successful merge.
			if !variant.Exists(other) {
				return nil
			}
		}
	}

	switch option {
	case "Y", "I":
		return yes()
	case "N", "O":
		return no()
	}
	return nil
}

// readChoice flushes pending terminal input, asks, and returns the uppercased
// answer. EOF skips the file.
func (l *Loop) readChoice() string {
	flushInput(l.in())
	fmt.Fprint(l.out(), "Your choice: ")

	if l.reader == nil {
		l.reader = bufio.NewReader(l.in())
	}
	line, err := l.reader.ReadString('\n')
	if err != nil && line == "" {
		return "S"
	}
	return strings.ToUpper(strings.TrimSpace(line))
}

// flushInput discards input typed before the prompt, so a held-down key does
// not answer questions the operator never saw. Only meaningful on a terminal.
func flushInput(in io.Reader) {
	f, ok := in.(*os.File)
	if !ok {
		return
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		log.Tracef("tcflush: %v", err)
	}
}

// suspend stops the process, as job control's ^Z would.
func suspend() {
	if err := unix.Kill(os.Getpid(), unix.SIGSTOP); err != nil {
		log.Errorf("failed to suspend: %v", err)
	}
}
