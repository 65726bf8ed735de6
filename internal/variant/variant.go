// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

// Package variant models the backup copies a package upgrade leaves next to
// locally modified configuration files.
package variant

import (
	"os"
	"strings"
)

// Kind identifies which side of an upgrade a leftover copy came from.
type Kind int

const (
	// KindNew is the maintainer's updated file (.rpmnew): the live config
	// was kept and the shipped version was written alongside it.
	KindNew Kind = iota
	// KindSave is the operator's previous file (.rpmsave): the shipped
	// version was installed and the local one was backed up.
	KindSave
	// KindOrig is the operator's previous file saved during an forced
	// replacement (.rpmorig). Handled like KindSave.
	KindOrig
)

var suffixes = map[Kind]string{
	KindNew:  ".rpmnew",
	KindSave: ".rpmsave",
	KindOrig: ".rpmorig",
}

// Kinds lists all variant kinds in the order they are reconciled.
var Kinds = []Kind{KindNew, KindSave, KindOrig}

// Suffix returns the filename suffix for the kind.
func (k Kind) Suffix() string {
	return suffixes[k]
}

func (k Kind) String() string {
	return strings.TrimPrefix(k.Suffix(), ".")
}

// Record ties a live configuration file to one leftover variant of it.
// Records are transient; they exist only for the run that reconciles them.
type Record struct {
	// Path is the live configuration file, as tracked by the package.
	Path string
	// Kind selects which variant copy sits next to Path.
	Kind Kind
	// Owner is the name of the package that tracks Path.
	Owner string
}

// VariantPath returns the path of the leftover copy this record describes.
func (r Record) VariantPath() string {
	return r.Path + r.Kind.Suffix()
}

// Discover returns a record for each variant copy that exists next to the
// given configuration file, ordered new, save, orig. Dangling symlinks count
// as existing; the reconcile actions operate on the link itself.
func Discover(confFile, owner string) []Record {
	var records []Record
	for _, k := range Kinds {
		if Exists(confFile + k.Suffix()) {
			records = append(records, Record{Path: confFile, Kind: k, Owner: owner})
		}
	}
	return records
}

// Parse splits a variant file path into the live config path and the kind.
// ok is false when the path carries no variant suffix.
func Parse(path string) (base string, k Kind, ok bool) {
	for _, kind := range Kinds {
		if strings.HasSuffix(path, kind.Suffix()) {
			return strings.TrimSuffix(path, kind.Suffix()), kind, true
		}
	}
	return path, 0, false
}

// Exists reports whether the path exists without following symlinks.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
