// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package rpmdb queries the installed package set and per-package
// configuration file lists. The database format itself stays external:
// queries go through rpm(8), with a read-only sqlite fast path over the
// Name index for enumerating installed packages.
package rpmdb
