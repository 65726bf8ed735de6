// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package fileops is the single place that mutates configuration files:
// remove, overwrite, and content comparison, with dry-run support.
package fileops
