// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the confctl CLI surface. It wires flags, the
// invocation gate, and the dispatch into reconcile, audit, and clean modes.
package command
