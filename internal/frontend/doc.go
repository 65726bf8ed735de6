// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package frontend delegates configuration merges to an external two-way
// merge tool chosen by the operator.
package frontend
