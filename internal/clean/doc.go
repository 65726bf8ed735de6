// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package clean finds leftover variant files whose owning package is gone
// and offers to delete them in one batch.
package clean
