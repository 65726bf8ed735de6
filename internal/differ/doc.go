// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes and renders differences between a configuration
// file and its leftover package-manager variant.
package differ
