// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package prompt asks the operator what to do with each leftover variant
// file and applies the answer.
package prompt
