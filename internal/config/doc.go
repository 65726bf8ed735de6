// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the optional confctl.yaml configuration file and
// exposes typed getters over dotted key paths.
package config
