// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/confctl/confctl/internal/config"
)

// Meta contains runtime metadata shared by the root command action. It
// carries the raw CLI arguments, the loaded configuration, and the context
// the process was started with.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}
