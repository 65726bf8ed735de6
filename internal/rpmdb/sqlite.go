// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package rpmdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"

	_ "github.com/mattn/go-sqlite3"
)

// installedFromIndex reads package names straight out of the rpm database's
// sqlite Name index. Only the index table is touched; header blobs stay
// opaque. The database is opened immutable so a concurrent rpm transaction
// cannot be disturbed.
func (c *Client) installedFromIndex(ctx context.Context) ([]string, error) {
	if c.DBPath == "" {
		return nil, os.ErrNotExist
	}
	if _, err := os.Stat(c.DBPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+c.DBPath+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open rpmdb index: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT key FROM Name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rpmdb name index: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		// Index keys are stored as blobs holding the bare name.
		var key []byte
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		if len(key) > 0 {
			names = append(names, string(key))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}
