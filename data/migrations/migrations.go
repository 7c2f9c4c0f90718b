// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations embeds the schema migrations, one directory per
// database dialect.
package migrations

import "embed"

// FS holds postgres/*.sql and sqlite/*.sql.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
