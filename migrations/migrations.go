// Package migrations embeds the SQL schema for every supported store.
package migrations

import "embed"

// FS holds one directory of golang-migrate files per driver: postgres, sqlite.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
