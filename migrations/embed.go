// Package migrations embeds the PostgreSQL schema migrations so that the
// server and the migrate command carry them in the binary.
package migrations

import "embed"

// FS holds the numbered up/down migration pairs
//
//go:embed *.sql
var FS embed.FS
