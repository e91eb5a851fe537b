// Package migrations embeds the schema of every supported dialect. Each
// dialect has its own directory of golang-migrate numbered files.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
