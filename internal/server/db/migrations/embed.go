// Package migrations embeds the server's postgres schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
