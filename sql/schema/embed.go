// Package schema embeds the goose migrations so binaries can migrate
// without the source tree.
package schema

import "embed"

//go:embed *.sql
var Migrations embed.FS
