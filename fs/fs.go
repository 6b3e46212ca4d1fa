// Package appfs embeds the assets shipped with the binaries: database
// migrations, web & email templates, course content and static files.
package appfs

import "embed"

//go:embed migrations/*.sql all:templates content static
var FS embed.FS
