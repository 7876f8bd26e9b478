// Package migrations embebe el esquema SQL, un directorio por dialecto.
package migrations

import "embed"

// FS contiene postgres/*.sql y sqlite/*.sql (formato goose).
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
