// Package db provides the embedded seed catalog.
package db

import _ "embed"

// Catalog contains the default customers and products loaded by seed-data.
//
//go:embed seed/catalog.json
var Catalog []byte
