// Package seed embeds the sample dataset so a fresh data directory can be
// populated by the server on first start and by tests.
package seed

import "embed"

// FS holds the five sample data files, named exactly like the files in a
// data directory. Pass it to repo.DataStore.Bootstrap.
//
//go:embed *.json
var FS embed.FS
