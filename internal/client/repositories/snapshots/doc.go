// Package snapshots persists the last successfully fetched collection of each
// store in a local SQLite table so the CLI can render before the backend
// answers.
package snapshots
