// Package cli provides the interactive lifedash command-line client.
//
// It wires configuration, the local snapshot cache, the REST client and the
// goal, journal and note stores behind a small REPL. On start the last
// snapshots are restored so lists render before the first fetch completes.
//
// Key features:
//   - Dashboard: concurrent refresh of every store and a summary
//   - Goals: list, show, create and edit through the goal form, progress, delete
//   - Journal: filtered list, composer for new and edited entries, delete
//   - Notes: inline and multi-line add, edit, delete
//   - Budget and an in-memory finance ledger
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
