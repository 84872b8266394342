// Package stores holds the client-side state containers for goals, journal
// entries and notes.
//
// Each store caches one entity type, exposes actions that call the backend
// through a client API interface, and merges the results into its state.
// Stores are constructed explicitly and are safe for concurrent use; views
// read a deep copy through State.
//
// Consistency policy: the goal store follows every successful mutation with
// exactly one full GET /goals so server-computed aggregates never drift. The
// journal and note stores merge item-wise only.
//
// Failures set the store's Error to the backend message (or a per-action
// default) and are returned to the caller. Validation failures never reach
// the network and match common.ErrValidation.
package stores
