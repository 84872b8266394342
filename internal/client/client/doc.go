// Package client contains the transport used by the lifedash stores.
//
// # Overview
//
// The package provides:
//  1. API contracts per endpoint group (GoalAPI, JournalAPI, NoteAPI) that the
//     stores depend on.
//  2. A concrete REST implementation (HTTPClient) that tags every request
//     with an X-Request-ID, logs it, and maps failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite snapshot cache and applying embedded goose migrations.
//
// # Response decoding
//
// The backend wraps goal payloads in an envelope ({"data": ..., "statistics":
// ...}) while journal and note payloads are bare. Each endpoint method picks
// its decoding statically; nothing is inferred from the response body.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are *APIError and
// additionally match ErrUnauthorized (401/403) or ErrNotFound (404) with
// errors.Is. A 2xx body that cannot be decoded wraps ErrDecode.
package client
