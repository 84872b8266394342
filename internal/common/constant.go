// Package common contains constants shared by the lifedash client layers.
package common

// AppName names the cache directory, env prefix and log context.
const AppName = "lifedash"

// RequestIDHeaderName carries a per-request id on outbound API calls.
const RequestIDHeaderName = "X-Request-ID"

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "LIFEDASH_"
