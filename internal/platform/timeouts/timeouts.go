// Package timeouts defines shared timeout constants used across the admin
// service. Keeping them together makes the durations discoverable.
package timeouts

import "time"

// APIRequest caps the time allowed for a single call from the admin
// dashboard to the content API when no override is configured.
const APIRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Idle bounds keep-alive connections held open by the HTTP server.
const Idle = 60 * time.Second
