package server

import "time"

// HTTP server timeouts. Read and write bound slow clients; idle keeps
// keep-alive connections from pinning workers indefinitely.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout is a var so tests can shorten the graceful drain.
var shutdownTimeout = 10 * time.Second
