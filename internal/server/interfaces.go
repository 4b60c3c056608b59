package server

import "context"

// Server defines the lifecycle contract of the transport server.
//
// RunServer blocks until ctx is cancelled, a termination signal arrives or
// the listener fails. Shutdown stops accepting connections and waits for
// in-flight requests up to the configured timeout.
type Server interface {
	RunServer(ctx context.Context) error
	Shutdown()
}
