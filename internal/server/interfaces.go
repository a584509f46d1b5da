package server

// Server is the lifecycle contract for the transport servers this package
// manages.
//
// RunServer blocks until a stop signal arrives or the listener fails;
// Shutdown drains in-flight requests and releases resources.
type Server interface {
	// RunServer starts serving and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
