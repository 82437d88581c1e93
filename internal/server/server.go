package server

import "context"

// Server is a listener driven by the application lifecycle. Start must
// return once the server is accepting connections.
type Server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Addr() string
}
