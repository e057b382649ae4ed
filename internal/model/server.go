package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a Server accepts on, with or without TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is the lifecycle shared by the HTTP API and the gRPC health server.
// Start blocks until the server stops.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
