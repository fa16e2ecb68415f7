package model

import (
	"context"
	"net"
)

// SecurityLayer produces the listener an API server accepts on, with or
// without TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running API server.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
