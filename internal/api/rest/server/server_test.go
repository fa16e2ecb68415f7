package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listenerStub struct {
	ln net.Listener
}

func (s listenerStub) Listen(protocol, addr string) (net.Listener, error) {
	return s.ln, nil
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(fiber.New(), ":0")
	assert.Equal(t, ":0", s.Address())
}

func TestHTTPServer_StartAndStop(t *testing.T) {
	t.Parallel()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	srv := NewHTTPServer(app, ":0")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Start(listenerStub{ln: ln}) }()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
