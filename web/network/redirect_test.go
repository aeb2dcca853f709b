package network

import (
	"bufio"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainHTTPIsRedirected(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := NewAutoHttpsConn(server)

	go func() {
		_, _ = client.Write([]byte("GET /users?page=1 HTTP/1.1\r\nHost: panel.example:3000\r\n\r\n"))
	}()
	readErr := make(chan error, 1)
	go func() {
		_, err := conn.Read(make([]byte, 64))
		readErr <- err
	}()

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "https://panel.example:3000/users?page=1", resp.Header.Get("Location"))
	assert.ErrorIs(t, <-readErr, net.ErrClosed)
}

func TestTLSHandshakePassesThrough(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := NewAutoHttpsConn(server)

	hello := []byte{tlsHandshake, 0x03, 0x01, 0x00, 0x05}
	go func() { _, _ = client.Write(hello) }()

	buf := make([]byte, 2)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, hello[:2], buf[:n])

	rest := make([]byte, 8)
	n, err = conn.Read(rest)
	require.NoError(t, err)
	assert.Equal(t, hello[2:], rest[:n])
}
