// Package network lets the TLS listener of the panel answer plain HTTP
// requests with a redirect to the same URL over HTTPS.
package network

import (
	"bufio"
	"bytes"
	"net"
	"net/http"
	"sync"
)

const (
	sniffSize = 4096
	// First byte of a TLS record carrying a handshake.
	tlsHandshake = 0x16
)

// AutoHttpsListener wraps accepted connections with redirect detection.
type AutoHttpsListener struct {
	net.Listener
}

func NewAutoHttpsListener(listener net.Listener) net.Listener {
	return &AutoHttpsListener{Listener: listener}
}

func (l *AutoHttpsListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return NewAutoHttpsConn(conn), nil
}

// AutoHttpsConn inspects the first bytes a client sends. A TLS handshake is
// passed through untouched; a plain HTTP request gets a 307 to https:// and
// the connection is closed.
type AutoHttpsConn struct {
	net.Conn

	once    sync.Once
	sniffed error
	pending []byte
}

func NewAutoHttpsConn(conn net.Conn) net.Conn {
	return &AutoHttpsConn{Conn: conn}
}

func (c *AutoHttpsConn) Read(b []byte) (int, error) {
	c.once.Do(func() { c.sniffed = c.sniff() })
	if c.sniffed != nil {
		return 0, c.sniffed
	}
	if len(c.pending) > 0 {
		n := copy(b, c.pending)
		c.pending = c.pending[n:]
		return n, nil
	}
	return c.Conn.Read(b)
}

func (c *AutoHttpsConn) sniff() error {
	buf := make([]byte, sniffSize)
	n, err := c.Conn.Read(buf)
	c.pending = buf[:n]
	if n == 0 {
		return err
	}
	if buf[0] == tlsHandshake {
		return nil
	}

	req, perr := http.ReadRequest(bufio.NewReader(bytes.NewReader(c.pending)))
	if perr != nil {
		// Not HTTP either; let the TLS layer reject it.
		return nil
	}
	c.pending = nil
	_, _ = c.Conn.Write(redirectResponse(req))
	_ = c.Conn.Close()
	return net.ErrClosed
}

func redirectResponse(req *http.Request) []byte {
	resp := http.Response{
		StatusCode:    http.StatusTemporaryRedirect,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{},
		ContentLength: 0,
		Close:         true,
	}
	resp.Header.Set("Location", "https://"+req.Host+req.RequestURI)
	var buf bytes.Buffer
	_ = resp.Write(&buf)
	return buf.Bytes()
}
