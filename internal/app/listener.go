package app

import (
	"net"

	"golang.org/x/net/netutil"
)

// NewListener tcp-листенер для HTTP сервера.
// maxConns > 0 ограничивает число одновременно открытых соединений.
func NewListener(addr string, maxConns int) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	if maxConns > 0 {
		ln = netutil.LimitListener(ln, maxConns)
	}

	return ln, nil
}
