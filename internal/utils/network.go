package utils

import (
	"context"
	"net"
	"time"
)

// NetworkAvailable reports whether a TCP connection to addr can be opened
// within timeout. It makes a single attempt.
func NetworkAvailable(ctx context.Context, addr string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: -1,
	}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	Close(conn)
	return true
}
