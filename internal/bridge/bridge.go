// Package bridge receives game telemetry datagrams and drives the flag
// engine with them. One goroutine reads the socket and applies packets in
// arrival order; everything downstream of the router sees a single
// sequential stream.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
)

// Bridge owns the telemetry socket and the read loop.
type Bridge struct {
	router *Router
	conn   *net.UDPConn
	log    *slog.Logger
}

// New binds the telemetry socket on addr, e.g. "127.0.0.1:20888".
func New(router *Router, addr string, log *slog.Logger) (*Bridge, error) {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve listen address %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp4", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen for telemetry: %w", err)
	}
	return &Bridge{router: router, conn: conn, log: log}, nil
}

// Addr returns the bound listen address.
func (b *Bridge) Addr() net.Addr {
	return b.conn.LocalAddr()
}

// Run consumes datagrams until ctx is cancelled. Undecodable datagrams are
// logged and skipped; they never stop the loop.
func (b *Bridge) Run(ctx context.Context) error {
	defer b.conn.Close()
	b.log.Info("listening for telemetry", "addr", b.conn.LocalAddr().String())

	// Closing the socket is the only way to unblock a pending read.
	stop := context.AfterFunc(ctx, func() { b.conn.Close() })
	defer stop()

	buffer := make([]byte, 2048)
	for {
		n, _, err := b.conn.ReadFromUDP(buffer)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("telemetry socket closed: %w", err)
			}
			b.log.Error("read telemetry datagram", "error", err)
			continue
		}

		if err := b.router.Route(buffer[:n]); err != nil {
			b.log.Warn("failed to parse packet", "error", err)
		}
	}
}
