// Package emit carries decided flag signals to the displays that show
// them: a UDP destination, a CAN bus, or connected browser panels. All
// emitters are fire and forget; none of them retries or acknowledges.
package emit

import (
	"fmt"
	"net"

	"github.com/Wouter17/f1-light-sync/internal/flags"
)

// UDP transmits each signal's wire payload as one datagram to a fixed
// destination. The clear signal goes out as an empty datagram.
type UDP struct {
	conn net.Conn
}

// DialUDP connects the emitter to a host:port destination.
func DialUDP(destination string) (*UDP, error) {
	conn, err := net.Dial("udp", destination)
	if err != nil {
		return nil, fmt.Errorf("dial signal destination %s: %w", destination, err)
	}
	return &UDP{conn: conn}, nil
}

// Emit implements flags.Emitter.
func (u *UDP) Emit(signal flags.Signal) error {
	if _, err := u.conn.Write([]byte(signal.Wire())); err != nil {
		return fmt.Errorf("send signal: %w", err)
	}
	return nil
}

// Close releases the socket.
func (u *UDP) Close() error {
	return u.conn.Close()
}
