package emit

import (
	"context"
	"fmt"
	"net"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"

	"github.com/Wouter17/f1-light-sync/internal/flags"
)

// FlagFrameID is the arbitration ID flag signals are transmitted on.
const FlagFrameID = 0x1f

// CAN mirrors every signal onto a CAN bus for light controllers that sit
// on the vehicle network instead of an IP one.
type CAN struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

// DialCAN connects to the named SocketCAN interface, e.g. "can0" or "vcan0".
func DialCAN(ctx context.Context, device string) (*CAN, error) {
	conn, err := socketcan.DialContext(ctx, "can", device)
	if err != nil {
		return nil, fmt.Errorf("dial can interface %s: %w", device, err)
	}
	return &CAN{conn: conn, tx: socketcan.NewTransmitter(conn)}, nil
}

// Emit implements flags.Emitter.
func (c *CAN) Emit(signal flags.Signal) error {
	if err := c.tx.TransmitFrame(context.Background(), FlagFrame(signal)); err != nil {
		return fmt.Errorf("transmit flag frame: %w", err)
	}
	return nil
}

// Close releases the socket.
func (c *CAN) Close() error {
	return c.conn.Close()
}

// FlagFrame packs a signal into a two byte frame, the wire code followed by
// the penalised driver's vehicle index. The clear signal is an all zero
// frame.
func FlagFrame(signal flags.Signal) can.Frame {
	var frame can.Frame
	frame.ID = FlagFrameID
	frame.Length = 2
	frame.Data[0] = uint8(signal.Code)
	frame.Data[1] = uint8(signal.Driver)
	return frame
}
