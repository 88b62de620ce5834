package bridge

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Wouter17/f1-light-sync/internal/flags"
	"github.com/Wouter17/f1-light-sync/packet"
)

// Record sizes of the packet layouts synthesised below, as published in the
// packet specification. The packet package pins them in its own tests.
const (
	carStatusRecordSize      = 55
	participantRecordSize    = 57
	classificationRecordSize = 46
)

var testBaseTime = time.Unix(1700000000, 0)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingEmitter captures emitted signals as wire payloads. Safe for use
// from the bridge goroutine while a test polls it.
type recordingEmitter struct {
	mu    sync.Mutex
	wires []string
}

func (r *recordingEmitter) Emit(signal flags.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wires = append(r.wires, signal.Wire())
	return nil
}

func (r *recordingEmitter) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.wires)
}

// testClock is a manually advanced clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func headerBytes(t *testing.T, id uint8, playerIndex uint8) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, packet.Header{
		M_packetFormat:   packet.PacketFormat2025,
		M_gameYear:       25,
		M_packetId:       id,
		M_playerCarIndex: playerIndex,
	}))
	return buf.Bytes()
}

func eventPacket(t *testing.T, code string, detail ...byte) []byte {
	t.Helper()
	pkt := headerBytes(t, packet.IDEvent, 0)
	pkt = append(pkt, code...)
	return append(pkt, detail...)
}

func safetyCarPacket(t *testing.T, mode, phase uint8) []byte {
	t.Helper()
	return eventPacket(t, packet.EventSafetyCar, mode, phase)
}

func penaltyPacket(t *testing.T, driver uint8) []byte {
	t.Helper()
	return eventPacket(t, packet.EventPenaltyIssued, 0, 0, driver, 0, 0, 0, 0)
}

// carStatusPacket reports fiaFlag for the car in slot playerIndex; all
// other cars report zeroes. The FIA flag field sits 28 bytes into each
// record.
func carStatusPacket(t *testing.T, playerIndex uint8, fiaFlag int8) []byte {
	t.Helper()
	pkt := headerBytes(t, packet.IDCarStatus, playerIndex)
	body := make([]byte, packet.MaxCars*carStatusRecordSize)
	if int(playerIndex) < packet.MaxCars {
		body[int(playerIndex)*carStatusRecordSize+28] = byte(fiaFlag)
	}
	return append(pkt, body...)
}

// participantsPacket lists the given race numbers in the first slots. The
// race number field sits 5 bytes into each record.
func participantsPacket(t *testing.T, raceNumbers []uint8) []byte {
	t.Helper()
	pkt := headerBytes(t, packet.IDParticipants, 0)
	pkt = append(pkt, uint8(len(raceNumbers)))
	body := make([]byte, packet.MaxCars*participantRecordSize)
	for i, number := range raceNumbers {
		body[i*participantRecordSize+5] = number
	}
	return append(pkt, body...)
}

func classificationPacket(t *testing.T) []byte {
	t.Helper()
	pkt := headerBytes(t, packet.IDFinalClassification, 0)
	pkt = append(pkt, 20)
	return append(pkt, make([]byte, packet.MaxCars*classificationRecordSize)...)
}
