// Package packet decodes the subset of the F1 25 UDP telemetry format that
// the flag bridge consumes. Packets arrive one per datagram, little endian,
// packed, and start with a common header whose M_packetId field selects the
// payload layout. Field names follow the official packet specification.
package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// PacketFormat2025 is the M_packetFormat value sent by F1 25.
const PacketFormat2025 = 2025

// MaxCars is the number of car slots in every per-car array, regardless of
// how many cars are actually active in the session.
const MaxCars = 22

// Packet IDs of the F1 25 format. Only Event, Participants, CarStatus and
// FinalClassification carry information the flag bridge acts on; the rest
// are listed so callers can name what they ignore.
const (
	IDMotion uint8 = iota
	IDSession
	IDLapData
	IDEvent
	IDParticipants
	IDCarSetups
	IDCarTelemetry
	IDCarStatus
	IDFinalClassification
	IDLobbyInfo
	IDCarDamage
	IDSessionHistory
	IDTyreSets
	IDMotionEx
	IDTimeTrial
	IDLapPositions
)

// Header is the 29-byte header common to every F1 25 packet.
type Header struct {
	M_packetFormat            uint16  // 2025
	M_gameYear                uint8   // game year - last two digits, e.g. 25
	M_gameMajorVersion        uint8   // game major version - "X.00"
	M_gameMinorVersion        uint8   // game minor version - "1.XX"
	M_packetVersion           uint8   // version of this packet type
	M_packetId                uint8   // identifier for the packet type
	M_sessionUID              uint64  // unique identifier for the session
	M_sessionTime             float32 // session timestamp
	M_frameIdentifier         uint32  // frame the data was retrieved on
	M_overallFrameIdentifier  uint32  // frame, not reset on flashbacks
	M_playerCarIndex          uint8   // index of player's car in the arrays
	M_secondaryPlayerCarIndex uint8   // 255 if no second player
}

// ParseHeader decodes just the common header of a datagram so callers can
// dispatch on M_packetId before parsing the full payload.
func ParseHeader(pkt []byte) (Header, error) {
	var header Header
	r := bytes.NewReader(pkt)
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return header, fmt.Errorf("packet header: %w", err)
	}
	if header.M_packetFormat != PacketFormat2025 {
		return header, fmt.Errorf("unsupported packet format %d", header.M_packetFormat)
	}
	return header, nil
}

// parseBody decodes the header followed by the packet-specific payload and
// checks that the header announces the expected packet ID.
func parseBody(pkt []byte, wantID uint8, header *Header, body any) error {
	r := bytes.NewReader(pkt)
	if err := binary.Read(r, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("packet header: %w", err)
	}
	if header.M_packetFormat != PacketFormat2025 {
		return fmt.Errorf("unsupported packet format %d", header.M_packetFormat)
	}
	if header.M_packetId != wantID {
		return fmt.Errorf("packet id %d, want %d", header.M_packetId, wantID)
	}
	if err := binary.Read(r, binary.LittleEndian, body); err != nil {
		return fmt.Errorf("packet id %d body: %w", wantID, err)
	}
	return nil
}
