package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// details for processing an event (packet id 3) packet; the payload after the
// four-character event string code depends on the code

// Event string codes the flag bridge acts on. The format defines more
// (fastest lap, DRS, speed trap, ...); they decode to the bare code and are
// ignored upstream.
const (
	EventSessionStarted = "SSTA"
	EventSessionEnded   = "SEND"
	EventChequeredFlag  = "CHQF"
	EventRedFlag        = "RDFL"
	EventPenaltyIssued  = "PENA"
	EventSafetyCar      = "SCAR"
)

// SafetyCarEvent is the detail payload of an SCAR event.
type SafetyCarEvent struct {
	M_safetyCarType uint8 // 0 = no safety car, 1 = full, 2 = virtual, 3 = formation lap
	M_eventType     uint8 // 0 = deployed, 1 = returning, 2 = returned, 3 = resumed
}

// PenaltyEvent is the detail payload of a PENA event.
type PenaltyEvent struct {
	M_penaltyType      uint8 // penalty type, see appendices
	M_infringementType uint8 // infringement type, see appendices
	M_vehicleIdx       uint8 // vehicle index of the car the penalty is applied to
	M_otherVehicleIdx  uint8 // vehicle index of the other car involved
	M_time             uint8 // time gained or spent doing the action in seconds
	M_lapNum           uint8 // lap the penalty occurred on
	M_placesGained     uint8 // number of places gained by this
}

// EventPacket is a decoded event packet. Exactly one of the detail fields is
// meaningful, selected by Code; the others are zero.
type EventPacket struct {
	Header    Header
	Code      string // four-character event string code
	SafetyCar SafetyCarEvent
	Penalty   PenaltyEvent
}

// ParseEvent decodes an event packet. Codes without a payload the bridge
// cares about yield an EventPacket with just Header and Code set.
func ParseEvent(pkt []byte) (EventPacket, error) {
	var event EventPacket
	r := bytes.NewReader(pkt)
	if err := binary.Read(r, binary.LittleEndian, &event.Header); err != nil {
		return event, fmt.Errorf("event header: %w", err)
	}
	if event.Header.M_packetFormat != PacketFormat2025 {
		return event, fmt.Errorf("unsupported packet format %d", event.Header.M_packetFormat)
	}
	if event.Header.M_packetId != IDEvent {
		return event, fmt.Errorf("packet id %d, want %d", event.Header.M_packetId, IDEvent)
	}

	var code [4]byte
	if err := binary.Read(r, binary.LittleEndian, &code); err != nil {
		return event, fmt.Errorf("event string code: %w", err)
	}
	event.Code = string(code[:])

	switch event.Code {
	case EventSafetyCar:
		if err := binary.Read(r, binary.LittleEndian, &event.SafetyCar); err != nil {
			return event, fmt.Errorf("safety car event details: %w", err)
		}
	case EventPenaltyIssued:
		if err := binary.Read(r, binary.LittleEndian, &event.Penalty); err != nil {
			return event, fmt.Errorf("penalty event details: %w", err)
		}
	}
	return event, nil
}
