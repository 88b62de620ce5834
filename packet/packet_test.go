package packet

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encode packs values little endian the way the game serialises them.
func encode(t *testing.T, values ...any) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, value := range values {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, value))
	}
	return buf.Bytes()
}

func testHeader(id uint8) Header {
	return Header{
		M_packetFormat:            PacketFormat2025,
		M_gameYear:                25,
		M_gameMajorVersion:        1,
		M_packetVersion:           1,
		M_packetId:                id,
		M_sessionUID:              0x1122334455667788,
		M_sessionTime:             312.5,
		M_frameIdentifier:         19531,
		M_overallFrameIdentifier:  19531,
		M_playerCarIndex:          3,
		M_secondaryPlayerCarIndex: 255,
	}
}

func TestRecordSizes(t *testing.T) {
	// Record sizes are fixed by the published packet specification. A
	// mismatch here means every later field would be read misaligned.
	assert.Equal(t, 29, binary.Size(Header{}))
	assert.Equal(t, 55, binary.Size(carStatusData{}))
	assert.Equal(t, 57, binary.Size(participantData{}))
	assert.Equal(t, 46, binary.Size(finalClassificationData{}))
}

func TestParseHeader(t *testing.T) {
	header, err := ParseHeader(encode(t, testHeader(IDEvent)))
	require.NoError(t, err)
	assert.Equal(t, uint16(PacketFormat2025), header.M_packetFormat)
	assert.Equal(t, IDEvent, header.M_packetId)
	assert.Equal(t, uint64(0x1122334455667788), header.M_sessionUID)
	assert.Equal(t, uint8(3), header.M_playerCarIndex)
}

func TestParseHeaderRejectsOtherFormats(t *testing.T) {
	old := testHeader(IDEvent)
	old.M_packetFormat = 2024

	_, err := ParseHeader(encode(t, old))
	assert.ErrorContains(t, err, "unsupported packet format")
}

func TestParseHeaderRejectsShortPacket(t *testing.T) {
	_, err := ParseHeader(encode(t, testHeader(IDEvent))[:12])
	assert.Error(t, err)
}

func TestParseEventSafetyCar(t *testing.T) {
	pkt := encode(t, testHeader(IDEvent), []byte(EventSafetyCar),
		SafetyCarEvent{M_safetyCarType: 2, M_eventType: 0})

	event, err := ParseEvent(pkt)
	require.NoError(t, err)
	assert.Equal(t, EventSafetyCar, event.Code)
	assert.Equal(t, uint8(2), event.SafetyCar.M_safetyCarType)
	assert.Equal(t, uint8(0), event.SafetyCar.M_eventType)
}

func TestParseEventPenalty(t *testing.T) {
	pkt := encode(t, testHeader(IDEvent), []byte(EventPenaltyIssued), PenaltyEvent{
		M_penaltyType:      5,
		M_infringementType: 7,
		M_vehicleIdx:       14,
		M_otherVehicleIdx:  255,
		M_time:             3,
		M_lapNum:           12,
	})

	event, err := ParseEvent(pkt)
	require.NoError(t, err)
	assert.Equal(t, EventPenaltyIssued, event.Code)
	assert.Equal(t, uint8(14), event.Penalty.M_vehicleIdx)
	assert.Equal(t, uint8(12), event.Penalty.M_lapNum)
}

func TestParseEventBareCode(t *testing.T) {
	// Codes without a consumed detail payload decode from the code alone.
	for _, code := range []string{EventSessionStarted, EventSessionEnded, EventChequeredFlag, EventRedFlag} {
		event, err := ParseEvent(encode(t, testHeader(IDEvent), []byte(code)))
		require.NoError(t, err)
		assert.Equal(t, code, event.Code)
	}
}

func TestParseEventRejectsBadPackets(t *testing.T) {
	badFormat := testHeader(IDEvent)
	badFormat.M_packetFormat = 2023

	tests := []struct {
		name string
		pkt  []byte
	}{
		{"truncated header", encode(t, testHeader(IDEvent))[:12]},
		{"wrong packet id", encode(t, testHeader(IDCarTelemetry), []byte(EventSessionStarted))},
		{"wrong format", encode(t, badFormat, []byte(EventSessionStarted))},
		{"missing code", encode(t, testHeader(IDEvent))},
		{"missing safety car detail", encode(t, testHeader(IDEvent), []byte(EventSafetyCar))},
		{"missing penalty detail", encode(t, testHeader(IDEvent), []byte(EventPenaltyIssued), uint8(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvent(tt.pkt)
			assert.Error(t, err)
		})
	}
}

func TestParseCarStatus(t *testing.T) {
	var cars [MaxCars]carStatusData
	cars[3].M_vehicleFiaFlags = FIAFlagYellow
	cars[3].M_fuelInTank = 44.5
	cars[9].M_vehicleFiaFlags = FIAFlagBlue

	status, err := ParseCarStatus(encode(t, testHeader(IDCarStatus), cars))
	require.NoError(t, err)
	assert.Equal(t, FIAFlagYellow, status.PlayerFiaFlag())
	assert.Equal(t, float32(44.5), status.CarStatusData[3].M_fuelInTank)
	assert.Equal(t, FIAFlagBlue, status.CarStatusData[9].M_vehicleFiaFlags)
}

func TestParseCarStatusRejectsTruncatedBody(t *testing.T) {
	var cars [MaxCars]carStatusData
	pkt := encode(t, testHeader(IDCarStatus), cars)

	_, err := ParseCarStatus(pkt[:len(pkt)-40])
	assert.Error(t, err)
}

func TestParseParticipants(t *testing.T) {
	var body participantsBody
	body.M_numActiveCars = 20
	for i := range body.M_participants {
		body.M_participants[i].M_raceNumber = uint8(10 + i)
	}
	copy(body.M_participants[3].M_name[:], "VERSTAPPEN")

	participants, err := ParseParticipants(encode(t, testHeader(IDParticipants), body))
	require.NoError(t, err)
	assert.Equal(t, uint8(20), participants.M_numActiveCars)

	numbers := participants.RaceNumbers()
	for i := range numbers {
		assert.Equal(t, uint8(10+i), numbers[i])
	}
}

func TestParseFinalClassification(t *testing.T) {
	var body finalClassificationBody
	body.M_numCars = 20
	body.M_classificationData[0].M_position = 1
	body.M_classificationData[0].M_numLaps = 52
	body.M_classificationData[0].M_totalRaceTime = 5315.25

	classification, err := ParseFinalClassification(encode(t, testHeader(IDFinalClassification), body))
	require.NoError(t, err)
	assert.Equal(t, uint8(20), classification.M_numCars)
	assert.Equal(t, uint8(1), classification.M_classificationData[0].M_position)
	assert.Equal(t, 5315.25, classification.M_classificationData[0].M_totalRaceTime)
}
