package packet

// Details for processing a participants (packet id 4) packet

type liveryColour struct {
	M_red   uint8
	M_green uint8
	M_blue  uint8
}

type participantData struct {
	M_aiControlled    uint8    // Whether the vehicle is AI (1) or Human (0) controlled
	M_driverId        uint8    // Driver id - see appendix, 255 if network human
	M_networkId       uint8    // Network id - unique identifier for network players
	M_teamId          uint8    // Team id - see appendix
	M_myTeam          uint8    // My team flag - 1 = My Team mode, 0 = otherwise
	M_raceNumber      uint8    // Race number of the car
	M_nationality     uint8    // Nationality of the driver
	M_name            [32]byte // Name of participant in UTF-8 format - null terminated
	M_yourTelemetry   uint8    // The player's UDP setting, 0 = restricted, 1 = public
	M_showOnlineNames uint8    // The player's show online names setting, 0 = off, 1 = on
	M_techLevel       uint16   // F1 World tech level
	M_platform        uint8    // 1 = Steam, 3 = PlayStation, 4 = Xbox, 6 = Origin, 255 = unknown
	M_numColours      uint8    // Number of livery colours valid for this car
	M_liveryColours   [4]liveryColour // Colours of the car livery
}

// participantsBody is the post-header payload of a participants packet.
type participantsBody struct {
	M_numActiveCars uint8 // Number of active cars in the data - should match number of cars on HUD
	M_participants  [MaxCars]participantData
}

// ParticipantsPacket lists every car slot in the session. Slots beyond
// M_numActiveCars hold zeroed records.
type ParticipantsPacket struct {
	Header Header
	participantsBody
}

// RaceNumbers returns the race number of every car slot, indexed by vehicle.
func (p ParticipantsPacket) RaceNumbers() [MaxCars]uint8 {
	var numbers [MaxCars]uint8
	for i, participant := range p.M_participants {
		numbers[i] = participant.M_raceNumber
	}
	return numbers
}

// ParseParticipants decodes a participants packet.
func ParseParticipants(pkt []byte) (ParticipantsPacket, error) {
	var participants ParticipantsPacket
	err := parseBody(pkt, IDParticipants, &participants.Header, &participants.participantsBody)
	return participants, err
}
