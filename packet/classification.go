package packet

// Details for processing a final classification (packet id 8) packet

type finalClassificationData struct {
	M_position     uint8 // Finishing position
	M_numLaps      uint8 // Number of laps completed
	M_gridPosition uint8 // Grid position of the car
	M_points       uint8 // Number of points scored
	M_numPitStops  uint8 // Number of pit stops made
	M_resultStatus uint8 // Result status - 0 = invalid, 1 = inactive, 2 = active
	// 3 = finished, 4 = did not finish, 5 = disqualified
	// 6 = not classified, 7 = retired
	M_resultReason uint8 // Result reason - 0 = invalid, 1 = retired, 2 = finished
	// 3 = terminal damage, 4 = inactive, 5 = not enough laps completed
	// 6 = black flagged, 7 = red flagged, 8 = mechanical failure
	// 9 = session skipped, 10 = session simulated
	M_bestLapTimeInMS   uint32  // Best lap time of the session in milliseconds
	M_totalRaceTime     float64 // Total race time in seconds without penalties
	M_penaltiesTime     uint8   // Total penalties accumulated in seconds
	M_numPenalties      uint8   // Number of penalties applied to this driver
	M_numTyreStints     uint8   // Number of tyre stints up to maximum
	M_tyreStintsActual  [8]uint8 // Actual tyres used by this driver
	M_tyreStintsVisual  [8]uint8 // Visual tyres used by this driver
	M_tyreStintsEndLaps [8]uint8 // The lap number stints end on
}

// finalClassificationBody is the post-header payload of a final
// classification packet.
type finalClassificationBody struct {
	M_numCars            uint8 // Number of cars in the final classification
	M_classificationData [MaxCars]finalClassificationData
}

// FinalClassificationPacket is sent once at the end of a race and details
// the final standings. The flag bridge treats its arrival as a session
// boundary; the standings themselves are informational.
type FinalClassificationPacket struct {
	Header Header
	finalClassificationBody
}

// ParseFinalClassification decodes a final classification packet.
func ParseFinalClassification(pkt []byte) (FinalClassificationPacket, error) {
	var classification FinalClassificationPacket
	err := parseBody(pkt, IDFinalClassification, &classification.Header, &classification.finalClassificationBody)
	return classification, err
}
