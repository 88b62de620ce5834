package bridge

import (
	"fmt"
	"log/slog"

	"github.com/Wouter17/f1-light-sync/internal/flags"
	"github.com/Wouter17/f1-light-sync/packet"
)

// Router maps decoded telemetry packets onto engine operations. Packet
// kinds that carry no flag information are ignored.
type Router struct {
	engine *flags.Engine
	log    *slog.Logger
}

// NewRouter returns a router driving engine.
func NewRouter(engine *flags.Engine, log *slog.Logger) *Router {
	return &Router{engine: engine, log: log}
}

// Route inspects one datagram and applies it to the engine. An undecodable
// datagram returns an error and changes nothing.
func (r *Router) Route(pkt []byte) error {
	header, err := packet.ParseHeader(pkt)
	if err != nil {
		return err
	}

	switch header.M_packetId {
	case packet.IDEvent:
		event, err := packet.ParseEvent(pkt)
		if err != nil {
			return err
		}
		r.routeEvent(event)
	case packet.IDParticipants:
		participants, err := packet.ParseParticipants(pkt)
		if err != nil {
			return err
		}
		numbers := participants.RaceNumbers()
		r.engine.SetRoster(numbers[:])
	case packet.IDCarStatus:
		status, err := packet.ParseCarStatus(pkt)
		if err != nil {
			return err
		}
		r.routeCarStatus(status)
	case packet.IDFinalClassification:
		if _, err := packet.ParseFinalClassification(pkt); err != nil {
			return err
		}
		r.engine.Reset()
	}
	return nil
}

func (r *Router) routeEvent(event packet.EventPacket) {
	switch event.Code {
	case packet.EventSafetyCar:
		r.routeSafetyCar(event.SafetyCar)
	case packet.EventPenaltyIssued:
		r.engine.SetPenalty(int(event.Penalty.M_vehicleIdx))
	case packet.EventChequeredFlag:
		r.engine.Finish()
	case packet.EventRedFlag:
		r.engine.SetGlobalFlag(flags.GlobalRed)
	case packet.EventSessionStarted, packet.EventSessionEnded:
		r.engine.Reset()
	}
}

// routeSafetyCar applies the (type, phase) decision table. Values outside
// [0,3] on either axis break the decoder's contract and are not mapped to a
// guess.
func (r *Router) routeSafetyCar(detail packet.SafetyCarEvent) {
	mode, phase := detail.M_safetyCarType, detail.M_eventType
	switch {
	case mode == 0 || phase == 2 || phase == 3:
		r.engine.ClearGlobalFlag()
	case (mode == 1 || mode == 3) && (phase == 0 || phase == 1):
		r.engine.SetGlobalFlag(flags.GlobalSC)
	case mode == 2 && (phase == 0 || phase == 1):
		r.engine.SetGlobalFlag(flags.GlobalVSC)
	default:
		panic(fmt.Sprintf("safety car event outside contract: type %d, phase %d", mode, phase))
	}
}

func (r *Router) routeCarStatus(status packet.CarStatusPacket) {
	if int(status.Header.M_playerCarIndex) >= packet.MaxCars {
		panic(fmt.Sprintf("player car index %d outside session car slots", status.Header.M_playerCarIndex))
	}

	flag := status.PlayerFiaFlag()
	switch flag {
	case packet.FIAFlagInvalid:
		r.log.Debug("unknown local flag received")
	case packet.FIAFlagNone:
		r.engine.ClearLocalFlag()
	case packet.FIAFlagGreen:
		r.engine.SetLocalFlag(flags.LocalGreen)
	case packet.FIAFlagBlue:
		r.engine.SetLocalFlag(flags.LocalBlue)
	case packet.FIAFlagYellow:
		r.engine.SetLocalFlag(flags.LocalYellow)
	case packet.FIAFlagRed:
		r.engine.SetGlobalFlag(flags.GlobalRed)
	default:
		r.log.Warn("marshalled flag outside known values", "value", flag)
	}
}
