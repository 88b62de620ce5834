// Package flags holds the state machine that decides what a flag light
// display should show. Race conditions arrive as global flags (virtual
// safety car, safety car, red flag), local flags for the observed car
// (green, yellow, blue), penalty notices and the chequered flag; the engine
// ranks them and emits one signal per change that is actually visible.
package flags

import (
	"fmt"
	"strconv"
)

// GlobalFlag is a session-wide condition that overrides every per-driver
// display while active. Values are ordered by severity.
type GlobalFlag uint8

const (
	GlobalNone GlobalFlag = iota
	GlobalVSC
	GlobalSC
	GlobalRed
)

func (f GlobalFlag) String() string {
	switch f {
	case GlobalNone:
		return "none"
	case GlobalVSC:
		return "virtual safety car"
	case GlobalSC:
		return "safety car"
	case GlobalRed:
		return "red"
	}
	return fmt.Sprintf("GlobalFlag(%d)", uint8(f))
}

// LocalFlag is a condition shown to the observed car only. At most one is
// active at a time.
type LocalFlag uint8

const (
	LocalNone LocalFlag = iota
	LocalGreen
	LocalYellow
	LocalBlue
)

func (f LocalFlag) String() string {
	switch f {
	case LocalNone:
		return "none"
	case LocalGreen:
		return "green"
	case LocalYellow:
		return "yellow"
	case LocalBlue:
		return "blue"
	}
	return fmt.Sprintf("LocalFlag(%d)", uint8(f))
}

// Code is the numeric value a signal puts on the wire.
type Code uint8

const (
	CodeClear            Code = 0 // transmitted as an empty payload
	CodeGreen            Code = 1
	CodeYellow           Code = 2
	CodeSafetyCar        Code = 4
	CodeVirtualSafetyCar Code = 5
	CodeBlue             Code = 8
	CodePenalty          Code = 11
	CodeRed              Code = 12
	CodeChequered        Code = 16
)

// Code returns the wire code announcing the flag.
func (f GlobalFlag) Code() Code {
	switch f {
	case GlobalVSC:
		return CodeVirtualSafetyCar
	case GlobalSC:
		return CodeSafetyCar
	case GlobalRed:
		return CodeRed
	}
	return CodeClear
}

// Code returns the wire code announcing the flag.
func (f LocalFlag) Code() Code {
	switch f {
	case LocalGreen:
		return CodeGreen
	case LocalYellow:
		return CodeYellow
	case LocalBlue:
		return CodeBlue
	}
	return CodeClear
}

// Signal is one display update decided by the engine.
type Signal struct {
	Code   Code
	Driver int // vehicle index shown alongside CodePenalty
}

// Wire returns the UTF-8 payload carrying the signal. Clear is the empty
// string, a penalty carries its driver index comma joined, every other code
// is its decimal value.
func (s Signal) Wire() string {
	switch s.Code {
	case CodeClear:
		return ""
	case CodePenalty:
		return fmt.Sprintf("%d,%d", CodePenalty, s.Driver)
	}
	return strconv.Itoa(int(s.Code))
}

// Emitter receives every signal the engine decides to show. Implementations
// must tolerate being handed the same signal twice across session
// boundaries.
type Emitter interface {
	Emit(signal Signal) error
}
