// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"strconv"
)

// ErrorKind classifies topology errors.
//
type ErrorKind int

// Topology error kinds.
//
const (
	ErrBadSlot         ErrorKind = iota + 1 // Index references a slot that does not exist
	ErrBadPort                              // Index references a port beyond the slot's port count
	ErrBadDirection                         // input Index used as a source or output Index as a destination
	ErrMultipleDrivers                      // input driven by more than one output
	ErrPortCount                            // external port counts do not match the boundary slot
	ErrPortNames                            // port names do not match port counts, or are invalid
	ErrOwnership                            // child missing, or already owned by a composite
)

var kindNames = [...]string{
	ErrBadSlot:         "invalid slot",
	ErrBadPort:         "invalid port",
	ErrBadDirection:    "invalid direction",
	ErrMultipleDrivers: "multiple drivers",
	ErrPortCount:       "port count mismatch",
	ErrPortNames:       "invalid port names",
	ErrOwnership:       "invalid child",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// TopologyError is returned by NewComposite when the children and connections
// do not describe a valid circuit. Slot, Port and Dir identify the offending
// port so that netlist builders can map the error back to a source position.
// Slot is -1 when the error is not related to a specific slot.
//
type TopologyError struct {
	Kind ErrorKind
	Slot int
	Port int
	Dir  Direction
	Msg  string
}

func (e *TopologyError) Error() string {
	s := e.Kind.String()
	if e.Slot >= 0 {
		s += " at " + Index{Slot: e.Slot, Port: e.Port, Dir: e.Dir}.String()
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// InputArityError is returned by Update when the input vector length does not
// match the component's input count.
//
type InputArityError struct {
	Component string
	Want      int
	Got       int
}

func (e *InputArityError) Error() string {
	return e.Component + ": got " + strconv.Itoa(e.Got) + " inputs, expected " + strconv.Itoa(e.Want)
}
