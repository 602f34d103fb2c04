// Package midiio bridges the engine to MIDI gear: mapped notes on an input
// port become trigger/gate edges, and output level changes become NoteOn and
// NoteOff messages.
package midiio

import (
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-burst/debug"
	"go-burst/engine"
)

// Input listens on a MIDI in port and forwards NoteOn/NoteOff of the mapped
// notes as rising/falling edges.
type Input struct {
	mu    sync.Mutex
	port  drivers.In
	stop  func()
	notes [engine.NumChannels]uint8
	sink  func(channel int, e engine.Edge)
}

// OpenInput connects to the first in port whose name contains portName
// (case-insensitive) and starts listening. notes maps one MIDI note per
// input channel.
func OpenInput(portName string, notes [engine.NumChannels]uint8, sink func(channel int, e engine.Edge)) (*Input, error) {
	port := findInPort(portName)
	if port == nil {
		return nil, fmt.Errorf("midi input %q not found", portName)
	}
	if err := port.Open(); err != nil {
		return nil, fmt.Errorf("open %q: %w", portName, err)
	}

	in := &Input{port: port, notes: notes, sink: sink}
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, _ int32) {
		var ch, key, vel uint8
		if msg.GetNoteStart(&ch, &key, &vel) {
			in.dispatch(key, engine.EdgeRising)
		} else if msg.GetNoteEnd(&ch, &key) {
			in.dispatch(key, engine.EdgeFalling)
		}
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("listen %q: %w", portName, err)
	}
	in.stop = stop
	debug.Log("midi", "input connected: %s", port.String())
	return in, nil
}

func (in *Input) dispatch(key uint8, e engine.Edge) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for ch, note := range in.notes {
		if key == note {
			in.sink(ch, e)
			return
		}
	}
	debug.LogEvery(100, "midi", "unmapped note %d ignored", key)
}

// Close stops the listener and releases the port.
func (in *Input) Close() {
	if in.stop != nil {
		in.stop()
	}
	if in.port != nil {
		in.port.Close()
	}
}

// Output drives one MIDI note per output jack: NoteOn when the level goes
// high, NoteOff when it drops.
type Output struct {
	send    func(gomidi.Message) error
	port    drivers.Out
	notes   [engine.NumOutputs]uint8
	channel uint8 // 0-based MIDI channel
}

// OpenOutput connects to the first out port whose name contains portName.
func OpenOutput(portName string, notes [engine.NumOutputs]uint8, midiChannel uint8) (*Output, error) {
	port := findOutPort(portName)
	if port == nil {
		return nil, fmt.Errorf("midi output %q not found", portName)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", portName, err)
	}
	debug.Log("midi", "output connected: %s", port.String())
	return &Output{send: send, port: port, notes: notes, channel: midiChannel}, nil
}

// WriteLevel implements engine.OutputWriter.
func (o *Output) WriteLevel(output int, high bool) {
	note := o.notes[output]
	var err error
	if high {
		err = o.send(gomidi.NoteOn(o.channel, note, 127))
	} else {
		err = o.send(gomidi.NoteOff(o.channel, note))
	}
	if err != nil {
		debug.LogEvery(100, "midi", "send failed: %v", err)
	}
}

// Close releases the port.
func (o *Output) Close() {
	if o.port != nil {
		o.port.Close()
	}
}

func findInPort(name string) drivers.In {
	for _, p := range gomidi.GetInPorts() {
		if containsCI(p.String(), name) {
			return p
		}
	}
	return nil
}

func findOutPort(name string) drivers.Out {
	for _, p := range gomidi.GetOutPorts() {
		if containsCI(p.String(), name) {
			return p
		}
	}
	return nil
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
