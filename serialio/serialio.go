// Package serialio bridges the engine to a hardware front panel over USB
// serial. The firmware does the analog thresholding and debouncing; this
// side only shuttles already-clean events.
//
// Line protocol, one message per line:
//
//	device -> host: "R<ch>" / "F<ch>"      rising/falling edge on input ch
//	device -> host: "K <k1> <k2> <b1> <b2>" panel event (knob detents, buttons)
//	host -> device: "O<id> <0|1>"          output level change
//	host -> device: "T <level>"            analog comparator threshold, 0-1
package serialio

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"go.bug.st/serial"

	"go-burst/debug"
	"go-burst/engine"
)

// Bridge is the open serial connection. It feeds edges and panel events into
// the supplied sinks and implements engine.OutputWriter for the way back.
type Bridge struct {
	port      serial.Port
	edgeSink  func(channel int, e engine.Edge)
	eventSink func(engine.UIEvent)
}

// Open connects to the device, pushes the comparator threshold and starts
// the read loop.
func Open(device string, baud int, threshold float64, edgeSink func(int, engine.Edge), eventSink func(engine.UIEvent)) (*Bridge, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", device, err)
	}

	b := &Bridge{port: port, edgeSink: edgeSink, eventSink: eventSink}
	if _, err := fmt.Fprintf(port, "T %.3f\n", threshold); err != nil {
		port.Close()
		return nil, fmt.Errorf("serial write threshold: %w", err)
	}
	debug.Log("serial", "opened %s baud=%d threshold=%.2f", device, baud, threshold)

	go b.readLoop()
	return b, nil
}

func (b *Bridge) readLoop() {
	scanner := bufio.NewScanner(b.port)
	for scanner.Scan() {
		b.handleLine(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		debug.Log("serial", "read loop ended: %v", err)
	}
}

func (b *Bridge) handleLine(line string) {
	if line == "" {
		return
	}
	switch line[0] {
	case 'R', 'F':
		ch, err := strconv.Atoi(line[1:])
		if err != nil || ch < 0 || ch >= engine.NumChannels {
			debug.LogEvery(50, "serial", "bad edge line %q", line)
			return
		}
		edge := engine.EdgeRising
		if line[0] == 'F' {
			edge = engine.EdgeFalling
		}
		b.edgeSink(ch, edge)
	case 'K':
		fields := strings.Fields(line[1:])
		if len(fields) != 4 {
			debug.LogEvery(50, "serial", "bad panel line %q", line)
			return
		}
		k1, _ := strconv.Atoi(fields[0])
		k2, _ := strconv.Atoi(fields[1])
		b.eventSink(engine.UIEvent{
			Knob1:   k1,
			Knob2:   k2,
			Button1: fields[2] == "1",
			Button2: fields[3] == "1",
		})
	default:
		debug.LogEvery(50, "serial", "unknown line %q", line)
	}
}

// WriteLevel implements engine.OutputWriter.
func (b *Bridge) WriteLevel(output int, high bool) {
	level := 0
	if high {
		level = 1
	}
	if _, err := fmt.Fprintf(b.port, "O%d %d\n", output, level); err != nil {
		debug.LogEvery(100, "serial", "write failed: %v", err)
	}
}

// Close closes the underlying port, which also ends the read loop.
func (b *Bridge) Close() {
	debug.Log("serial", "closing port")
	_ = b.port.Close()
}
