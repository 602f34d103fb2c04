package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-burst/config"
	"go-burst/debug"
	"go-burst/engine"
	"go-burst/midiio"
	"go-burst/serialio"
	"go-burst/theme"
	"go-burst/tui"
)

func main() {
	var (
		flagDebug   = flag.Bool("debug", false, "write a debug log to ~/.config/go-burst/debug.log")
		flagSeed    = flag.Int64("seed", 0, "probability seed (0 = time-based)")
		flagTick    = flag.Duration("tick", engine.DefaultTickInterval, "engine tick interval")
		flagSerial  = flag.String("serial", "", "serial device of the hardware panel (overrides config)")
		flagMIDIIn  = flag.String("midi-in", "", "MIDI input port for trigger notes (overrides config)")
		flagMIDIOut = flag.String("midi-out", "", "MIDI output port for generated gates (overrides config)")
	)
	flag.Parse()

	if *flagDebug {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	if *flagSerial != "" {
		cfg.Serial.Device = *flagSerial
	}
	if *flagMIDIIn != "" {
		cfg.MIDI.InPort = *flagMIDIIn
	}
	if *flagMIDIOut != "" {
		cfg.MIDI.OutPort = *flagMIDIOut
	}

	settings := engine.NewSettings()
	settings.Load(settingsFromConfig(cfg))

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gate := engine.NewGate(seed)

	// All front-ends feed the same queues; the engine drains them one edge
	// per channel and one panel event per tick.
	edges := engine.NewEdgeQueue()
	uiEvents := engine.NewUIQueue()

	var writers engine.FanOut

	if cfg.Serial.Device != "" {
		bridge, err := serialio.Open(cfg.Serial.Device, cfg.Serial.Baud, cfg.Serial.Threshold, edges.Push, uiEvents.Push)
		if err != nil {
			fmt.Printf("serial: %v\n", err)
			os.Exit(1)
		}
		defer bridge.Close()
		writers = append(writers, bridge)
	}

	if cfg.MIDI.InPort != "" {
		in, err := midiio.OpenInput(cfg.MIDI.InPort, cfg.MIDI.InNotes, edges.Push)
		if err != nil {
			fmt.Printf("midi: %v\n", err)
			os.Exit(1)
		}
		defer in.Close()
	}
	if cfg.MIDI.OutPort != "" {
		if cfg.MIDI.Channel < 1 {
			cfg.MIDI.Channel = 1
		}
		out, err := midiio.OpenOutput(cfg.MIDI.OutPort, cfg.MIDI.OutNotes, cfg.MIDI.Channel-1)
		if err != nil {
			fmt.Printf("midi: %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
		writers = append(writers, out)
	}

	e := engine.New(settings, gate, mixesFromConfig(cfg), edges, writers, uiEvents)
	e.SetTickInterval(*flagTick)

	// Persist on every committed edit.
	e.Menu().SetOnCommit(func() {
		configFromSettings(cfg, settings)
		if err := cfg.Save(); err != nil {
			debug.Log("config", "save failed: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	m := tui.NewModel(e, edges, uiEvents, theme.New())
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// settingsFromConfig flattens the persisted channel configs into the store's
// value table.
func settingsFromConfig(cfg *config.Config) [engine.NumChannels][engine.NumParams]int {
	var vals [engine.NumChannels][engine.NumParams]int
	for ch, c := range cfg.Channels {
		vals[ch][engine.ParamBeginning] = c.Beginning
		vals[ch][engine.ParamDelay] = c.Delay
		vals[ch][engine.ParamDuration] = c.Duration
		vals[ch][engine.ParamDivisions] = c.Divisions
		vals[ch][engine.ParamRepetitions] = c.Repetitions
		vals[ch][engine.ParamProbability] = c.Probability
		vals[ch][engine.ParamDivProbability] = c.DivProbability
	}
	return vals
}

// configFromSettings copies the live values back for persistence.
func configFromSettings(cfg *config.Config, s *engine.Settings) {
	snap := s.Snapshot()
	for ch := range cfg.Channels {
		cfg.Channels[ch] = config.ChannelConfig{
			Beginning:      snap[ch][engine.ParamBeginning],
			Delay:          snap[ch][engine.ParamDelay],
			Duration:       snap[ch][engine.ParamDuration],
			Divisions:      snap[ch][engine.ParamDivisions],
			Repetitions:    snap[ch][engine.ParamRepetitions],
			Probability:    snap[ch][engine.ParamProbability],
			DivProbability: snap[ch][engine.ParamDivProbability],
		}
	}
}

func mixesFromConfig(cfg *config.Config) [engine.NumMixes]engine.MixerConfig {
	mixes := engine.DefaultMixes()
	for i, m := range cfg.Mixes {
		if i >= engine.NumMixes {
			break
		}
		mixes[i] = engine.MixerConfig{
			Op: engine.MixOp(m.Op),
			A:  engine.MixSource(m.A),
			B:  engine.MixSource(m.B),
		}
	}
	return mixes
}
