package scenario

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TimedMessage is a MIDI message at an absolute time in seconds.
type TimedMessage struct {
	At  float64
	Msg midi.Message
}

// FromMIDI reads a standard MIDI file and converts its notes into a scenario.
// See FromMessages for the mapping.
func FromMIDI(r io.Reader, sampleRate float64, velocityCV bool) (*Scenario, error) {
	var msgs []TimedMessage
	rd := smf.ReadTracksFrom(r).Do(func(ev smf.TrackEvent) {
		msgs = append(msgs, TimedMessage{
			At:  float64(ev.AbsMicroSeconds) / 1e6,
			Msg: midi.Message(ev.Message),
		})
	})
	if err := rd.Error(); err != nil {
		return nil, fmt.Errorf("read midi file: %w", err)
	}
	return FromMessages(msgs, sampleRate, velocityCV)
}

// FromMessages converts note messages into button events. The button is
// pressed while at least one note is held, across all channels and keys.
//
// With velocityCV, notes drive the trigger input instead: a note start sets
// the input to velocity/127 * 10 V and releasing the last note returns it
// to 0 V. Non-note messages are ignored.
func FromMessages(msgs []TimedMessage, sampleRate float64, velocityCV bool) (*Scenario, error) {
	sorted := make([]TimedMessage, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })

	s := &Scenario{SampleRate: sampleRate}
	held := make(map[[2]uint8]bool)

	for _, m := range sorted {
		var channel, key, velocity uint8
		on := m.Msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0
		off := !on && (m.Msg.GetNoteOff(&channel, &key, &velocity) || m.Msg.GetNoteOn(&channel, &key, &velocity))
		id := [2]uint8{channel, key}

		switch {
		case on:
			wasIdle := len(held) == 0
			held[id] = true
			if velocityCV {
				v := float64(velocity) / 127 * 10
				s.Events = append(s.Events, Event{At: m.At, CV: &v})
			} else if wasIdle {
				s.Events = append(s.Events, Event{At: m.At, Press: boolPtr(true)})
			}
		case off:
			if !held[id] {
				continue
			}
			delete(held, id)
			if len(held) > 0 {
				continue
			}
			if velocityCV {
				s.Events = append(s.Events, Event{At: m.At, CV: floatPtr(0)})
			} else {
				s.Events = append(s.Events, Event{At: m.At, Press: boolPtr(false)})
			}
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
