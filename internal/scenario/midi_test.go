package scenario

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestFromMessagesPress(t *testing.T) {
	msgs := []TimedMessage{
		{At: 0.002, Msg: midi.NoteOn(0, 60, 100)},
		{At: 0.004, Msg: midi.NoteOn(0, 64, 90)}, // overlapping note keeps the press
		{At: 0.005, Msg: midi.NoteOff(0, 60)},
		{At: 0.006, Msg: midi.NoteOn(0, 64, 0)}, // note-on with zero velocity ends the note
		{At: 0.008, Msg: midi.ControlChange(0, 7, 100)},
		{At: 0.010, Msg: midi.NoteOn(1, 60, 1)},
		{At: 0.011, Msg: midi.NoteOff(1, 60)},
	}

	s, err := FromMessages(msgs, 1000, false)
	if err != nil {
		t.Fatalf("FromMessages() error = %v", err)
	}

	want := []struct {
		at    float64
		press bool
	}{
		{0.002, true},
		{0.006, false},
		{0.010, true},
		{0.011, false},
	}
	if len(s.Events) != len(want) {
		t.Fatalf("events = %+v, want %d", s.Events, len(want))
	}
	for i, w := range want {
		e := s.Events[i]
		if e.At != w.at || e.Press == nil || *e.Press != w.press || e.CV != nil {
			t.Fatalf("event %d = %+v, want at=%v press=%v", i, e, w.at, w.press)
		}
	}

	press, _, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if press[2] != 1 || press[5] != 1 || press[6] != 0 {
		t.Fatalf("press = %v", press[:8])
	}
}

func TestFromMessagesVelocityCV(t *testing.T) {
	msgs := []TimedMessage{
		{At: 0.003, Msg: midi.NoteOff(0, 60)},
		{At: 0.001, Msg: midi.NoteOn(0, 60, 127)},
	}

	s, err := FromMessages(msgs, 1000, true)
	if err != nil {
		t.Fatalf("FromMessages() error = %v", err)
	}
	if len(s.Events) != 2 {
		t.Fatalf("events = %+v", s.Events)
	}
	if *s.Events[0].CV != 10 || *s.Events[1].CV != 0 || s.Events[0].Press != nil {
		t.Fatalf("events = %+v", s.Events)
	}
}

func TestFromMessagesStrayNoteOff(t *testing.T) {
	msgs := []TimedMessage{
		{At: 0.001, Msg: midi.NoteOff(0, 60)},
		{At: 0.002, Msg: midi.NoteOn(0, 62, 80)},
	}

	s, err := FromMessages(msgs, 1000, false)
	if err != nil {
		t.Fatalf("FromMessages() error = %v", err)
	}
	if len(s.Events) != 1 || !*s.Events[0].Press {
		t.Fatalf("events = %+v", s.Events)
	}
}

func TestFromMessagesEmpty(t *testing.T) {
	if _, err := FromMessages(nil, 1000, false); err == nil {
		t.Fatal("expected error for a file without notes")
	}
}
