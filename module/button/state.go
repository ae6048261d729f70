package button

import (
	"strconv"

	"github.com/cwbudde/algo-button/dsp/sequence"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

const (
	toggleKey      = "toggle"
	constChoiceKey = "const_choice"
)

// State is the part of the module that survives a save/load cycle.
type State struct {
	Toggle      bool
	ConstChoice int // constant-voltage step in [0, 6)
}

// Valid reports whether s can be restored as is.
func (s State) Valid() bool {
	return s.ConstChoice >= 0 && s.ConstChoice < sequence.Steps
}

// MarshalJSON encodes s as {"toggle": bool, "const_choice": int}.
func (s State) MarshalJSON() ([]byte, error) {
	data, err := sjson.SetBytes([]byte("{}"), toggleKey, s.Toggle)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(data, constChoiceKey, s.ConstChoice)
}

// UnmarshalJSON overlays the well-formed fields of data onto s.
//
// A field of the wrong type, a non-integral or out-of-range const_choice,
// and anything that is not a JSON object are ignored. It never returns an
// error.
func (s *State) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return nil
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil
	}

	if v := root.Get(toggleKey); v.Type == gjson.True || v.Type == gjson.False {
		s.Toggle = v.Bool()
	}
	if v := root.Get(constChoiceKey); v.Type == gjson.Number {
		if choice, ok := parseChoice(v.Raw); ok {
			s.ConstChoice = choice
		}
	}
	return nil
}

// MarshalYAML encodes s with the same keys as the JSON form.
func (s State) MarshalYAML() (any, error) {
	return struct {
		Toggle      bool `yaml:"toggle"`
		ConstChoice int  `yaml:"const_choice"`
	}{s.Toggle, s.ConstChoice}, nil
}

// UnmarshalYAML applies the same leniency as UnmarshalJSON.
func (s *State) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			continue
		}

		switch key.Value {
		case toggleKey:
			var toggle bool
			if value.ShortTag() == "!!bool" && value.Decode(&toggle) == nil {
				s.Toggle = toggle
			}
		case constChoiceKey:
			if value.ShortTag() != "!!int" {
				continue
			}
			if choice, ok := parseChoice(value.Value); ok {
				s.ConstChoice = choice
			}
		}
	}
	return nil
}

func parseChoice(raw string) (int, bool) {
	choice, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	if !(State{ConstChoice: choice}).Valid() {
		return 0, false
	}
	return choice, true
}
