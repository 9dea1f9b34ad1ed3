/*
   Copyright 2025 The PatternSaver Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tb303

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

// Waveform selects the TB-303 oscillator shape.
type Waveform int

const (
	Sawtooth Waveform = iota + 1
	Square
)

var waveformWords = vocabulary{typeName: "Waveform", noun: "waveform", words: []string{"", "sawtooth", "square"}}

var _ model.Model = (*Waveform)(nil)

// ParseWaveform parses the current spelling of a waveform.
func ParseWaveform(s string) (Waveform, error) {
	code, err := waveformWords.lookup(s)
	return Waveform(code), err
}

// String returns the current spelling, or "unknown".
func (v Waveform) String() string {
	if w, ok := waveformWords.word(int(v)); ok {
		return w
	}
	return "unknown"
}

// Valid reports whether v is one of the defined constants.
func (v Waveform) Valid() bool {
	_, ok := waveformWords.word(int(v))
	return ok
}

func (v Waveform) Redacted() string {
	return v.String()
}

func (v Waveform) TypeName() string {
	return "Waveform"
}

func (v Waveform) IsZero() bool {
	return v == 0
}

func (v Waveform) Equal(other Waveform) bool {
	return v == other
}

func (v Waveform) Validate() error {
	if !v.Valid() {
		return &errors.ValidationError{Type: "Waveform", Reason: "invalid Waveform value", Value: int(v)}
	}
	return nil
}

func (v Waveform) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Waveform", Value: int(v)}
	}
	return json.Marshal(v.String())
}

func (v *Waveform) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Waveform", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseWaveform(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Waveform) MarshalYAML() (any, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Waveform", Value: int(v)}
	}
	return v.String(), nil
}

func (v *Waveform) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Waveform", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseWaveform(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
