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
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

const (
	// KnobMin is the fully counter-clockwise knob position.
	KnobMin = 0

	// KnobMax is the fully clockwise knob position, in degrees.
	KnobMax = 360
)

// Knob is the position of a TB-303 rotary control (cut-off frequency,
// resonance, envelope modulation, decay or accent), in degrees of rotation.
//
// The zero Knob is valid: it is the fully counter-clockwise position. Use a
// *Knob, or the (Knob, bool) accessors of the pattern aggregate, to tell an
// absent knob apart from one turned all the way down.
//
// A Knob is only obtained from ParseKnob (or one of the unmarshalers, which
// call it), so every Knob in the program lies in [KnobMin, KnobMax].
//
// # Example
//
//	k, err := tb303.ParseKnob(280)
//	if err != nil {
//	    return err // *errors.ValidationError
//	}
//	fmt.Println(k.Value()) // 280
//
//	_, err = tb303.ParseKnob(400)
//	// err.Error():
//	// "400 is not a valid knob value; expected an integer between 0 and 360"
type Knob struct {
	// value is the position in degrees.
	value int
}

var _ model.Model = (*Knob)(nil)

// DefaultKnob is the position stored for a knob the request left out. It is
// built through ParseKnob at package initialization, so a change to the
// bounds that excluded it would panic with *errors.DefectError at startup.
var DefaultKnob = model.MustParse("default knob", KnobMin, ParseKnob)

// ParseKnob validates n as a knob value.
//
// It returns a *errors.ValidationError whose Reason names n and the
// accepted range when n lies outside [KnobMin, KnobMax]. Field is left empty;
// builders annotate it with the request field ("resonance").
func ParseKnob(n int) (Knob, error) {
	if err := checkKnob(n); err != nil {
		return Knob{}, err
	}
	return Knob{value: n}, nil
}

func checkKnob(n int) error {
	if n < KnobMin || n > KnobMax {
		return &errors.ValidationError{
			Type:   "Knob",
			Reason: fmt.Sprintf("%d is not a valid knob value; expected an integer between %d and %d", n, KnobMin, KnobMax),
			Value:  n,
		}
	}
	return nil
}

// Value returns the wrapped integer.
func (v Knob) Value() int {
	return v.value
}

// String renders the position as a decimal integer.
func (v Knob) String() string {
	return strconv.Itoa(v.value)
}

// Redacted is String: knob positions carry no sensitive data.
func (v Knob) Redacted() string {
	return v.String()
}

func (v Knob) TypeName() string {
	return "Knob"
}

// IsZero reports whether the knob is at KnobMin. Unlike most validated
// values, the zero Knob is valid.
func (v Knob) IsZero() bool {
	return v.value == 0
}

func (v Knob) Equal(other Knob) bool {
	return v.value == other.value
}

func (v Knob) Validate() error {
	return checkKnob(v.value)
}

func (v Knob) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.value)
}

// UnmarshalJSON accepts a JSON integer and validates it through ParseKnob.
func (v *Knob) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return &errors.UnmarshalError{Type: "Knob", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseKnob(n)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Knob) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.value, nil
}

func (v *Knob) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err != nil {
		return &errors.UnmarshalError{Type: "Knob", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseKnob(n)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
