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

// Bounds of StepNumber. Revision 1 bodies carry no step number; the codec
// numbers their steps by position within the same bounds.
const (
	StepNumberMin = 1
	StepNumberMax = 16
)

// StepNumber is the 1-based position of a step in a TB-303 sequence.
//
// The zero StepNumber is invalid, so IsZero doubles as "not set".
type StepNumber struct {
	value int
}

var _ model.Model = (*StepNumber)(nil)

// ParseStepNumber validates n as a step number.
func ParseStepNumber(n int) (StepNumber, error) {
	if err := checkStepNumber(n); err != nil {
		return StepNumber{}, err
	}
	return StepNumber{value: n}, nil
}

func checkStepNumber(n int) error {
	if n < StepNumberMin || n > StepNumberMax {
		return &errors.ValidationError{
			Type:   "StepNumber",
			Reason: fmt.Sprintf("%d is not a valid step number; expected an integer between %d and %d", n, StepNumberMin, StepNumberMax),
			Value:  n,
		}
	}
	return nil
}

// Value returns the wrapped integer.
func (v StepNumber) Value() int {
	return v.value
}

func (v StepNumber) String() string {
	return strconv.Itoa(v.value)
}

func (v StepNumber) Redacted() string {
	return v.String()
}

func (v StepNumber) TypeName() string {
	return "StepNumber"
}

func (v StepNumber) IsZero() bool {
	return v.value == 0
}

func (v StepNumber) Equal(other StepNumber) bool {
	return v.value == other.value
}

func (v StepNumber) Validate() error {
	return checkStepNumber(v.value)
}

func (v StepNumber) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.value)
}

func (v *StepNumber) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return &errors.UnmarshalError{Type: "StepNumber", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseStepNumber(n)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v StepNumber) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.value, nil
}

func (v *StepNumber) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err != nil {
		return &errors.UnmarshalError{Type: "StepNumber", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseStepNumber(n)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
