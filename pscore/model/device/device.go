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

// Package device defines the closed set of hardware devices a pattern can be
// written for.
package device

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

// Device identifies a drum machine or synthesizer.
//
// The zero Device is invalid. TB303 and TR909 have registered step schemas;
// TR808 and TR606 are reserved tags that are recognized as device names but
// have no schema, so every pattern body declared for them is rejected by the
// codec.
type Device int

const (
	// TB303 is the Roland TB-303 bass line synthesizer.
	TB303 Device = iota + 1

	// TR909 is the Roland TR-909 rhythm composer.
	TR909

	// TR808 is the Roland TR-808 rhythm composer.
	TR808

	// TR606 is the Roland TR-606 drumatix.
	TR606
)

const (
	TB303Str = "TB303"
	TR909Str = "TR909"
	TR808Str = "TR808"
	TR606Str = "TR606"
)

// All lists every device in declaration order.
var All = []Device{TB303, TR909, TR808, TR606}

var _ model.Model = (*Device)(nil)

// Parse converts a device tag into a Device.
//
// Only the four canonical tags are accepted, byte for byte. Case variants,
// hyphenated model names ("TB-303") and surrounding whitespace are rejected
// rather than corrected:
//
//	device.Parse("TB303")  // TB303, nil
//	device.Parse("tb303")  // 0, *errors.ValidationError
//	device.Parse("TB-303") // 0, *errors.ValidationError
func Parse(s string) (Device, error) {
	switch s {
	case TB303Str:
		return TB303, nil
	case TR909Str:
		return TR909, nil
	case TR808Str:
		return TR808, nil
	case TR606Str:
		return TR606, nil
	default:
		return 0, &errors.ValidationError{
			Type:   "Device",
			Reason: fmt.Sprintf("%q is not a valid device; expected one of TB303, TR909, TR808, TR606", s),
			Value:  s,
		}
	}
}

// String returns the canonical device tag, or "unknown".
func (d Device) String() string {
	switch d {
	case TB303:
		return TB303Str
	case TR909:
		return TR909Str
	case TR808:
		return TR808Str
	case TR606:
		return TR606Str
	default:
		return "unknown"
	}
}

// Label returns the short model number used in client-facing messages, such
// as "303" for TB303.
func (d Device) Label() string {
	if !d.Valid() {
		return ""
	}
	s := d.String()
	return s[len(s)-3:]
}

// Valid reports whether d is one of the defined constants.
func (d Device) Valid() bool {
	return d >= TB303 && d <= TR606
}

func (d Device) TypeName() string {
	return "Device"
}

func (d Device) Redacted() string {
	return d.String()
}

func (d Device) IsZero() bool {
	return d == 0
}

func (d Device) Equal(other Device) bool {
	return d == other
}

func (d Device) Validate() error {
	if !d.Valid() {
		return &errors.ValidationError{Type: "Device", Reason: "invalid Device value", Value: int(d)}
	}
	return nil
}

func (d Device) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Device", Value: int(d)}
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Device) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Device", Data: data, Reason: "empty data"}
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Device", Data: data, Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Device) MarshalYAML() (any, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Device", Value: int(d)}
	}
	return d.String(), nil
}

func (d *Device) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Device", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Device) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Device", Value: int(d)}
	}
	return []byte(d.String()), nil
}

func (d *Device) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
