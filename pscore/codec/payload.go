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

package codec

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"

	"gorm.io/datatypes"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/device"
	"patternsaver.dev/patterns/pscore/model/revision"
	"patternsaver.dev/patterns/pscore/model/step"
)

// Payload is a pattern body that conforms to its device's step schema. It
// only comes out of Codec.Parse and is immutable: accessors hand out copies.
type Payload struct {
	device   device.Device
	revision revision.Revision
	raw      []byte
	steps    steps
}

var _ model.Aggregate = (*Payload)(nil)

// Device returns the device the body was proven against.
func (p Payload) Device() device.Device {
	return p.device
}

// Revision returns the schema revision the body was proven against.
func (p Payload) Revision() revision.Revision {
	return p.revision
}

// StepCount returns the number of steps in the body.
func (p Payload) StepCount() int {
	return p.steps.len()
}

// TB303Steps returns the typed steps of a TB303 body, or nil for any other
// device. Steps of a revision 1 body come back in the numbered form, numbered
// by their position.
func (p Payload) TB303Steps() []step.TB303 {
	return slices.Clone(p.steps.tb303)
}

// TR909Steps returns the typed steps of a TR909 body, or nil for any other
// device.
func (p Payload) TR909Steps() []step.TR909 {
	return slices.Clone(p.steps.tr909)
}

// Bytes returns a copy of the body exactly as it was received.
func (p Payload) Bytes() []byte {
	return bytes.Clone(p.raw)
}

// JSON returns the body as a value for a schema-less JSON column.
func (p Payload) JSON() datatypes.JSON {
	return datatypes.JSON(bytes.Clone(p.raw))
}

// DeviceColumn returns the value stored next to the body in the device
// identifier column.
func (p Payload) DeviceColumn() string {
	return p.device.String()
}

// Value implements driver.Valuer so a Payload can be bound directly to the
// body column.
func (p Payload) Value() (driver.Value, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.JSON().Value()
}

// MarshalJSON emits the body verbatim.
func (p Payload) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

func (p Payload) Validate() error {
	if !p.device.Valid() || p.revision.IsZero() || len(p.raw) == 0 {
		return &errors.ValidationError{Type: "Payload", Reason: "payload was not produced by the codec"}
	}
	return nil
}

func (p Payload) String() string {
	return string(p.raw)
}

// Redacted summarizes the payload without its contents.
func (p Payload) Redacted() string {
	return fmt.Sprintf("%s@%s payload (%d steps, %d bytes)", p.device, p.revision, p.StepCount(), len(p.raw))
}

func (p Payload) TypeName() string {
	return "Payload"
}

func (p Payload) IsZero() bool {
	return len(p.raw) == 0
}

// Equal reports whether both payloads carry the same bytes for the same
// device and revision.
func (p Payload) Equal(other Payload) bool {
	return p.device == other.device && p.revision.Equal(other.revision) && bytes.Equal(p.raw, other.raw)
}

var _ json.Marshaler = Payload{}
