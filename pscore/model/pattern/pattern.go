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

package pattern

import (
	"encoding/json"
	"fmt"

	"patternsaver.dev/patterns/pscore/codec"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/device"
	"patternsaver.dev/patterns/pscore/model/text"
)

// Request is the generic pattern creation request. The body is kept as raw
// JSON until the device is known, since its shape depends on the device.
//
//	{
//	  "name": "Techno Bunker",
//	  "device": "TR909",
//	  "data": {"length": 1, "steps": [{"accent": false, "bd": true, ...}]}
//	}
type Request struct {
	// Name follows the title rules: 1 to 100 characters, not all whitespace.
	Name string `json:"name"`

	// Device is one of the exact tags TB303, TR909, TR808 or TR606. Tags
	// are matched byte for byte; "tb303" or "TB-303" are rejected.
	Device string `json:"device"`

	// Data is the device-specific body, checked against the current schema
	// revision of the codec in use.
	Data json.RawMessage `json:"data"`
}

// Pattern is a named pattern whose body has been proven against its
// device's step schema.
type Pattern struct {
	name    text.Title
	device  device.Device
	payload codec.Payload
}

var (
	_ model.Aggregate = (*Pattern)(nil)
	_ model.Canonical = Pattern{}
)

// New validates req in the order name, device, data. The name follows the
// title rules. The body is only checked once the device is known.
func New(req Request, opts ...Option) (Pattern, error) {
	o := newOptions(opts)
	c := model.NewCollector(o.mode)

	name, err := text.ParseTitle(req.Name)
	if c.Add("name", err) {
		return Pattern{}, c.Err()
	}
	dev, err := device.Parse(req.Device)
	if c.Add("device", err) {
		return Pattern{}, c.Err()
	}
	var payload codec.Payload
	if err == nil {
		payload, err = o.codec.Parse(req.Data, dev)
		if c.Add("data", err) {
			return Pattern{}, c.Err()
		}
	}
	if err := c.Err(); err != nil {
		return Pattern{}, err
	}

	return Pattern{name: name, device: dev, payload: payload}, nil
}

func (p Pattern) Name() text.Title {
	return p.name
}

func (p Pattern) Device() device.Device {
	return p.device
}

// Payload returns the verified body, ready for storage.
func (p Pattern) Payload() codec.Payload {
	return p.payload
}

func (p Pattern) Validate() error {
	if err := p.name.Validate(); err != nil {
		return err
	}
	if err := p.device.Validate(); err != nil {
		return err
	}
	return p.payload.Validate()
}

func (p Pattern) String() string {
	return fmt.Sprintf("Pattern{Name:%s, Device:%s, Data:%s}", p.name, p.device, p.payload)
}

func (p Pattern) Redacted() string {
	return fmt.Sprintf("Pattern{Name:%s, Device:%s, Data:%s}", p.name, p.device, p.payload.Redacted())
}

func (p Pattern) TypeName() string {
	return "Pattern"
}

func (p Pattern) IsZero() bool {
	return p.name.IsZero() && p.device.IsZero() && p.payload.IsZero()
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Name     text.Title    `json:"name"`
		Device   device.Device `json:"device"`
		Revision string        `json:"revision"`
		Data     codec.Payload `json:"data"`
	}{p.name, p.device, p.payload.Revision().String(), p.payload})
}
