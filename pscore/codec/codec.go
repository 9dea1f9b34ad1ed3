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

// Package codec checks device pattern bodies against the step schema
// registered for their device before they are accepted for storage.
//
// A body is a JSON document {length, steps} whose step shape depends on the
// device and on the schema revision. Each (device, revision) pair has a
// JSON Schema document (embedded under schemas/) and a set of step
// constructors. Parse runs both: the schema catches structural mismatches
// (wrong types, missing or unknown members, too many steps) and the step
// constructors prove that every step is made of valid scalars.
//
// On success the caller gets a Payload holding the original bytes verbatim,
// tagged with the device and revision that proved them. Nothing is
// re-serialized, so one schema-less storage column can carry every device's
// shape while readers rely on write-time validation.
//
// Devices without a registered schema (TR808, TR606) are rejected whatever
// the body looks like.
package codec

import (
	"fmt"
	"sort"

	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model/device"
	"patternsaver.dev/patterns/pscore/model/revision"
)

type key struct {
	device   device.Device
	revision string
}

// Codec validates pattern bodies. A Codec is immutable after New returns
// and is safe for concurrent use.
type Codec struct {
	schemas map[key]*Schema
	current map[device.Device]revision.Revision
}

// Option configures a Codec.
type Option func(*Codec) error

// WithRevision makes rev the revision Parse uses for d. The pair must be
// registered.
func WithRevision(d device.Device, rev revision.Revision) Option {
	return func(c *Codec) error {
		if _, ok := c.schemas[key{d, rev.String()}]; !ok {
			return fmt.Errorf("codec: no schema registered for %s revision %s", d, rev)
		}
		c.current[d] = rev
		return nil
	}
}

var (
	compiled   map[key]*Schema
	defaultRev = map[device.Device]string{
		device.TB303: "1.0.0",
		device.TR909: "1.0.0",
	}
	defaultCodec *Codec
)

func init() {
	var err error
	compiled, err = compileDefinitions()
	if err != nil {
		panic(&errors.DefectError{What: "embedded step schemas", Cause: err})
	}
	defaultCodec, err = New()
	if err != nil {
		panic(&errors.DefectError{What: "default codec", Cause: err})
	}
}

// New returns a codec over every registered schema. Without options, TB303
// and TR909 bodies are checked against revision 1.0.0.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{
		schemas: compiled,
		current: make(map[device.Device]revision.Revision, len(defaultRev)),
	}
	for d, r := range defaultRev {
		c.current[d] = revision.MustParse(r)
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Default returns the shared codec built with no options.
func Default() *Codec {
	return defaultCodec
}

// Parse validates raw against the current revision of d's schema using the
// default codec.
func Parse(raw []byte, d device.Device) (Payload, error) {
	return defaultCodec.Parse(raw, d)
}

// Parse validates raw against the current revision of d's schema.
//
// It returns a *errors.SchemaMismatchError when d has no schema ("device is
// not recognized") or when raw does not fit ("not able to parse 303 pattern
// data").
func (c *Codec) Parse(raw []byte, d device.Device) (Payload, error) {
	rev, ok := c.current[d]
	if !ok {
		return Payload{}, &errors.SchemaMismatchError{}
	}
	return c.ParseRevision(raw, d, rev)
}

// ParseRevision validates raw against an explicit revision of d's schema.
func (c *Codec) ParseRevision(raw []byte, d device.Device, rev revision.Revision) (Payload, error) {
	s, ok := c.schemas[key{d, rev.String()}]
	if !ok {
		if _, known := c.current[d]; known {
			return Payload{}, &errors.SchemaMismatchError{
				Device:   d.Label(),
				Revision: rev.String(),
				Reason:   "unknown schema revision " + rev.String(),
			}
		}
		return Payload{}, &errors.SchemaMismatchError{}
	}

	built, err := s.check(raw)
	if err != nil {
		return Payload{}, err
	}

	verbatim := make([]byte, len(raw))
	copy(verbatim, raw)
	return Payload{device: d, revision: rev, raw: verbatim, steps: built}, nil
}

// Current returns the revision Parse uses for d.
func (c *Codec) Current(d device.Device) (revision.Revision, bool) {
	rev, ok := c.current[d]
	return rev, ok
}

// Schema returns the compiled schema of a (device, revision) pair.
func (c *Codec) Schema(d device.Device, rev revision.Revision) (*Schema, bool) {
	s, ok := c.schemas[key{d, rev.String()}]
	return s, ok
}

// Revisions lists the registered revisions of d in ascending order.
func (c *Codec) Revisions(d device.Device) []revision.Revision {
	var out []revision.Revision
	for k, s := range c.schemas {
		if k.device == d {
			out = append(out, s.revision)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
