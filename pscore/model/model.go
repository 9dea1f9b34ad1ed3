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

// Package model defines the contracts shared by every validated value in
// pscore, together with generic helpers built on them.
//
// A validated value wraps one primitive (or a composite of other validated
// values) behind unexported fields. The only way to obtain a non-zero value
// is its ParseXxx (or NewXxx) factory, so any value that exists satisfies its
// invariant for its whole lifetime. The interfaces below make that promise
// visible to generic code: values can re-check themselves, serialize only
// when valid, render a safe string for logs and report their type name.
//
// Values are immutable and therefore safe for concurrent reads.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root contract implemented by every validated scalar and
// enumeration in pscore.
//
// Implementations MUST re-validate in their marshalers so that an invalid
// (zero or forged) value can never be emitted, and MUST re-validate in their
// unmarshalers so that decoding is just another entry point into ParseXxx.
//
// Example implementation:
//
//	type Knob struct{ value int }
//
//	func (k Knob) Validate() error { ... }
//	func (k Knob) MarshalJSON() ([]byte, error) { ... }
//	func (k *Knob) UnmarshalJSON(data []byte) error { ... }
//	func (k Knob) MarshalYAML() (any, error) { ... }
//	func (k *Knob) UnmarshalYAML(node *yaml.Node) error { ... }
//	func (k Knob) String() string { ... }
//	func (k Knob) Redacted() string { ... }
//	func (k Knob) TypeName() string { return "Knob" }
//	func (k Knob) IsZero() bool { ... }
//
//	var _ model.Model = (*Knob)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is implemented by values that can re-check their invariant.
//
// Validate returns nil when the value is valid. Values obtained from a
// ParseXxx factory are always valid; Validate exists to catch zero values
// and values assembled by reflection-based decoders.
type Validatable interface {
	Validate() error
}

// Serializable is implemented by values with JSON and YAML forms.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is implemented by values that can be rendered in logs.
//
// Redacted MUST be safe to log unconditionally: it masks secrets and
// personal data. String MAY return the full value, except for secrets
// which never render their plaintext through either method.
type Loggable interface {
	Redacted() string

	String() string
}

// Identifiable is implemented by values that report a stable type name, used
// in error messages and structured logs.
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable is implemented by values that can detect their zero value.
//
// For validated values the zero value is never valid, so IsZero is how
// callers tell "absent" apart from "present".
type ZeroCheckable interface {
	IsZero() bool
}

// Comparable is implemented by values with semantic equality.
type Comparable[T any] interface {
	Equal(other T) bool
}

// Aggregate is the contract of composite values produced by the builders:
// they validate, render safely and identify themselves, but are not
// necessarily decodable from a single primitive.
type Aggregate interface {
	Validatable
	Loggable
	Identifiable
	ZeroCheckable
}

// Canonical is implemented by values with a single canonical JSON form that
// is only emitted while the value is valid. Patterns are Canonical; user
// aggregates are not, since they carry a credential.
type Canonical interface {
	Validatable
	Identifiable
	json.Marshaler
}
