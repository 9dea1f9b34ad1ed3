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

package model

import (
	"encoding/json"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
)

// Mode selects how a builder reacts to a failing field.
//
// FailFast stops at the first failing field in declaration order and returns
// its error alone. CollectAll keeps validating and returns every field error
// combined with go.uber.org/multierr, first field first, so the first error
// reported is the same one FailFast would have returned.
//
// Cross-field invariants run only once every field has passed, in both
// modes.
type Mode int

const (
	// FailFast returns the first field error. This is the default.
	FailFast Mode = iota

	// CollectAll returns every field error.
	CollectAll
)

var _ Model = (*Mode)(nil)

const (
	FailFastStr   = "fail-fast"
	CollectAllStr = "collect-all"
)

// String returns the canonical textual form of the mode, or "unknown".
func (m Mode) String() string {
	switch m {
	case FailFast:
		return FailFastStr
	case CollectAll:
		return CollectAllStr
	default:
		return "unknown"
	}
}

// ParseMode converts a textual mode into a Mode. It accepts the canonical
// kebab-case form plus common case variants.
func ParseMode(str string) (Mode, error) {
	switch str {
	case FailFastStr, "FailFast", "fail_fast", "FAIL_FAST":
		return FailFast, nil
	case CollectAllStr, "CollectAll", "collect_all", "COLLECT_ALL":
		return CollectAll, nil
	default:
		return FailFast, &errors.ParseError{Type: "Mode", Value: str}
	}
}

// Valid reports whether m is one of the defined constants.
func (m Mode) Valid() bool {
	return m == FailFast || m == CollectAll
}

func (m Mode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, &errors.MarshalError{Type: "Mode", Value: int(m)}
	}
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Mode", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Mode", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseMode(str)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Mode", Data: data, Reason: err.Error()}
	}
	if !Mode(i).Valid() {
		return &errors.UnmarshalError{Type: "Mode", Data: data, Reason: "invalid numeric value"}
	}
	*m = Mode(i)
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &errors.MarshalError{Type: "Mode", Value: int(m)}
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) MarshalYAML() (any, error) {
	if !m.Valid() {
		return nil, &errors.MarshalError{Type: "Mode", Value: int(m)}
	}
	return m.String(), nil
}

func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Mode", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) TypeName() string {
	return "Mode"
}

func (m Mode) Redacted() string {
	return m.String()
}

// IsZero reports whether m is the default mode.
func (m Mode) IsZero() bool {
	return m == FailFast
}

func (m Mode) Equal(other Mode) bool {
	return m == other
}

func (m Mode) Validate() error {
	if !m.Valid() {
		return &errors.ValidationError{Type: "Mode", Reason: "invalid Mode value", Value: int(m)}
	}
	return nil
}

// Collector gathers field errors for a builder according to a Mode.
//
//	c := model.NewCollector(mode)
//	title, err := text.ParseTitle(req.Title)
//	if c.Add("title", err) {
//	    return Pattern{}, c.Err()
//	}
//	...
//	if err := c.Err(); err != nil {
//	    return Pattern{}, err
//	}
//
// A Collector is not safe for concurrent use; builders create one per call.
type Collector struct {
	mode Mode
	err  error
}

// NewCollector returns an empty collector for the given mode.
func NewCollector(mode Mode) *Collector {
	return &Collector{mode: mode}
}

// Add records err under the given field path and reports whether the caller
// must stop validating. A nil err is ignored and never stops the caller.
func (c *Collector) Add(field string, err error) bool {
	if err == nil {
		return false
	}
	c.err = multierr.Append(c.err, errors.Annotate(err, field))
	return c.mode != CollectAll
}

// Failed reports whether any error has been recorded.
func (c *Collector) Failed() bool {
	return c.err != nil
}

// Err returns the recorded errors, or nil.
func (c *Collector) Err() error {
	return c.err
}
