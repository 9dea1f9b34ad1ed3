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
	"patternsaver.dev/patterns/pscore/model/revision"
)

// Time is the timing code of a TB-303 step: a new note, a note tied to the
// previous one, or a rest.
type Time int

const (
	TimeNote Time = iota + 1
	TimeTied
	TimeRest
)

var timeWords = vocabulary{typeName: "Time", noun: "timing code", words: []string{"", "note", "tied", "rest"}}

var legacyTimeWords = vocabulary{typeName: "Time", noun: "timing code", words: []string{"", "NOTE", "TIED", "REST"}}

var _ model.Model = (*Time)(nil)

// ParseTime parses the current spelling of a timing code.
func ParseTime(s string) (Time, error) {
	code, err := timeWords.lookup(s)
	return Time(code), err
}

// ParseLegacyTime parses the revision 1 spelling of a timing code.
func ParseLegacyTime(s string) (Time, error) {
	code, err := legacyTimeWords.lookup(s)
	return Time(code), err
}

// ParseTimeFor parses s using the spelling of the given schema revision.
func ParseTimeFor(rev revision.Revision, s string) (Time, error) {
	if IsLegacy(rev) {
		return ParseLegacyTime(s)
	}
	return ParseTime(s)
}

// LegacyString returns the revision 1 spelling, or "" when the value has
// none.
func (v Time) LegacyString() string {
	w, _ := legacyTimeWords.word(int(v))
	return w
}

// String returns the current spelling, or "unknown".
func (v Time) String() string {
	if w, ok := timeWords.word(int(v)); ok {
		return w
	}
	return "unknown"
}

// Valid reports whether v is one of the defined constants.
func (v Time) Valid() bool {
	_, ok := timeWords.word(int(v))
	return ok
}

func (v Time) Redacted() string {
	return v.String()
}

func (v Time) TypeName() string {
	return "Time"
}

func (v Time) IsZero() bool {
	return v == 0
}

func (v Time) Equal(other Time) bool {
	return v == other
}

func (v Time) Validate() error {
	if !v.Valid() {
		return &errors.ValidationError{Type: "Time", Reason: "invalid Time value", Value: int(v)}
	}
	return nil
}

func (v Time) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Time", Value: int(v)}
	}
	return json.Marshal(v.String())
}

func (v *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Time", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Time) MarshalYAML() (any, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Time", Value: int(v)}
	}
	return v.String(), nil
}

func (v *Time) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Time", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
