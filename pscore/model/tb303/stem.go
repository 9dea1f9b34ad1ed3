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

// Stem is the octave transpose of a TB-303 step. StemNone has no legacy
// spelling: revision 1 bodies always carry UP or DOWN.
type Stem int

const (
	// StemUp transposes the step one octave up.
	StemUp Stem = iota + 1
	// StemDown transposes the step one octave down.
	StemDown
	// StemNone leaves the step untransposed.
	StemNone
)

var stemWords = vocabulary{typeName: "Stem", noun: "stem", words: []string{"", "up", "down", "none"}}

var legacyStemWords = vocabulary{typeName: "Stem", noun: "stem", words: []string{"", "UP", "DOWN"}}

var _ model.Model = (*Stem)(nil)

// ParseStem parses the current spelling of a stem.
func ParseStem(s string) (Stem, error) {
	code, err := stemWords.lookup(s)
	return Stem(code), err
}

// ParseLegacyStem parses the revision 1 spelling of a stem.
func ParseLegacyStem(s string) (Stem, error) {
	code, err := legacyStemWords.lookup(s)
	return Stem(code), err
}

// ParseStemFor parses s using the spelling of the given schema revision.
func ParseStemFor(rev revision.Revision, s string) (Stem, error) {
	if IsLegacy(rev) {
		return ParseLegacyStem(s)
	}
	return ParseStem(s)
}

// LegacyString returns the revision 1 spelling, or "" when the value has
// none.
func (v Stem) LegacyString() string {
	w, _ := legacyStemWords.word(int(v))
	return w
}

// String returns the current spelling, or "unknown".
func (v Stem) String() string {
	if w, ok := stemWords.word(int(v)); ok {
		return w
	}
	return "unknown"
}

// Valid reports whether v is one of the defined constants.
func (v Stem) Valid() bool {
	_, ok := stemWords.word(int(v))
	return ok
}

func (v Stem) Redacted() string {
	return v.String()
}

func (v Stem) TypeName() string {
	return "Stem"
}

func (v Stem) IsZero() bool {
	return v == 0
}

func (v Stem) Equal(other Stem) bool {
	return v == other
}

func (v Stem) Validate() error {
	if !v.Valid() {
		return &errors.ValidationError{Type: "Stem", Reason: "invalid Stem value", Value: int(v)}
	}
	return nil
}

func (v Stem) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Stem", Value: int(v)}
	}
	return json.Marshal(v.String())
}

func (v *Stem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Stem", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseStem(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Stem) MarshalYAML() (any, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Stem", Value: int(v)}
	}
	return v.String(), nil
}

func (v *Stem) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Stem", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseStem(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
