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

package text

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

// EFXNotes is free-form text describing the effects chain a pattern was
// recorded through. It may span several lines.
type EFXNotes struct {
	value string
}

var _ model.Model = (*EFXNotes)(nil)

// ParseEFXNotes validates s as a effects note.
func ParseEFXNotes(s string) (EFXNotes, error) {
	if err := bounded("EFXNotes", "effects note", s, EFXNotesMaxLen); err != nil {
		return EFXNotes{}, err
	}
	return EFXNotes{value: s}, nil
}

// Value returns the text as given.
func (v EFXNotes) Value() string {
	return v.value
}

func (v EFXNotes) String() string {
	return v.value
}

func (v EFXNotes) Redacted() string {
	return v.value
}

func (v EFXNotes) TypeName() string {
	return "EFXNotes"
}

func (v EFXNotes) IsZero() bool {
	return v.value == ""
}

func (v EFXNotes) Equal(other EFXNotes) bool {
	return v.value == other.value
}

func (v EFXNotes) Validate() error {
	return bounded("EFXNotes", "effects note", v.value, EFXNotesMaxLen)
}

func (v EFXNotes) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.value)
}

func (v *EFXNotes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "EFXNotes", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseEFXNotes(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v EFXNotes) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.value, nil
}

func (v *EFXNotes) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "EFXNotes", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseEFXNotes(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
