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

// Title is the name of a pattern: 1 to TitleMaxLen grapheme clusters, not
// all whitespace. Generic patterns use the same rules for their name.
type Title struct {
	value string
}

var _ model.Model = (*Title)(nil)

// ParseTitle validates s as a pattern title.
func ParseTitle(s string) (Title, error) {
	if err := bounded("Title", "pattern title", s, TitleMaxLen); err != nil {
		return Title{}, err
	}
	return Title{value: s}, nil
}

// Value returns the text as given.
func (v Title) Value() string {
	return v.value
}

func (v Title) String() string {
	return v.value
}

func (v Title) Redacted() string {
	return v.value
}

func (v Title) TypeName() string {
	return "Title"
}

func (v Title) IsZero() bool {
	return v.value == ""
}

func (v Title) Equal(other Title) bool {
	return v.value == other.value
}

func (v Title) Validate() error {
	return bounded("Title", "pattern title", v.value, TitleMaxLen)
}

func (v Title) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.value)
}

func (v *Title) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Title", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseTitle(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Title) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.value, nil
}

func (v *Title) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Title", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseTitle(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
