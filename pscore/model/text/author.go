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

// Author credits the person who programmed a pattern.
type Author struct {
	value string
}

var _ model.Model = (*Author)(nil)

// ParseAuthor validates s as a pattern author.
func ParseAuthor(s string) (Author, error) {
	if err := bounded("Author", "pattern author", s, AuthorMaxLen); err != nil {
		return Author{}, err
	}
	return Author{value: s}, nil
}

// Value returns the text as given.
func (v Author) Value() string {
	return v.value
}

func (v Author) String() string {
	return v.value
}

func (v Author) Redacted() string {
	return v.value
}

func (v Author) TypeName() string {
	return "Author"
}

func (v Author) IsZero() bool {
	return v.value == ""
}

func (v Author) Equal(other Author) bool {
	return v.value == other.value
}

func (v Author) Validate() error {
	return bounded("Author", "pattern author", v.value, AuthorMaxLen)
}

func (v Author) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.value)
}

func (v *Author) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Author", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseAuthor(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Author) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.value, nil
}

func (v *Author) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Author", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseAuthor(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
