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

// Package account provides the validated credentials of a user: user name,
// email address and password.
package account

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

const (
	// UserNameMinLen is the minimum length of a UserName, in characters.
	UserNameMinLen = 2

	// UserNameMaxLen is the maximum length of a UserName, in characters.
	UserNameMaxLen = 30
)

// UserName is a login handle. It is stored in canonical form: surrounding
// whitespace removed and lower-cased, so "  Hardfloor " and "hardfloor" are
// the same user. The canonical form is 2 to 30 letters, digits or
// underscores.
type UserName struct {
	value string
}

var _ model.Model = (*UserName)(nil)

// ParseUserName normalizes s and validates the result. Parsing a value that
// is already canonical returns it unchanged.
func ParseUserName(s string) (UserName, error) {
	canonical := cases.Lower(language.Und).String(strings.TrimSpace(s))
	if err := checkUserName(canonical); err != nil {
		return UserName{}, &errors.ValidationError{
			Type:   "UserName",
			Reason: fmt.Sprintf("%q is not a valid user name; %s", s, err),
			Value:  s,
		}
	}
	return UserName{value: canonical}, nil
}

func checkUserName(s string) error {
	n := utf8.RuneCountInString(s)
	if n < UserNameMinLen || n > UserNameMaxLen {
		return fmt.Errorf("expected %d to %d characters, got %d", UserNameMinLen, UserNameMaxLen, n)
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return fmt.Errorf("only letters, digits and underscores are allowed, got %q", r)
		}
	}
	return nil
}

// Value returns the canonical user name.
func (u UserName) Value() string {
	return u.value
}

func (u UserName) String() string {
	return u.value
}

func (u UserName) Redacted() string {
	return u.value
}

func (u UserName) TypeName() string {
	return "UserName"
}

func (u UserName) IsZero() bool {
	return u.value == ""
}

func (u UserName) Equal(other UserName) bool {
	return u.value == other.value
}

func (u UserName) Validate() error {
	if err := checkUserName(u.value); err != nil {
		return &errors.ValidationError{Type: "UserName", Reason: err.Error(), Value: u.value}
	}
	return nil
}

func (u UserName) MarshalJSON() ([]byte, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(u.value)
}

func (u *UserName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "UserName", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseUserName(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u UserName) MarshalYAML() (any, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u.value, nil
}

func (u *UserName) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "UserName", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseUserName(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
