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

package account

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

// EmailMaxLen is the maximum length of an address, in bytes.
const EmailMaxLen = 254

// validate is safe for concurrent use once constructed.
var validate = validator.New()

// Email is a syntactically valid email address with surrounding whitespace
// removed. Deliverability is not checked.
type Email struct {
	value string
}

var _ model.Model = (*Email)(nil)

// ParseEmail validates s as an email address.
func ParseEmail(s string) (Email, error) {
	trimmed := strings.TrimSpace(s)
	if err := checkEmail(trimmed); err != nil {
		return Email{}, err
	}
	return Email{value: trimmed}, nil
}

func checkEmail(s string) error {
	if len(s) > EmailMaxLen || validate.Var(s, "required,email") != nil {
		return &errors.ValidationError{
			Type:   "Email",
			Reason: "\"" + redactEmail(s) + "\" is not a valid email address",
			Value:  redactEmail(s),
		}
	}
	return nil
}

// Value returns the address.
func (e Email) Value() string {
	return e.value
}

// String returns the full address. Use Redacted in logs.
func (e Email) String() string {
	return e.value
}

// Redacted masks the local part: "acid@example.com" becomes
// "a***@example.com".
func (e Email) Redacted() string {
	return redactEmail(e.value)
}

func (e Email) TypeName() string {
	return "Email"
}

func (e Email) IsZero() bool {
	return e.value == ""
}

// Equal compares addresses, ignoring the case of the domain.
func (e Email) Equal(other Email) bool {
	local, domain, _ := strings.Cut(e.value, "@")
	olocal, odomain, _ := strings.Cut(other.value, "@")
	return local == olocal && strings.EqualFold(domain, odomain)
}

func (e Email) Validate() error {
	return checkEmail(e.value)
}

func (e Email) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(e.value)
}

func (e *Email) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Email", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseEmail(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e Email) MarshalYAML() (any, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e.value, nil
}

func (e *Email) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Email", Reason: err.Error()}
	}
	parsed, err := ParseEmail(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func redactEmail(s string) string {
	if s == "" {
		return ""
	}
	local, domain, found := strings.Cut(s, "@")
	if !found || local == "" {
		return "***"
	}
	first := []rune(local)[0]
	return string(first) + "***@" + domain
}
