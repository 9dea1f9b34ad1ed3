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
	"unicode"
	"unicode/utf8"

	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

// PasswordMinLen is the minimum length of a Password, in characters.
const PasswordMinLen = 8

const redacted = "[REDACTED]"

// Password is a plaintext password that satisfies the strength rules: at
// least PasswordMinLen characters including a lower-case letter, an
// upper-case letter, a digit and a symbol (any character that is neither a
// letter nor a digit).
//
// A Password never renders its plaintext: String, Redacted and MarshalJSON
// all return "[REDACTED]" and validation errors never quote the input. The
// plaintext leaves only through Expose, for hashing.
type Password struct {
	value string
}

var _ model.Aggregate = (*Password)(nil)

// ParsePassword validates s against the strength rules.
func ParsePassword(s string) (Password, error) {
	if err := checkPassword(s); err != nil {
		return Password{}, err
	}
	return Password{value: s}, nil
}

func checkPassword(s string) error {
	if utf8.RuneCountInString(s) < PasswordMinLen {
		return passwordError("password must be at least 8 characters long")
	}

	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsNumber(r):
			digit = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}

	switch {
	case !lower:
		return passwordError("password must contain a lower-case letter")
	case !upper:
		return passwordError("password must contain an upper-case letter")
	case !digit:
		return passwordError("password must contain a digit")
	case !symbol:
		return passwordError("password must contain a symbol")
	}
	return nil
}

func passwordError(reason string) error {
	return &errors.ValidationError{Type: "Password", Reason: reason}
}

// Expose returns the plaintext. Hand it to the hashing collaborator and
// nothing else.
func (p Password) Expose() string {
	return p.value
}

func (p Password) String() string {
	return redacted
}

func (p Password) Redacted() string {
	return redacted
}

func (p Password) TypeName() string {
	return "Password"
}

func (p Password) IsZero() bool {
	return p.value == ""
}

// Equal compares two passwords. It is meant for confirming a repeated
// entry, not for authenticating against a stored hash.
func (p Password) Equal(other Password) bool {
	return p.value == other.value
}

func (p Password) Validate() error {
	return checkPassword(p.value)
}

// MarshalJSON always renders the redaction marker.
func (p Password) MarshalJSON() ([]byte, error) {
	return json.Marshal(redacted)
}

func (p *Password) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Password", Reason: "expected a JSON string"}
	}
	parsed, err := ParsePassword(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
