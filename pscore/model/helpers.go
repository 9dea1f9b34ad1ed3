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
	"fmt"

	"dirpx.dev/rxmerr"
	pserrors "patternsaver.dev/patterns/pscore/errors"
)

// ValidateAll validates every model in the slice and returns a single error
// aggregating all failures, or nil. Each failure is prefixed with the index
// and type name of the offending model.
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// MustParse runs parse on a built-in constant and panics with a
// *errors.DefectError if the constant is rejected.
//
//	var DefaultKnob = model.MustParse("default knob", 0, tb303.ParseKnob)
func MustParse[R, T any](what string, raw R, parse func(R) (T, error)) T {
	v, err := parse(raw)
	if err != nil {
		panic(&pserrors.DefectError{What: what, Cause: err})
	}
	return v
}

// ParseIfPresent applies parse to *raw when raw is non-nil. An absent input
// yields an absent (nil) result without invoking parse; a present input must
// still pass parse even if the field is optional.
func ParseIfPresent[R, T any](raw *R, parse func(R) (T, error)) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := parse(*raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ToJSON re-validates m and marshals it to JSON. Aggregates are only
// emitted in their canonical form once they prove they are still valid:
//
//	data, err := model.ToJSON(p) // p is a pattern.TB303Pattern
//
// The error wraps the validation failure and names m's type.
func ToJSON[T Canonical](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}
