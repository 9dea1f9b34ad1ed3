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

// Package tb303 provides the validated scalars of a TB-303 pattern: the
// global knobs, the step number and the per-step note, stem and timing codes,
// plus the oscillator waveform.
//
// Note, Stem and Time have two spellings. Schema revision 2 (current) uses
// "C#", "up" and "note"; revision 1 (legacy) uses "Cs", "UP" and "NOTE". Both
// spellings decode to the same value. ParseX accepts the current spelling,
// ParseLegacyX the legacy one, and ParseXFor selects by revision.
package tb303

import (
	"fmt"
	"strings"

	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model/revision"
)

// LegacyMajor is the major schema revision that uses the legacy spellings.
const LegacyMajor = 1

// IsLegacy reports whether rev uses the legacy spellings.
func IsLegacy(rev revision.Revision) bool {
	return rev.Major() == LegacyMajor
}

// vocabulary maps the spellings of a closed set of words to 1-based codes.
// Index 0 is unused so that the zero code stays invalid.
type vocabulary struct {
	typeName string
	noun     string
	words    []string
}

func (v vocabulary) lookup(s string) (int, error) {
	for i, w := range v.words {
		if w != "" && w == s {
			return i, nil
		}
	}
	return 0, &errors.ValidationError{
		Type:   v.typeName,
		Reason: fmt.Sprintf("%q is not a valid %s; expected one of %s", s, v.noun, v.expected()),
		Value:  s,
	}
}

func (v vocabulary) word(code int) (string, bool) {
	if code <= 0 || code >= len(v.words) || v.words[code] == "" {
		return "", false
	}
	return v.words[code], true
}

func (v vocabulary) expected() string {
	valid := make([]string, 0, len(v.words))
	for _, w := range v.words {
		if w != "" {
			valid = append(valid, w)
		}
	}
	return strings.Join(valid, ", ")
}
