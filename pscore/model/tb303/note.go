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

// Note is the pitch of a TB-303 step, from C up to the high C one octave
// above ("Ch").
type Note int

const (
	// C is the lowest note of the octave.
	C Note = iota + 1
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
	// CHigh is the C one octave above C.
	CHigh
)

var noteWords = vocabulary{typeName: "Note", noun: "note", words: []string{"", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B", "Ch"}}

var legacyNoteWords = vocabulary{typeName: "Note", noun: "note", words: []string{"", "C", "Cs", "D", "Ds", "E", "F", "Fs", "G", "Gs", "A", "As", "B", "Ch"}}

var _ model.Model = (*Note)(nil)

// ParseNote parses the current spelling of a note.
func ParseNote(s string) (Note, error) {
	code, err := noteWords.lookup(s)
	return Note(code), err
}

// ParseLegacyNote parses the revision 1 spelling of a note.
func ParseLegacyNote(s string) (Note, error) {
	code, err := legacyNoteWords.lookup(s)
	return Note(code), err
}

// ParseNoteFor parses s using the spelling of the given schema revision.
func ParseNoteFor(rev revision.Revision, s string) (Note, error) {
	if IsLegacy(rev) {
		return ParseLegacyNote(s)
	}
	return ParseNote(s)
}

// LegacyString returns the revision 1 spelling, or "" when the value has
// none.
func (v Note) LegacyString() string {
	w, _ := legacyNoteWords.word(int(v))
	return w
}

// String returns the current spelling, or "unknown".
func (v Note) String() string {
	if w, ok := noteWords.word(int(v)); ok {
		return w
	}
	return "unknown"
}

// Valid reports whether v is one of the defined constants.
func (v Note) Valid() bool {
	_, ok := noteWords.word(int(v))
	return ok
}

func (v Note) Redacted() string {
	return v.String()
}

func (v Note) TypeName() string {
	return "Note"
}

func (v Note) IsZero() bool {
	return v == 0
}

func (v Note) Equal(other Note) bool {
	return v == other
}

func (v Note) Validate() error {
	if !v.Valid() {
		return &errors.ValidationError{Type: "Note", Reason: "invalid Note value", Value: int(v)}
	}
	return nil
}

func (v Note) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Note", Value: int(v)}
	}
	return json.Marshal(v.String())
}

func (v *Note) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Note", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseNote(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Note) MarshalYAML() (any, error) {
	if !v.Valid() {
		return nil, &errors.MarshalError{Type: "Note", Value: int(v)}
	}
	return v.String(), nil
}

func (v *Note) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Note", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseNote(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
