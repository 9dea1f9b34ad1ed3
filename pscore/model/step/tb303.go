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

// Package step provides the per-device step aggregates of a pattern.
//
// A step is built exclusively from validated scalars. Each aggregate has a
// request shape (the JSON form a client sends, with pointer fields for the
// optional members) and a constructor that validates the shape field by
// field in declaration order. Errors carry the field name ("note"); the
// enclosing builder prefixes the step index.
package step

import (
	"encoding/json"
	"fmt"
	"strings"

	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/tb303"
)

// TB303Shape is the request form of a current (revision 2) TB-303 step.
type TB303Shape struct {
	Number int     `json:"number"`
	Note   *string `json:"note,omitempty"`
	Stem   *string `json:"stem,omitempty"`
	Time   string  `json:"time"`
	Accent *bool   `json:"accent,omitempty"`
	Slide  *bool   `json:"slide,omitempty"`
}

// TB303 is a validated TB-303 step. Note, stem, accent and slide are
// optional; an absent note on a "note" step plays the previous pitch.
type TB303 struct {
	number tb303.StepNumber
	note   *tb303.Note
	stem   *tb303.Stem
	time   tb303.Time
	accent *bool
	slide  *bool
}

var _ model.Aggregate = (*TB303)(nil)

// NewTB303 validates s in the order number, note, stem, time. Optional
// members are only validated when present.
func NewTB303(s TB303Shape, mode model.Mode) (TB303, error) {
	c := model.NewCollector(mode)

	number, err := tb303.ParseStepNumber(s.Number)
	if c.Add("number", err) {
		return TB303{}, c.Err()
	}
	note, err := model.ParseIfPresent(s.Note, tb303.ParseNote)
	if c.Add("note", err) {
		return TB303{}, c.Err()
	}
	stem, err := model.ParseIfPresent(s.Stem, tb303.ParseStem)
	if c.Add("stem", err) {
		return TB303{}, c.Err()
	}
	tm, err := tb303.ParseTime(s.Time)
	if c.Add("time", err) {
		return TB303{}, c.Err()
	}
	if err := c.Err(); err != nil {
		return TB303{}, err
	}

	return TB303{
		number: number,
		note:   note,
		stem:   stem,
		time:   tm,
		accent: copyBool(s.Accent),
		slide:  copyBool(s.Slide),
	}, nil
}

func (s TB303) Number() tb303.StepNumber {
	return s.number
}

func (s TB303) Note() (tb303.Note, bool) {
	if s.note == nil {
		return 0, false
	}
	return *s.note, true
}

func (s TB303) Stem() (tb303.Stem, bool) {
	if s.stem == nil {
		return 0, false
	}
	return *s.stem, true
}

func (s TB303) Time() tb303.Time {
	return s.time
}

func (s TB303) Accent() (bool, bool) {
	if s.accent == nil {
		return false, false
	}
	return *s.accent, true
}

func (s TB303) Slide() (bool, bool) {
	if s.slide == nil {
		return false, false
	}
	return *s.slide, true
}

// Shape returns the request form of the step.
func (s TB303) Shape() TB303Shape {
	shape := TB303Shape{
		Number: s.number.Value(),
		Time:   s.time.String(),
		Accent: copyBool(s.accent),
		Slide:  copyBool(s.slide),
	}
	if s.note != nil {
		v := s.note.String()
		shape.Note = &v
	}
	if s.stem != nil {
		v := s.stem.String()
		shape.Stem = &v
	}
	return shape
}

func (s TB303) Validate() error {
	if err := s.number.Validate(); err != nil {
		return err
	}
	if err := s.time.Validate(); err != nil {
		return err
	}
	if s.note != nil {
		if err := s.note.Validate(); err != nil {
			return err
		}
	}
	if s.stem != nil {
		return s.stem.Validate()
	}
	return nil
}

func (s TB303) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%s", s.number.Value(), s.time)
	if s.note != nil {
		b.WriteString(" " + s.note.String())
	}
	if s.stem != nil {
		b.WriteString(" " + s.stem.String())
	}
	if s.accent != nil && *s.accent {
		b.WriteString(" accent")
	}
	if s.slide != nil && *s.slide {
		b.WriteString(" slide")
	}
	return b.String()
}

func (s TB303) Redacted() string {
	return s.String()
}

func (s TB303) TypeName() string {
	return "TB303Step"
}

func (s TB303) IsZero() bool {
	return s.number.IsZero()
}

func (s TB303) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s.Shape())
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
