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

package step

import (
	"encoding/json"
	"fmt"

	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/tb303"
)

// TB303LegacyShape is the revision 1 form of a TB-303 step. Every member is
// required and the step number is implied by the position in the list.
type TB303LegacyShape struct {
	Note   string `json:"note"`
	Stem   string `json:"stem"`
	Accent bool   `json:"accent"`
	Slide  bool   `json:"slide"`
	Time   string `json:"time"`
}

// TB303Legacy is a validated revision 1 TB-303 step.
type TB303Legacy struct {
	note   tb303.Note
	stem   tb303.Stem
	accent bool
	slide  bool
	time   tb303.Time
}

var _ model.Aggregate = (*TB303Legacy)(nil)

// NewTB303Legacy validates s in the order note, stem, time using the legacy
// spellings.
func NewTB303Legacy(s TB303LegacyShape, mode model.Mode) (TB303Legacy, error) {
	c := model.NewCollector(mode)

	note, err := tb303.ParseLegacyNote(s.Note)
	if c.Add("note", err) {
		return TB303Legacy{}, c.Err()
	}
	stem, err := tb303.ParseLegacyStem(s.Stem)
	if c.Add("stem", err) {
		return TB303Legacy{}, c.Err()
	}
	tm, err := tb303.ParseLegacyTime(s.Time)
	if c.Add("time", err) {
		return TB303Legacy{}, c.Err()
	}
	if err := c.Err(); err != nil {
		return TB303Legacy{}, err
	}

	return TB303Legacy{note: note, stem: stem, accent: s.Accent, slide: s.Slide, time: tm}, nil
}

func (s TB303Legacy) Note() tb303.Note { return s.note }
func (s TB303Legacy) Stem() tb303.Stem { return s.stem }
func (s TB303Legacy) Time() tb303.Time { return s.time }
func (s TB303Legacy) Accent() bool { return s.accent }
func (s TB303Legacy) Slide() bool { return s.slide }
func (s TB303Legacy) TypeName() string { return "TB303LegacyStep" }
func (s TB303Legacy) IsZero() bool { return s.note.IsZero() }
func (s TB303Legacy) Redacted() string { return s.String() }

// Upgrade converts the step to the current form at the given position.
func (s TB303Legacy) Upgrade(number tb303.StepNumber) TB303 {
	note, stem := s.note, s.stem
	accent, slide := s.accent, s.slide
	return TB303{number: number, note: &note, stem: &stem, time: s.time, accent: &accent, slide: &slide}
}

// Shape returns the revision 1 form of the step.
func (s TB303Legacy) Shape() TB303LegacyShape {
	return TB303LegacyShape{
		Note:   s.note.LegacyString(),
		Stem:   s.stem.LegacyString(),
		Accent: s.accent,
		Slide:  s.slide,
		Time:   s.time.LegacyString(),
	}
}

func (s TB303Legacy) Validate() error {
	if err := s.note.Validate(); err != nil {
		return err
	}
	if s.stem.LegacyString() == "" {
		return fmt.Errorf("stem %s has no legacy spelling", s.stem)
	}
	return s.time.Validate()
}

func (s TB303Legacy) String() string {
	return fmt.Sprintf("%s %s %s accent=%t slide=%t", s.time.LegacyString(), s.note.LegacyString(), s.stem.LegacyString(), s.accent, s.slide)
}

func (s TB303Legacy) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s.Shape())
}
