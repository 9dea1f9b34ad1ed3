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
	"strings"

	"patternsaver.dev/patterns/pscore/model"
)

// Channel is one of the twelve TR-909 instrument triggers, plus the global
// accent.
type Channel int

const (
	Accent Channel = iota
	BassDrum
	SnareDrum
	LowTom
	MidTom
	HighTom
	RimShot
	HandClap
	OpenHiHat
	ClosedHiHat
	Crash
	Ride

	numChannels
)

var channelKeys = [numChannels]string{"accent", "bd", "sd", "lt", "mt", "ht", "rs", "cp", "oh", "ch", "cr", "ri"}

// Channels lists every channel in wire order.
var Channels = []Channel{Accent, BassDrum, SnareDrum, LowTom, MidTom, HighTom, RimShot, HandClap, OpenHiHat, ClosedHiHat, Crash, Ride}

// String returns the wire key of the channel, such as "bd".
func (c Channel) String() string {
	if c < 0 || c >= numChannels {
		return "unknown"
	}
	return channelKeys[c]
}

// TR909Shape is the request form of a TR-909 step. Every member is required.
type TR909Shape struct {
	Accent bool `json:"accent"`
	BD     bool `json:"bd"`
	SD     bool `json:"sd"`
	LT     bool `json:"lt"`
	MT     bool `json:"mt"`
	HT     bool `json:"ht"`
	RS     bool `json:"rs"`
	CP     bool `json:"cp"`
	OH     bool `json:"oh"`
	CH     bool `json:"ch"`
	CR     bool `json:"cr"`
	RI     bool `json:"ri"`
}

// TR909 is a TR-909 step: which channels fire. Every combination is valid.
type TR909 struct {
	on [numChannels]bool
}

var _ model.Aggregate = (*TR909)(nil)

// NewTR909 builds a step from its request form. It cannot fail: structural
// checks happen in the codec before the shape exists.
func NewTR909(s TR909Shape) TR909 {
	return TR909{on: [numChannels]bool{
		s.Accent, s.BD, s.SD, s.LT, s.MT, s.HT, s.RS, s.CP, s.OH, s.CH, s.CR, s.RI,
	}}
}

// On reports whether channel c fires on this step.
func (s TR909) On(c Channel) bool {
	if c < 0 || c >= numChannels {
		return false
	}
	return s.on[c]
}

// Shape returns the request form of the step.
func (s TR909) Shape() TR909Shape {
	return TR909Shape{
		Accent: s.on[Accent], BD: s.on[BassDrum], SD: s.on[SnareDrum],
		LT: s.on[LowTom], MT: s.on[MidTom], HT: s.on[HighTom],
		RS: s.on[RimShot], CP: s.on[HandClap], OH: s.on[OpenHiHat],
		CH: s.on[ClosedHiHat], CR: s.on[Crash], RI: s.on[Ride],
	}
}

func (s TR909) Validate() error {
	return nil
}

// String lists the firing channels, or "-" for a silent step.
func (s TR909) String() string {
	var on []string
	for _, c := range Channels {
		if s.on[c] {
			on = append(on, c.String())
		}
	}
	if len(on) == 0 {
		return "-"
	}
	return strings.Join(on, "+")
}

func (s TR909) Redacted() string {
	return s.String()
}

func (s TR909) TypeName() string {
	return "TR909Step"
}

// IsZero reports whether the step is silent.
func (s TR909) IsZero() bool {
	return s.on == [numChannels]bool{}
}

func (s TR909) Equal(other TR909) bool {
	return s.on == other.on
}

func (s TR909) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Shape())
}
