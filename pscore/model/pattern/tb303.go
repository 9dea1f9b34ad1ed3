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

package pattern

import (
	"encoding/json"
	"fmt"
	"strconv"

	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/step"
	"patternsaver.dev/patterns/pscore/model/tb303"
	"patternsaver.dev/patterns/pscore/model/text"
)

// MaxSteps is the largest number of steps a pattern may hold.
//
// The TB-303 sequencer runs at most sixteen steps per pattern. The limit is
// checked after every step passed its own validation, so a request with
// seventeen valid steps fails with an *errors.InvariantError rather than a
// field error:
//
//	"a pattern can only have up to 16 steps, got 17"
const MaxSteps = 16

// RuleMaxSteps identifies the step-count invariant in *errors.InvariantError.
//
// Callers match on the rule rather than on the message:
//
//	var ie *errors.InvariantError
//	if stderrors.As(err, &ie) && ie.Rule == pattern.RuleMaxSteps {
//	    // tell the client to split the pattern
//	}
const RuleMaxSteps = "max-steps"

// TB303Request is the typed TB-303 pattern creation request, as decoded from
// the client. It is untrusted: nothing in it has been validated.
//
// Pointer fields are optional and JSON null counts as absent. An absent
// field is never validated; a present one must pass its scalar validator
// even though the field is optional. Steps is required but may be empty.
//
// # Example
//
//	req := pattern.TB303Request{
//	    Title:     "Acid Tracks",
//	    Resonance: ptr(280),
//	    Steps: []step.TB303Shape{
//	        {Number: 1, Note: ptr("C"), Time: "note"},
//	        {Number: 2, Time: "tied"},
//	    },
//	}
//	p, err := pattern.NewTB303(req)
type TB303Request struct {
	// Author is the pattern author's display name, 1 to 50 characters.
	Author *string `json:"author,omitempty"`

	// Title is the required pattern title, 1 to 100 characters.
	Title string `json:"title"`

	// EFXNotes are free-form notes about external effects, 1 to 500
	// characters.
	EFXNotes *string `json:"efx_notes,omitempty"`

	// Waveform is the oscillator shape, "sawtooth" or "square".
	Waveform *string `json:"waveform,omitempty"`

	// CutOffFreq, Resonance, EnvMod, Decay and Accent are knob positions in
	// degrees, 0 to 360. Zero is a valid position, which is why presence is
	// carried by the pointer.
	CutOffFreq *int `json:"cut_off_freq,omitempty"`
	Resonance  *int `json:"resonance,omitempty"`
	EnvMod     *int `json:"env_mod,omitempty"`
	Decay      *int `json:"decay,omitempty"`
	Accent     *int `json:"accent,omitempty"`

	// Steps are the sequencer steps in request order, at most MaxSteps.
	// Duplicate or unordered step numbers are accepted.
	Steps []step.TB303Shape `json:"steps"`
}

// TB303Pattern is a fully validated TB-303 pattern.
//
// A TB303Pattern only comes out of NewTB303. Optional fields keep their
// absence: Author, EFXNotes, Waveform and the knob accessors report false
// when the request left the field out, and the OrDefault accessors supply
// tb303.DefaultKnob for storage.
//
// The value is immutable. Steps hands out a copy, and no accessor returns
// a pointer into the pattern.
type TB303Pattern struct {
	author     *text.Author
	title      text.Title
	efxNotes   *text.EFXNotes
	waveform   *tb303.Waveform
	cutOffFreq *tb303.Knob
	resonance  *tb303.Knob
	envMod     *tb303.Knob
	decay      *tb303.Knob
	accent     *tb303.Knob
	steps      []step.TB303
}

var (
	_ model.Aggregate = (*TB303Pattern)(nil)
	_ model.Canonical = TB303Pattern{}
)

// NewTB303 validates req field by field in the order author, title,
// efx_notes, waveform, cut_off_freq, resonance, env_mod, decay, accent and
// then each step, and finally checks that the pattern holds at most
// MaxSteps steps.
func NewTB303(req TB303Request, opts ...Option) (TB303Pattern, error) {
	o := newOptions(opts)
	c := model.NewCollector(o.mode)
	var p TB303Pattern
	var err error

	if p.author, err = model.ParseIfPresent(req.Author, text.ParseAuthor); c.Add("author", err) {
		return TB303Pattern{}, c.Err()
	}
	if p.title, err = text.ParseTitle(req.Title); c.Add("title", err) {
		return TB303Pattern{}, c.Err()
	}
	if p.efxNotes, err = model.ParseIfPresent(req.EFXNotes, text.ParseEFXNotes); c.Add("efx_notes", err) {
		return TB303Pattern{}, c.Err()
	}
	if p.waveform, err = model.ParseIfPresent(req.Waveform, tb303.ParseWaveform); c.Add("waveform", err) {
		return TB303Pattern{}, c.Err()
	}

	knobs := []struct {
		field string
		raw   *int
		dst   **tb303.Knob
	}{
		{"cut_off_freq", req.CutOffFreq, &p.cutOffFreq},
		{"resonance", req.Resonance, &p.resonance},
		{"env_mod", req.EnvMod, &p.envMod},
		{"decay", req.Decay, &p.decay},
		{"accent", req.Accent, &p.accent},
	}
	for _, k := range knobs {
		if *k.dst, err = model.ParseIfPresent(k.raw, tb303.ParseKnob); c.Add(k.field, err) {
			return TB303Pattern{}, c.Err()
		}
	}

	p.steps = make([]step.TB303, 0, len(req.Steps))
	for i, shape := range req.Steps {
		s, err := step.NewTB303(shape, o.mode)
		if c.Add("steps["+strconv.Itoa(i)+"]", err) {
			return TB303Pattern{}, c.Err()
		}
		p.steps = append(p.steps, s)
	}

	if err := c.Err(); err != nil {
		return TB303Pattern{}, err
	}
	if err := checkStepCount(len(p.steps)); err != nil {
		return TB303Pattern{}, err
	}
	return p, nil
}

func checkStepCount(n int) error {
	if n > MaxSteps {
		return &errors.InvariantError{
			Rule:   RuleMaxSteps,
			Reason: fmt.Sprintf("a pattern can only have up to %d steps, got %d", MaxSteps, n),
		}
	}
	return nil
}

// Title returns the validated title, stored as given.
func (p TB303Pattern) Title() text.Title {
	return p.title
}

// Author returns the author and whether the request carried one.
func (p TB303Pattern) Author() (text.Author, bool) {
	return deref(p.author)
}

func (p TB303Pattern) EFXNotes() (text.EFXNotes, bool) {
	return deref(p.efxNotes)
}

func (p TB303Pattern) Waveform() (tb303.Waveform, bool) {
	return deref(p.waveform)
}

// CutOffFreq returns the cut-off frequency knob and whether the request
// carried it. Resonance, EnvMod, Decay and Accent follow the same pattern.
func (p TB303Pattern) CutOffFreq() (tb303.Knob, bool) {
	return deref(p.cutOffFreq)
}

func (p TB303Pattern) Resonance() (tb303.Knob, bool) {
	return deref(p.resonance)
}

func (p TB303Pattern) EnvMod() (tb303.Knob, bool) {
	return deref(p.envMod)
}

func (p TB303Pattern) Decay() (tb303.Knob, bool) {
	return deref(p.decay)
}

func (p TB303Pattern) Accent() (tb303.Knob, bool) {
	return deref(p.accent)
}

// CutOffFreqOrDefault returns the cut-off frequency, or tb303.DefaultKnob
// when the request left it out. The other OrDefault accessors behave the
// same way; storage uses them to fill its non-null knob columns.
func (p TB303Pattern) CutOffFreqOrDefault() tb303.Knob {
	return knobOrDefault(p.cutOffFreq)
}

func (p TB303Pattern) ResonanceOrDefault() tb303.Knob {
	return knobOrDefault(p.resonance)
}

func (p TB303Pattern) EnvModOrDefault() tb303.Knob {
	return knobOrDefault(p.envMod)
}

func (p TB303Pattern) DecayOrDefault() tb303.Knob {
	return knobOrDefault(p.decay)
}

func (p TB303Pattern) AccentOrDefault() tb303.Knob {
	return knobOrDefault(p.accent)
}

// Steps returns a copy of the steps in request order.
func (p TB303Pattern) Steps() []step.TB303 {
	out := make([]step.TB303, len(p.steps))
	copy(out, p.steps)
	return out
}

// Validate re-checks the title, every step and the step-count invariant.
// Values built by NewTB303 always pass; the zero TB303Pattern does not.
func (p TB303Pattern) Validate() error {
	if err := p.title.Validate(); err != nil {
		return err
	}
	for i, s := range p.steps {
		if err := s.Validate(); err != nil {
			return errors.Annotate(err, "steps["+strconv.Itoa(i)+"]")
		}
	}
	return checkStepCount(len(p.steps))
}

func (p TB303Pattern) String() string {
	return fmt.Sprintf("TB303Pattern{Title:%s, Steps:%d}", p.title, len(p.steps))
}

func (p TB303Pattern) Redacted() string {
	return p.String()
}

func (p TB303Pattern) TypeName() string {
	return "TB303Pattern"
}

func (p TB303Pattern) IsZero() bool {
	return p.title.IsZero()
}

// MarshalJSON emits the canonical form of the pattern: absent optional text
// fields are omitted and absent knobs are written as tb303.DefaultKnob.
//
//	{"title":"Acid Tracks","cut_off_freq":0,"resonance":280,...,"steps":[...]}
func (p TB303Pattern) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Author     *text.Author    `json:"author,omitempty"`
		Title      text.Title      `json:"title"`
		EFXNotes   *text.EFXNotes  `json:"efx_notes,omitempty"`
		Waveform   *tb303.Waveform `json:"waveform,omitempty"`
		CutOffFreq tb303.Knob      `json:"cut_off_freq"`
		Resonance  tb303.Knob      `json:"resonance"`
		EnvMod     tb303.Knob      `json:"env_mod"`
		Decay      tb303.Knob      `json:"decay"`
		Accent     tb303.Knob      `json:"accent"`
		Steps      []step.TB303    `json:"steps"`
	}{
		p.author, p.title, p.efxNotes, p.waveform,
		p.CutOffFreqOrDefault(), p.ResonanceOrDefault(), p.EnvModOrDefault(),
		p.DecayOrDefault(), p.AccentOrDefault(), p.steps,
	})
}

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}

func knobOrDefault(k *tb303.Knob) tb303.Knob {
	if k == nil {
		return tb303.DefaultKnob
	}
	return *k
}
