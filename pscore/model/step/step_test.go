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

package step_test

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"go.uber.org/multierr"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/step"
	"patternsaver.dev/patterns/pscore/model/tb303"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewTB303(t *testing.T) {
	tests := []struct {
		name      string
		shape     step.TB303Shape
		wantField string
	}{
		{"minimal", step.TB303Shape{Number: 1, Time: "rest"}, ""},
		{"full", step.TB303Shape{Number: 16, Note: ptr("D#"), Stem: ptr("down"), Time: "note", Accent: ptr(true), Slide: ptr(false)}, ""},
		{"bad number", step.TB303Shape{Number: 17, Time: "note"}, "number"},
		{"bad note", step.TB303Shape{Number: 1, Note: ptr("L"), Time: "note"}, "note"},
		{"empty note present", step.TB303Shape{Number: 1, Note: ptr(""), Time: "note"}, "note"},
		{"bad stem", step.TB303Shape{Number: 1, Stem: ptr("UP"), Time: "note"}, "stem"},
		{"bad time", step.TB303Shape{Number: 1, Time: "NOTE"}, "time"},
		{"first field wins", step.TB303Shape{Number: 0, Note: ptr("L"), Time: "x"}, "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := step.NewTB303(tt.shape, model.FailFast)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("NewTB303() error = %v", err)
				}
				return
			}
			var ve *errors.ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("NewTB303() error = %v, want *errors.ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestNewTB303_CollectAll(t *testing.T) {
	_, err := step.NewTB303(step.TB303Shape{Number: 0, Note: ptr("L"), Stem: ptr("up"), Time: "x"}, model.CollectAll)
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("len(errors) = %d, want 3: %v", len(errs), err)
	}
	want := []string{"number", "note", "time"}
	for i, e := range errs {
		var ve *errors.ValidationError
		if !stderrors.As(e, &ve) || ve.Field != want[i] {
			t.Errorf("errors[%d] = %v, want field %q", i, e, want[i])
		}
	}
}

func TestTB303_Accessors(t *testing.T) {
	s, err := step.NewTB303(step.TB303Shape{Number: 3, Note: ptr("Ch"), Time: "tied", Slide: ptr(true)}, model.FailFast)
	if err != nil {
		t.Fatalf("NewTB303() error = %v", err)
	}

	if s.Number().Value() != 3 || s.Time() != tb303.TimeTied {
		t.Errorf("Number/Time = %v/%v", s.Number(), s.Time())
	}
	if n, ok := s.Note(); !ok || n != tb303.CHigh {
		t.Errorf("Note() = %v, %v", n, ok)
	}
	if _, ok := s.Stem(); ok {
		t.Error("Stem() present, want absent")
	}
	if _, ok := s.Accent(); ok {
		t.Error("Accent() present, want absent")
	}
	if v, ok := s.Slide(); !ok || !v {
		t.Errorf("Slide() = %v, %v", v, ok)
	}
	if s.String() != "3:tied Ch slide" {
		t.Errorf("String() = %q", s.String())
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `{"number":3,"note":"Ch","time":"tied","slide":true}` {
		t.Errorf("json.Marshal() = %s", data)
	}
}

func TestTB303_ShapeIsolated(t *testing.T) {
	accent := true
	s, _ := step.NewTB303(step.TB303Shape{Number: 1, Time: "note", Accent: &accent}, model.FailFast)
	accent = false
	if v, _ := s.Accent(); !v {
		t.Error("step shares the request's accent pointer")
	}
}

func TestNewTB303Legacy(t *testing.T) {
	s, err := step.NewTB303Legacy(step.TB303LegacyShape{Note: "Cs", Stem: "UP", Accent: true, Time: "NOTE"}, model.FailFast)
	if err != nil {
		t.Fatalf("NewTB303Legacy() error = %v", err)
	}
	if s.Note() != tb303.CSharp || s.Stem() != tb303.StemUp || !s.Accent() || s.Slide() {
		t.Errorf("unexpected step %v", s)
	}

	four, _ := tb303.ParseStepNumber(4)
	up := s.Upgrade(four)
	if up.Number().Value() != 4 {
		t.Errorf("Upgrade() number = %v", up.Number())
	}
	if n, _ := up.Note(); n.String() != "C#" {
		t.Errorf("Upgrade() note = %v", n)
	}

	_, err = step.NewTB303Legacy(step.TB303LegacyShape{Note: "C#", Stem: "UP", Time: "NOTE"}, model.FailFast)
	var ve *errors.ValidationError
	if !stderrors.As(err, &ve) || ve.Field != "note" {
		t.Errorf("current spelling accepted in legacy step: %v", err)
	}
}

func TestTR909(t *testing.T) {
	s := step.NewTR909(step.TR909Shape{BD: true, CH: true, Accent: true})

	if !s.On(step.BassDrum) || !s.On(step.ClosedHiHat) || !s.On(step.Accent) {
		t.Error("On() missing a firing channel")
	}
	if s.On(step.Ride) || s.On(step.Channel(42)) {
		t.Error("On() reports a silent channel")
	}
	if s.String() != "accent+bd+ch" {
		t.Errorf("String() = %q", s.String())
	}
	if s.IsZero() || !step.NewTR909(step.TR909Shape{}).IsZero() {
		t.Error("IsZero() broken")
	}
	if s.Shape() != (step.TR909Shape{BD: true, CH: true, Accent: true}) {
		t.Errorf("Shape() = %+v", s.Shape())
	}

	data, _ := json.Marshal(step.NewTR909(step.TR909Shape{RI: true}))
	want := `{"accent":false,"bd":false,"sd":false,"lt":false,"mt":false,"ht":false,"rs":false,"cp":false,"oh":false,"ch":false,"cr":false,"ri":true}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s", data)
	}
}
