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
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
)

// level is a minimal Model used to exercise the generic helpers.
type level struct {
	value int
}

func parseLevel(n int) (level, error) {
	l := level{value: n}
	if err := l.Validate(); err != nil {
		return level{}, err
	}
	return l, nil
}

func (l level) Validate() error {
	if l.value < 1 || l.value > 10 {
		return &errors.ValidationError{Type: "level", Reason: fmt.Sprintf("%d is out of range", l.value)}
	}
	return nil
}

func (l level) MarshalJSON() ([]byte, error) { return json.Marshal(l.value) }

func (l *level) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &l.value) }

func (l level) MarshalYAML() (any, error) { return l.value, nil }

func (l *level) UnmarshalYAML(node *yaml.Node) error { return node.Decode(&l.value) }

func (l level) String() string   { return fmt.Sprintf("level(%d)", l.value) }
func (l level) Redacted() string { return "level(*)" }
func (l level) TypeName() string { return "level" }
func (l level) IsZero() bool     { return l.value == 0 }

var _ Model = (*level)(nil)

func TestValidateAll(t *testing.T) {
	ok := []*level{{value: 1}, {value: 10}}
	if err := ValidateAll(ok); err != nil {
		t.Errorf("ValidateAll() = %v, want nil", err)
	}

	bad := []*level{{value: 1}, {value: 0}, {value: 11}}
	err := ValidateAll(bad)
	if err == nil {
		t.Fatal("ValidateAll() = nil, want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "model[1] (level)") || !strings.Contains(msg, "model[2] (level)") {
		t.Errorf("ValidateAll() = %q, want both failing indexes", msg)
	}
}

func TestMustParse(t *testing.T) {
	if got := MustParse("answer", 4, parseLevel); got.value != 4 {
		t.Errorf("MustParse() = %v, want level(4)", got)
	}

	defer func() {
		r := recover()
		de, ok := r.(*errors.DefectError)
		if !ok {
			t.Fatalf("recover() = %T, want *errors.DefectError", r)
		}
		if de.What != "broken constant" {
			t.Errorf("What = %q, want %q", de.What, "broken constant")
		}
		var ve *errors.ValidationError
		if !stderrors.As(de, &ve) {
			t.Error("DefectError does not wrap the validation error")
		}
	}()
	MustParse("broken constant", 42, parseLevel)
}

func TestParseIfPresent(t *testing.T) {
	called := false
	parse := func(n int) (level, error) {
		called = true
		return parseLevel(n)
	}

	got, err := ParseIfPresent[int](nil, parse)
	if err != nil || got != nil {
		t.Errorf("ParseIfPresent(nil) = %v, %v; want nil, nil", got, err)
	}
	if called {
		t.Error("ParseIfPresent(nil) invoked the parser")
	}

	five := 5
	got, err = ParseIfPresent(&five, parse)
	if err != nil || got == nil || got.value != 5 {
		t.Errorf("ParseIfPresent(5) = %v, %v; want level(5)", got, err)
	}

	zero := 0
	if _, err := ParseIfPresent(&zero, parse); err == nil {
		t.Error("ParseIfPresent(0) error = nil, want error for a present invalid value")
	}
}

func TestToJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      level
		want    string
		wantErr string
	}{
		{"valid", level{value: 7}, "7", ""},
		{"zero", level{}, "", "cannot marshal invalid level"},
		{"out of range", level{value: 11}, "", "11 is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ToJSON(tt.in)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ToJSON() error = %v, want it to contain %q", err, tt.wantErr)
				}
				var ve *errors.ValidationError
				if !stderrors.As(err, &ve) {
					t.Errorf("ToJSON() error does not wrap the ValidationError: %v", err)
				}
				return
			}
			if err != nil || string(data) != tt.want {
				t.Errorf("ToJSON() = %s, %v, want %s", data, err, tt.want)
			}
		})
	}
}
