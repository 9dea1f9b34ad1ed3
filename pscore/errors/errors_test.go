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

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"go.uber.org/multierr"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{"Device type", &ParseError{Type: "Device", Value: "TB404"}, "pscore: invalid Device value: TB404"},
		{"Mode type", &ParseError{Type: "Mode", Value: "bad"}, "pscore: invalid Mode value: bad"},
		{"empty value", &ParseError{Type: "Mode", Value: ""}, "pscore: invalid Mode value: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalError_Error(t *testing.T) {
	err := &MarshalError{Type: "Device", Value: -1}
	if got, want := err.Error(), "pscore: cannot marshal invalid Device value: -1"; got != want {
		t.Errorf("MarshalError.Error() = %q, want %q", got, want)
	}
}

func TestUnmarshalError_Error(t *testing.T) {
	err := &UnmarshalError{Type: "Knob", Data: []byte(`"x"`), Reason: "empty data"}
	if got, want := err.Error(), "pscore: cannot unmarshal Knob: empty data"; got != want {
		t.Errorf("UnmarshalError.Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"standalone",
			&ValidationError{Type: "Note", Reason: `"L" is not a valid note`},
			`"L" is not a valid note`,
		},
		{
			"with field",
			&ValidationError{Type: "Note", Field: "steps[3].note", Reason: `"L" is not a valid note`},
			`steps[3].note: "L" is not a valid note`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemaMismatchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SchemaMismatchError
		want string
	}{
		{"unrecognized", &SchemaMismatchError{}, "device is not recognized"},
		{"bare", &SchemaMismatchError{Device: "303"}, "not able to parse 303 pattern data"},
		{
			"with reason",
			&SchemaMismatchError{Device: "909", Reason: "missing properties: 'ri'"},
			"not able to parse 909 pattern data: missing properties: 'ri'",
		},
		{
			"with location",
			&SchemaMismatchError{Device: "303", Location: "/steps/0/note", Reason: "value must be one of ..."},
			"not able to parse 303 pattern data: /steps/0/note: value must be one of ...",
		},
		{
			"root location omitted",
			&SchemaMismatchError{Device: "303", Location: "/", Reason: "expected object"},
			"not able to parse 303 pattern data: expected object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("SchemaMismatchError.Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !(&SchemaMismatchError{}).Unrecognized() {
		t.Error("Unrecognized() = false for empty device, want true")
	}
}

func TestSchemaMismatchError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &SchemaMismatchError{Device: "303", Cause: cause}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestDefectError_Error(t *testing.T) {
	err := &DefectError{What: "knob constant", Cause: fmt.Errorf("out of range")}
	if got, want := err.Error(), "pscore: internal defect: knob constant: out of range"; got != want {
		t.Errorf("DefectError.Error() = %q, want %q", got, want)
	}
}

func TestAnnotate(t *testing.T) {
	base := &ValidationError{Type: "Note", Field: "note", Reason: "bad"}

	tests := []struct {
		name      string
		err       error
		field     string
		wantField string
	}{
		{"nested field", base, "steps[2]", "steps[2].note"},
		{"index child", &ValidationError{Field: "[1]", Reason: "bad"}, "steps", "steps[1]"},
		{"empty child", &ValidationError{Reason: "bad"}, "title", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Annotate(tt.err, tt.field)
			var ve *ValidationError
			if !stderrors.As(got, &ve) {
				t.Fatalf("Annotate() = %T, want *ValidationError", got)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}

	if base.Field != "note" {
		t.Errorf("Annotate mutated its input: Field = %q", base.Field)
	}

	inv := &InvariantError{Rule: "max-steps", Reason: "too many"}
	if got := Annotate(inv, "steps"); got != error(inv) {
		t.Errorf("Annotate() changed a non-validation error: %v", got)
	}

	if Annotate(nil, "x") != nil {
		t.Error("Annotate(nil) != nil")
	}
}

func TestAnnotate_Combined(t *testing.T) {
	err := multierr.Combine(
		&ValidationError{Field: "title", Reason: "a"},
		&ValidationError{Field: "author", Reason: "b"},
	)
	got := multierr.Errors(Annotate(err, "request"))
	if len(got) != 2 {
		t.Fatalf("len(errors) = %d, want 2", len(got))
	}
	if got[0].Error() != "request.title: a" || got[1].Error() != "request.author: b" {
		t.Errorf("Annotate() = %v", got)
	}
}

func TestIsRecoverableAndKind(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
		kind        string
	}{
		{"nil", nil, false, ""},
		{"scalar", &ValidationError{Reason: "x"}, true, "scalar"},
		{"schema", &SchemaMismatchError{}, true, "schema"},
		{"invariant", &InvariantError{Reason: "x"}, true, "invariant"},
		{"wrapped scalar", fmt.Errorf("ctx: %w", &ValidationError{Reason: "x"}), true, "scalar"},
		{"plain", fmt.Errorf("plain"), false, "other"},
		{
			"combined",
			multierr.Combine(&ValidationError{Reason: "x"}, &InvariantError{Reason: "y"}),
			true,
			"scalar",
		},
		{
			"combined with plain",
			multierr.Combine(&InvariantError{Reason: "y"}, fmt.Errorf("plain")),
			false,
			"invariant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.recoverable {
				t.Errorf("IsRecoverable() = %v, want %v", got, tt.recoverable)
			}
			if got := Kind(tt.err); got != tt.kind {
				t.Errorf("Kind() = %q, want %q", got, tt.kind)
			}
		})
	}
}
