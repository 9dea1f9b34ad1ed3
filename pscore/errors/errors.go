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

// Package errors provides the error taxonomy shared by every pscore package.
//
// Validation of untrusted input fails in one of three recoverable ways, each
// with its own carrier type:
//
//   - ValidationError
//     One field, one violated constraint. Returned by every ParseXxx
//     factory of a validated scalar and by the step constructors. The
//     message names the offending raw value and the expected range or set.
//
//   - SchemaMismatchError
//     The device is not recognized, or a JSON body does not fit the step
//     schema registered for the declared device.
//
//   - InvariantError
//     A rule spanning several already-valid fields is violated (for
//     example, a pattern with more than sixteen steps).
//
// The remaining carriers (ParseError, MarshalError, UnmarshalError) guard
// the textual and serialized forms of enum-like types, and DefectError is
// the panic value used when a built-in constant fails its own validator.
//
// All carriers are plain value structs with stable message formats. Callers
// recognize them with errors.As; IsRecoverable classifies a (possibly
// combined) error in a single call.
package errors

import (
	stderrors "errors"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// ParseError is returned when parsing a string into an enum-like value fails.
//
// Type identifies the logical type being parsed (for example, "Device" or
// "Mode") and Value contains the exact string that could not be interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed.
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"pscore: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "pscore: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because it
// lies outside the set of valid constants. It almost always indicates a zero
// or forged value that never went through its ParseXxx factory.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"pscore: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "pscore: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Data holds the raw input. It is deliberately left out of Error(); callers
// decide whether it is safe to log.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"pscore: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "pscore: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError reports a single field that violated a single constraint.
//
// Type is the validated scalar type (for example, "Knob"), Field is the
// dotted/indexed path of the field inside the request being built (for
// example, "steps[3].note"; empty when the scalar is parsed on its own),
// Reason is the client-facing explanation and Value is the raw input when it
// is safe to carry. Password validation leaves Value nil.
//
// # Example
//
//	return &errors.ValidationError{
//	    Type:   "Knob",
//	    Reason: "400 is not a valid knob value; expected an integer between 0 and 360",
//	    Value:  400,
//	}
type ValidationError struct {
	// Type is the logical name of the scalar being validated.
	Type string

	// Field is the path of the field inside the enclosing request.
	// May be empty when the scalar was parsed standalone.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid raw value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"{Field}: {Reason}" (when Field is specified)
//	"{Reason}"          (when Field is empty)
//
// The message is meant to be returned to the client unchanged.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Reason
	}
	return e.Reason
}

// SchemaMismatchError is returned by the device codec when a JSON body does
// not fit the step schema registered for its device, or when the device has
// no schema at all.
type SchemaMismatchError struct {
	// Device is the short device label used in messages (for example, "303").
	// Empty when the device itself was not recognized.
	Device string

	// Revision is the schema revision the body was checked against.
	Revision string

	// Location is the field path of the deepest failing element (for
	// example, "steps[3].note"). Empty when the body as a whole is at fault.
	Location string

	// Reason is an optional detail appended to the message.
	Reason string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface for SchemaMismatchError.
//
// The error message format is:
//
//	"device is not recognized"                                (no Device)
//	"not able to parse {Device} pattern data"                 (no Reason)
//	"not able to parse {Device} pattern data: {Location}: {Reason}"
func (e *SchemaMismatchError) Error() string {
	if e.Device == "" {
		return "device is not recognized"
	}
	msg := "not able to parse " + e.Device + " pattern data"
	if e.Reason == "" {
		return msg
	}
	if e.Location != "" && e.Location != "/" {
		return msg + ": " + e.Location + ": " + e.Reason
	}
	return msg + ": " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *SchemaMismatchError) Unwrap() error {
	return e.Cause
}

// Unrecognized reports whether the failure is due to the device having no
// registered schema, independently of the payload.
func (e *SchemaMismatchError) Unrecognized() bool {
	return e.Device == ""
}

// InvariantError reports a violated rule that spans several fields which are
// individually valid.
type InvariantError struct {
	// Rule is a stable identifier of the violated rule (for example,
	// "max-steps").
	Rule string

	// Reason is the client-facing explanation.
	Reason string
}

// Error implements the error interface for InvariantError.
func (e *InvariantError) Error() string {
	return e.Reason
}

// DefectError is the panic value raised when the program violates one of its
// own invariants, such as a built-in constant failing its own validator. It
// is never returned as an ordinary error.
type DefectError struct {
	// What names the broken invariant.
	What string

	// Cause is the error that exposed the defect, if any.
	Cause error
}

// Error implements the error interface for DefectError.
func (e *DefectError) Error() string {
	if e.Cause != nil {
		return "pscore: internal defect: " + e.What + ": " + e.Cause.Error()
	}
	return "pscore: internal defect: " + e.What
}

// Unwrap returns the underlying cause.
func (e *DefectError) Unwrap() error {
	return e.Cause
}

// Annotate prefixes the field path of every ValidationError inside err with
// field. Parent paths are joined with "." unless the child path starts with
// an index. Errors of any other kind are returned unchanged.
//
// Annotate copies the ValidationError it rewrites, so errors returned by
// shared helpers are never mutated.
func Annotate(err error, field string) error {
	if err == nil || field == "" {
		return err
	}

	errs := multierr.Errors(err)
	if len(errs) > 1 {
		out := make([]error, 0, len(errs))
		for _, e := range errs {
			out = append(out, Annotate(e, field))
		}
		return multierr.Combine(out...)
	}

	var ve *ValidationError
	if !stderrors.As(err, &ve) {
		return err
	}
	annotated := *ve
	annotated.Field = joinPath(field, ve.Field)
	return &annotated
}

func joinPath(parent, child string) string {
	switch {
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}

// IsRecoverable reports whether every error contained in err is one of the
// client-facing kinds: ValidationError, SchemaMismatchError or
// InvariantError. It returns false for nil.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	for _, e := range multierr.Errors(err) {
		var (
			ve *ValidationError
			se *SchemaMismatchError
			ie *InvariantError
		)
		if !stderrors.As(e, &ve) && !stderrors.As(e, &se) && !stderrors.As(e, &ie) {
			return false
		}
	}
	return true
}

// Kind returns a short label for the first error contained in err: "scalar",
// "schema", "invariant" or "other". It returns "" for nil.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	first := multierr.Errors(err)[0]
	var (
		ve *ValidationError
		se *SchemaMismatchError
		ie *InvariantError
	)
	switch {
	case stderrors.As(first, &ve):
		return "scalar"
	case stderrors.As(first, &se):
		return "schema"
	case stderrors.As(first, &ie):
		return "invariant"
	default:
		return "other"
	}
}
