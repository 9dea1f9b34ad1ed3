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

package codec

import (
	"bytes"
	"embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/device"
	"patternsaver.dev/patterns/pscore/model/revision"
	"patternsaver.dev/patterns/pscore/model/step"
	"patternsaver.dev/patterns/pscore/model/tb303"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const schemaBaseURL = "https://patternsaver.dev/schemas/"

// definition ties a JSON Schema document to the body shape and step
// constructors of one (device, revision) pair.
type definition struct {
	device   device.Device
	revision string
	file     string
	build    builder
}

// builder strictly decodes a body already accepted by the schema document
// and runs every step through its aggregate constructor.
type builder func(raw []byte) (steps, error)

// steps holds the typed steps of a proven body. Exactly one slice is set,
// according to the device.
type steps struct {
	tb303 []step.TB303
	tr909 []step.TR909
}

func (s steps) len() int {
	return len(s.tb303) + len(s.tr909)
}

var definitions = []definition{
	{device.TB303, "1.0.0", "tb303-1.json", buildTB303Legacy},
	{device.TB303, "2.0.0", "tb303-2.json", buildTB303},
	{device.TR909, "1.0.0", "tr909-1.json", buildTR909},
}

// Schema is a compiled step schema for one (device, revision) pair.
type Schema struct {
	device   device.Device
	revision revision.Revision
	compiled *jsonschema.Schema
	build    builder
}

// Device returns the device the schema describes.
func (s *Schema) Device() device.Device {
	return s.device
}

// Revision returns the schema revision.
func (s *Schema) Revision() revision.Revision {
	return s.revision
}

// check validates raw against the schema document and then builds every
// step through its constructor.
func (s *Schema) check(raw []byte) (steps, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return steps{}, s.mismatch("", "invalid JSON: "+err.Error(), err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return steps{}, s.mismatch("", "invalid JSON: unexpected data after the top-level value", nil)
	}

	if err := s.compiled.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := ve
			for len(leaf.Causes) > 0 {
				leaf = leaf.Causes[0]
			}
			return steps{}, s.mismatch(pointerToPath(leaf.InstanceLocation), leaf.Message, err)
		}
		return steps{}, s.mismatch("", err.Error(), err)
	}

	built, err := s.build(raw)
	if err != nil {
		var ve *errors.ValidationError
		if stderrors.As(err, &ve) {
			return steps{}, s.mismatch(ve.Field, ve.Reason, err)
		}
		return steps{}, s.mismatch("", err.Error(), err)
	}
	return built, nil
}

func (s *Schema) mismatch(location, reason string, cause error) *errors.SchemaMismatchError {
	return &errors.SchemaMismatchError{
		Device:   s.device.Label(),
		Revision: s.revision.String(),
		Location: location,
		Reason:   reason,
		Cause:    cause,
	}
}

func compileDefinitions() (map[key]*Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7

	out := make(map[key]*Schema, len(definitions))
	for _, d := range definitions {
		data, err := schemaFiles.ReadFile("schemas/" + d.file)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", d.file, err)
		}
		url := schemaBaseURL + d.file
		if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", d.file, err)
		}
		compiled, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", d.file, err)
		}
		rev, err := revision.Parse(d.revision)
		if err != nil {
			return nil, err
		}
		out[key{d.device, rev.String()}] = &Schema{
			device:   d.device,
			revision: rev,
			compiled: compiled,
			build:    d.build,
		}
	}
	return out, nil
}

type tb303LegacyBody struct {
	Length int                     `json:"length"`
	Steps  []step.TB303LegacyShape `json:"steps"`
}

type tb303Body struct {
	Length int               `json:"length"`
	Steps  []step.TB303Shape `json:"steps"`
}

type tr909Body struct {
	Length int               `json:"length"`
	Steps  []step.TR909Shape `json:"steps"`
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// buildTB303Legacy upgrades every revision 1 step to the numbered form,
// numbering steps by position.
func buildTB303Legacy(raw []byte) (steps, error) {
	var body tb303LegacyBody
	if err := decodeStrict(raw, &body); err != nil {
		return steps{}, err
	}
	out := make([]step.TB303, 0, len(body.Steps))
	for i, shape := range body.Steps {
		field := "steps[" + strconv.Itoa(i) + "]"
		legacy, err := step.NewTB303Legacy(shape, model.FailFast)
		if err != nil {
			return steps{}, errors.Annotate(err, field)
		}
		number, err := tb303.ParseStepNumber(i + 1)
		if err != nil {
			return steps{}, errors.Annotate(err, field)
		}
		out = append(out, legacy.Upgrade(number))
	}
	return steps{tb303: out}, nil
}

func buildTB303(raw []byte) (steps, error) {
	var body tb303Body
	if err := decodeStrict(raw, &body); err != nil {
		return steps{}, err
	}
	out := make([]step.TB303, 0, len(body.Steps))
	for i, shape := range body.Steps {
		st, err := step.NewTB303(shape, model.FailFast)
		if err != nil {
			return steps{}, errors.Annotate(err, "steps["+strconv.Itoa(i)+"]")
		}
		out = append(out, st)
	}
	return steps{tb303: out}, nil
}

func buildTR909(raw []byte) (steps, error) {
	var body tr909Body
	if err := decodeStrict(raw, &body); err != nil {
		return steps{}, err
	}
	out := make([]step.TR909, 0, len(body.Steps))
	for _, shape := range body.Steps {
		out = append(out, step.NewTR909(shape))
	}
	return steps{tr909: out}, nil
}

// pointerToPath turns a JSON pointer such as "/steps/3/note" into the field
// path form used by validation errors, "steps[3].note".
func pointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	var b strings.Builder
	for _, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(tok); err == nil {
			b.WriteString("[" + tok + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}
