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

// Package revision identifies revisions of a device step schema.
//
// Every (device, revision) pair names exactly one JSON body shape. Revisions
// follow Semantic Versioning 2.0.0: a new major revision is an incompatible
// shape, while minor and patch revisions only tighten or document an
// existing one. Parsing and ordering delegate to github.com/blang/semver/v4.
package revision

import (
	"encoding/json"
	"fmt"
	"strings"

	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
)

// Revision is a schema revision such as 1.0.0 or 2.0.0.
//
// The zero Revision is invalid; obtain values through Parse or MustParse.
type Revision struct {
	v   bsemver.Version
	set bool
}

var _ model.Model = (*Revision)(nil)

// Parse parses a revision string. A leading "v" is accepted and dropped.
// Pre-release and build metadata are rejected: schema revisions are
// released shapes only.
func Parse(s string) (Revision, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")

	bv, err := bsemver.Parse(raw)
	if err != nil {
		return Revision{}, &errors.ValidationError{
			Type:   "Revision",
			Reason: fmt.Sprintf("%q is not a valid schema revision: %v", s, err),
			Value:  s,
		}
	}
	if len(bv.Pre) > 0 || len(bv.Build) > 0 {
		return Revision{}, &errors.ValidationError{
			Type:   "Revision",
			Reason: fmt.Sprintf("%q is not a valid schema revision: pre-release and build metadata are not allowed", s),
			Value:  s,
		}
	}

	return Revision{v: bv, set: true}, nil
}

// MustParse is like Parse but panics with a *errors.DefectError on failure.
// Use it for built-in revision constants only.
func MustParse(s string) Revision {
	return model.MustParse("revision "+s, s, Parse)
}

// Major returns the major component, which selects the body shape family.
func (r Revision) Major() uint64 {
	return r.v.Major
}

// String returns the canonical "MAJOR.MINOR.PATCH" form.
func (r Revision) String() string {
	if !r.set {
		return ""
	}
	return r.v.String()
}

func (r Revision) Redacted() string {
	return r.String()
}

func (r Revision) TypeName() string {
	return "Revision"
}

func (r Revision) IsZero() bool {
	return !r.set
}

func (r Revision) Validate() error {
	if !r.set {
		return &errors.ValidationError{Type: "Revision", Reason: "schema revision must not be empty"}
	}
	return nil
}

// Compare returns -1, 0 or +1 following semantic version precedence.
func (r Revision) Compare(other Revision) int {
	return r.v.Compare(other.v)
}

func (r Revision) Less(other Revision) bool {
	return r.Compare(other) < 0
}

func (r Revision) Equal(other Revision) bool {
	return r.set == other.set && r.Compare(other) == 0
}

func (r Revision) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(r.String())
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Revision", Data: data, Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Revision) MarshalYAML() (any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r.String(), nil
}

func (r *Revision) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Revision", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Revision) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

func (r *Revision) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
