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

// Package pattern builds pattern aggregates from creation requests.
//
// Two request shapes exist. A generic Request carries a name, a device tag
// and an opaque JSON body; the body is proven by the device codec and kept
// verbatim. A TB303Request is fully typed: every field, including each
// step, is validated into a scalar and the result is a TB303Pattern.
//
// Builders validate fields in declaration order. By default the first
// failing field ends the build and its error is returned alone; WithMode
// (model.CollectAll) reports every failing field instead, first field first.
// Cross-field invariants are checked only once every field has passed.
package pattern

import (
	"patternsaver.dev/patterns/pscore/codec"
	"patternsaver.dev/patterns/pscore/model"
)

// Option configures a builder call.
type Option func(*options)

type options struct {
	mode  model.Mode
	codec *codec.Codec
}

func newOptions(opts []Option) options {
	o := options{mode: model.FailFast, codec: codec.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMode selects fail-fast or collect-all reporting.
func WithMode(m model.Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithCodec selects the codec used for generic pattern bodies. A nil codec
// leaves the default in place.
func WithCodec(c *codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}
