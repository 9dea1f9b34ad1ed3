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

// Command psvalidate validates pattern and account payloads read from files
// or stdin and prints one JSON verdict per input.
//
//	psvalidate -kind tb303 pattern.json
//	cat signup.json | psvalidate -kind user
//
// Exit status is 0 when every input is valid, 1 when at least one input is
// rejected, and 2 on usage, configuration or I/O errors.
package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"patternsaver.dev/patterns/pscore/codec"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/pattern"
	"patternsaver.dev/patterns/pscore/model/user"
	"patternsaver.dev/patterns/pscore/observe"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

type env struct {
	mode  model.Mode
	codec *codec.Codec
}

type builder func(e env, data []byte) (model.Loggable, error)

var builders = map[string]builder{
	"pattern": func(e env, data []byte) (model.Loggable, error) {
		var req pattern.Request
		if err := decodeInput(data, &req); err != nil {
			return nil, err
		}
		return pattern.New(req, pattern.WithMode(e.mode), pattern.WithCodec(e.codec))
	},
	"tb303": func(e env, data []byte) (model.Loggable, error) {
		var req pattern.TB303Request
		if err := decodeInput(data, &req); err != nil {
			return nil, err
		}
		return pattern.NewTB303(req, pattern.WithMode(e.mode))
	},
	"user": func(e env, data []byte) (model.Loggable, error) {
		var req user.SignUp
		if err := decodeInput(data, &req); err != nil {
			return nil, err
		}
		return user.New(req, user.WithMode(e.mode))
	},
	"password-change": func(e env, data []byte) (model.Loggable, error) {
		var req user.PasswordChangeRequest
		if err := decodeInput(data, &req); err != nil {
			return nil, err
		}
		return user.NewPasswordChange(req, user.WithMode(e.mode))
	},
	"password-reset": func(_ env, data []byte) (model.Loggable, error) {
		var req user.PasswordResetRequest
		if err := decodeInput(data, &req); err != nil {
			return nil, err
		}
		return user.NewPasswordReset(req)
	},
}

func kinds() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func decodeInput(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

type failure struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// verdict is printed once per input. Canonical is set for accepted
// patterns only; credentials never leave the process in any form but their
// redacted one.
type verdict struct {
	Input     string          `json:"input"`
	Valid     bool            `json:"valid"`
	Value     string          `json:"value,omitempty"`
	Canonical json.RawMessage `json:"canonical,omitempty"`
	Errors    []failure       `json:"errors,omitempty"`
}

func failures(err error) []failure {
	errs := multierr.Errors(err)
	out := make([]failure, 0, len(errs))
	for _, e := range errs {
		f := failure{Kind: errors.Kind(e), Message: e.Error()}
		var (
			ve *errors.ValidationError
			se *errors.SchemaMismatchError
		)
		switch {
		case stderrors.As(e, &ve):
			f.Field = ve.Field
		case stderrors.As(e, &se):
			f.Field = se.Location
		}
		out = append(out, f)
	}
	return out
}

type input struct {
	name string
	data []byte
}

func readInputs(paths []string, stdin io.Reader) ([]input, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []input{{name: "-", data: data}}, nil
	}
	out := make([]input, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		out = append(out, input{name: p, data: data})
	}
	return out, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("psvalidate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	kind := fs.String("kind", "pattern", "input kind: "+strings.Join(kinds(), ", "))
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	build, ok := builders[*kind]
	if !ok {
		fmt.Fprintf(stderr, "unknown kind %q; expected one of %s\n", *kind, strings.Join(kinds(), ", "))
		return exitUsage
	}

	cfg, err := loadConfig(*configPath, getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	cdc, err := cfg.newCodec()
	if err != nil {
		fmt.Fprintf(stderr, "configure codec: %v\n", err)
		return exitUsage
	}
	log, err := observe.NewLogger(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(stderr, "init logger: %v\n", err)
		return exitUsage
	}
	defer log.Sync()

	inputs, err := readInputs(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	metrics := observe.NewMetrics()
	rec := observe.NewRecorder(log.With("mode", cfg.Mode.String()), metrics)
	e := env{mode: cfg.Mode, codec: cdc}
	enc := json.NewEncoder(stdout)

	status := exitOK
	for _, in := range inputs {
		v, err := observe.Observe(rec, *kind, func() (model.Loggable, error) {
			return build(e, in.data)
		})
		out := verdict{Input: in.name, Valid: err == nil}
		if err != nil {
			out.Errors = failures(err)
			status = exitInvalid
		} else {
			out.Value = v.Redacted()
			if c, ok := v.(model.Canonical); ok {
				data, err := model.ToJSON(c)
				if err != nil {
					fmt.Fprintf(stderr, "encode %s: %v\n", in.name, err)
					return exitUsage
				}
				out.Canonical = data
			}
		}
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "write verdict: %v\n", err)
			return exitUsage
		}
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			fmt.Fprintf(stderr, "write metrics: %v\n", err)
			return exitUsage
		}
	}
	return status
}
