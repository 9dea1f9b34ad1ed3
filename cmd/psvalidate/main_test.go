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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const drumPattern = `{"name":"Bunker","device":"TR909","data":{"length":1,"steps":[{"accent":false,"bd":true,"sd":false,"lt":false,"mt":false,"ht":false,"rs":false,"cp":false,"oh":false,"ch":true,"cr":false,"ri":false}]}}`

func runWith(t *testing.T, stdin string, env map[string]string, args ...string) (int, []verdict, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, envFrom(env))

	var out []verdict
	dec := json.NewDecoder(&stdout)
	for dec.More() {
		var v verdict
		if err := dec.Decode(&v); err != nil {
			t.Fatalf("decode verdict: %v", err)
		}
		out = append(out, v)
	}
	return code, out, stderr.String()
}

func TestRun_Kinds(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		stdin     string
		wantCode  int
		wantKind  string
		wantField string
	}{
		{"pattern accepted", "pattern", drumPattern, exitOK, "", ""},
		{"pattern for reserved device", "pattern", `{"name":"x","device":"TR808","data":{}}`, exitInvalid, "schema", ""},
		{"tb303 accepted", "tb303", `{"title":"Acid Tracks","steps":[{"number":1,"note":"C","time":"note"}]}`, exitOK, "", ""},
		{"tb303 bad knob", "tb303", `{"title":"Acid Tracks","resonance":400,"steps":[]}`, exitInvalid, "scalar", "resonance"},
		{"user accepted", "user", `{"username":"phuture","email":"acid@example.com","password":"AcidTracks@87"}`, exitOK, "", ""},
		{"user bad email", "user", `{"username":"phuture","email":"nope","password":"AcidTracks@87"}`, exitInvalid, "scalar", "email"},
		{"passwords differ", "password-change", `{"password":"AcidTracks@87","password_again":"AcidTracks@88"}`, exitInvalid, "invariant", ""},
		{"reset accepted", "password-reset", `{"email":"acid@example.com"}`, exitOK, "", ""},
		{"malformed input", "user", `{"username":`, exitInvalid, "other", ""},
		{"unknown input field", "password-reset", `{"email":"acid@example.com","admin":true}`, exitInvalid, "other", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, stderr := runWith(t, tt.stdin, nil, "-kind", tt.kind)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if len(out) != 1 {
				t.Fatalf("got %d verdicts, want 1", len(out))
			}
			v := out[0]
			if v.Input != "-" {
				t.Errorf("Input = %q, want stdin marker", v.Input)
			}
			if tt.wantCode == exitOK {
				if !v.Valid || v.Value == "" {
					t.Errorf("verdict = %+v, want a valid redacted value", v)
				}
				return
			}
			if v.Valid || len(v.Errors) == 0 {
				t.Fatalf("verdict = %+v, want errors", v)
			}
			if v.Errors[0].Kind != tt.wantKind {
				t.Errorf("Errors[0].Kind = %q, want %q", v.Errors[0].Kind, tt.wantKind)
			}
			if v.Errors[0].Field != tt.wantField {
				t.Errorf("Errors[0].Field = %q, want %q", v.Errors[0].Field, tt.wantField)
			}
		})
	}
}

func TestRun_NeverPrintsPassword(t *testing.T) {
	code, out, _ := runWith(t, `{"username":"phuture","email":"acid@example.com","password":"AcidTracks@87"}`, nil, "-kind", "user")
	if code != exitOK {
		t.Fatalf("run() = %d, want %d", code, exitOK)
	}
	if strings.Contains(out[0].Value, "AcidTracks") || strings.Contains(out[0].Value, "acid@example.com") {
		t.Errorf("Value leaks credentials: %q", out[0].Value)
	}
}

func TestRun_CanonicalOutput(t *testing.T) {
	_, out, _ := runWith(t, drumPattern, nil, "-kind", "pattern")
	want := `{"name":"Bunker","device":"TR909","revision":"1.0.0","data":{"length":1,"steps":[{"accent":false,"bd":true,"sd":false,"lt":false,"mt":false,"ht":false,"rs":false,"cp":false,"oh":false,"ch":true,"cr":false,"ri":false}]}}`
	if string(out[0].Canonical) != want {
		t.Errorf("Canonical = %s, want %s", out[0].Canonical, want)
	}

	_, out, _ = runWith(t, `{"title":"Acid Tracks","steps":[]}`, nil, "-kind", "tb303")
	if !strings.Contains(string(out[0].Canonical), `"cut_off_freq":0`) {
		t.Errorf("Canonical = %s, want absent knobs filled with defaults", out[0].Canonical)
	}

	_, out, _ = runWith(t, `{"username":"phuture","email":"acid@example.com","password":"AcidTracks@87"}`, nil, "-kind", "user")
	if len(out[0].Canonical) != 0 {
		t.Errorf("Canonical = %s, want none for a sign-up", out[0].Canonical)
	}
}

func TestRun_CollectAll(t *testing.T) {
	in := `{"username":"a","email":"nope","password":"weak"}`

	_, out, _ := runWith(t, in, nil, "-kind", "user")
	if len(out[0].Errors) != 1 {
		t.Errorf("fail-fast reported %d errors, want 1", len(out[0].Errors))
	}

	_, out, _ = runWith(t, in, map[string]string{envMode: "collect-all"}, "-kind", "user")
	if len(out[0].Errors) != 3 {
		t.Fatalf("collect-all reported %d errors, want 3", len(out[0].Errors))
	}
	for i, field := range []string{"username", "email", "password"} {
		if out[0].Errors[i].Field != field {
			t.Errorf("Errors[%d].Field = %q, want %q", i, out[0].Errors[i].Field, field)
		}
	}
}

func TestRun_FilesAndMetrics(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	metrics := filepath.Join(dir, "pscore.prom")
	if err := os.WriteFile(good, []byte(drumPattern), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{"name":"x","device":"SH101","data":{}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, _ := runWith(t, "", map[string]string{envMetricsFile: metrics}, good, bad)
	if code != exitInvalid {
		t.Errorf("run() = %d, want %d", code, exitInvalid)
	}
	if len(out) != 2 || out[0].Input != good || !out[0].Valid || out[1].Valid {
		t.Fatalf("verdicts = %+v", out)
	}

	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{
		`pscore_validations_total{aggregate="pattern",outcome="ok"} 1`,
		`pscore_validations_total{aggregate="pattern",outcome="scalar"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"unknown kind", []string{"-kind", "sequence"}, nil},
		{"unknown flag", []string{"-verbose"}, nil},
		{"bad env mode", nil, map[string]string{envMode: "sometimes"}},
		{"missing input file", []string{filepath.Join(os.TempDir(), "psvalidate-missing.json")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runWith(t, "", tt.env, tt.args...); code != exitUsage {
				t.Errorf("run() = %d, want %d", code, exitUsage)
			}
		})
	}
}
