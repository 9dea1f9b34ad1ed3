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

package user_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/user"
)

func TestNew(t *testing.T) {
	u, err := user.New(user.SignUp{UserName: "  Hardfloor ", Email: "hf@example.com", Password: "AcidHouse@303"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if u.UserName().Value() != "hardfloor" {
		t.Errorf("UserName() = %q, want normalized %q", u.UserName().Value(), "hardfloor")
	}
	if u.Password().Expose() != "AcidHouse@303" {
		t.Error("Password() lost the plaintext")
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if strings.Contains(u.Redacted(), "AcidHouse") || strings.Contains(u.Redacted(), "hf@") {
		t.Errorf("Redacted() leaks credentials: %q", u.Redacted())
	}
	if strings.Contains(u.String(), "AcidHouse") {
		t.Errorf("String() leaks the password: %q", u.String())
	}
}

func TestNew_FirstFieldWins(t *testing.T) {
	tests := []struct {
		name      string
		req       user.SignUp
		wantField string
	}{
		{"all bad", user.SignUp{UserName: "a", Email: "nope", Password: "weak"}, "username"},
		{"email and password bad", user.SignUp{UserName: "acid", Email: "nope", Password: "weak"}, "email"},
		{"password bad", user.SignUp{UserName: "acid", Email: "a@example.com", Password: "acidhouse@303"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := user.New(tt.req)
			var ve *errors.ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("New() error = %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if len(multierr.Errors(err)) != 1 {
				t.Errorf("fail-fast returned %d errors", len(multierr.Errors(err)))
			}
		})
	}
}

func TestNew_CollectAll(t *testing.T) {
	_, err := user.New(user.SignUp{UserName: "a", Email: "nope", Password: "weak"}, user.WithMode(model.CollectAll))
	if n := len(multierr.Errors(err)); n != 3 {
		t.Fatalf("len(errors) = %d, want 3", n)
	}
	if strings.Contains(err.Error(), "weak") {
		t.Errorf("error leaks the password: %q", err)
	}
}

func TestNewPasswordChange(t *testing.T) {
	tests := []struct {
		name     string
		req      user.PasswordChangeRequest
		wantRule string
		wantErr  bool
	}{
		{"match", user.PasswordChangeRequest{Password: "AcidHouse@303", PasswordAgain: "AcidHouse@303"}, "", false},
		{"mismatch", user.PasswordChangeRequest{Password: "AcidHouse@303", PasswordAgain: "AcidHouse@909"}, user.RulePasswordsMatch, true},
		{"weak and mismatched", user.PasswordChangeRequest{Password: "weak", PasswordAgain: "other"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := user.NewPasswordChange(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPasswordChange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if p.Password().Expose() != tt.req.Password {
					t.Error("Password() lost the plaintext")
				}
				return
			}
			var ie *errors.InvariantError
			isInvariant := stderrors.As(err, &ie)
			if tt.wantRule == "" && isInvariant {
				t.Errorf("field error expected before the invariant, got %v", err)
			}
			if tt.wantRule != "" && (!isInvariant || ie.Rule != tt.wantRule) {
				t.Errorf("error = %v, want rule %q", err, tt.wantRule)
			}
		})
	}
}

func TestNewPasswordReset(t *testing.T) {
	p, err := user.NewPasswordReset(user.PasswordResetRequest{Email: " acid@example.com "})
	if err != nil {
		t.Fatalf("NewPasswordReset() error = %v", err)
	}
	if p.Email().Value() != "acid@example.com" {
		t.Errorf("Email() = %q", p.Email().Value())
	}
	if p.Redacted() != "PasswordReset{Email:a***@example.com}" {
		t.Errorf("Redacted() = %q", p.Redacted())
	}

	_, err = user.NewPasswordReset(user.PasswordResetRequest{Email: "nope"})
	var ve *errors.ValidationError
	if !stderrors.As(err, &ve) || ve.Field != "email" {
		t.Errorf("NewPasswordReset(nope) error = %v", err)
	}
}
