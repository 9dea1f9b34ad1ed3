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

// Package user builds the account aggregates handed to the authentication
// layer: sign-up, password change and password reset requests.
//
// Passwords are validated here but never hashed; the aggregates expose the
// plaintext to the hashing collaborator through account.Password.Expose.
package user

import (
	"fmt"

	"patternsaver.dev/patterns/pscore/errors"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/account"
)

// RulePasswordsMatch identifies the repeated-password invariant.
const RulePasswordsMatch = "passwords-match"

// Option configures a builder call.
type Option func(*model.Mode)

// WithMode selects fail-fast or collect-all reporting.
func WithMode(m model.Mode) Option {
	return func(mode *model.Mode) {
		*mode = m
	}
}

func modeOf(opts []Option) model.Mode {
	mode := model.FailFast
	for _, opt := range opts {
		opt(&mode)
	}
	return mode
}

// SignUp is the user creation request.
type SignUp struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser is a validated sign-up, ready for hashing and storage.
type NewUser struct {
	userName account.UserName
	email    account.Email
	password account.Password
}

var _ model.Aggregate = (*NewUser)(nil)

// New validates req in the order username, email, password.
func New(req SignUp, opts ...Option) (NewUser, error) {
	c := model.NewCollector(modeOf(opts))
	var u NewUser
	var err error

	if u.userName, err = account.ParseUserName(req.UserName); c.Add("username", err) {
		return NewUser{}, c.Err()
	}
	if u.email, err = account.ParseEmail(req.Email); c.Add("email", err) {
		return NewUser{}, c.Err()
	}
	if u.password, err = account.ParsePassword(req.Password); c.Add("password", err) {
		return NewUser{}, c.Err()
	}
	if err := c.Err(); err != nil {
		return NewUser{}, err
	}
	return u, nil
}

func (u NewUser) UserName() account.UserName {
	return u.userName
}

func (u NewUser) Email() account.Email {
	return u.email
}

func (u NewUser) Password() account.Password {
	return u.password
}

func (u NewUser) Validate() error {
	if err := model.ValidateAll([]model.Model{&u.userName, &u.email}); err != nil {
		return err
	}
	return u.password.Validate()
}

// String renders the user name and full address. The password is always
// redacted.
func (u NewUser) String() string {
	return fmt.Sprintf("NewUser{UserName:%s, Email:%s, Password:%s}", u.userName, u.email, u.password)
}

func (u NewUser) Redacted() string {
	return fmt.Sprintf("NewUser{UserName:%s, Email:%s, Password:%s}", u.userName, u.email.Redacted(), u.password.Redacted())
}

func (u NewUser) TypeName() string {
	return "NewUser"
}

func (u NewUser) IsZero() bool {
	return u.userName.IsZero() && u.email.IsZero() && u.password.IsZero()
}

// PasswordChangeRequest carries a new password typed twice.
type PasswordChangeRequest struct {
	Password      string `json:"password"`
	PasswordAgain string `json:"password_again"`
}

// PasswordChange is a validated new password.
type PasswordChange struct {
	password account.Password
}

var _ model.Aggregate = (*PasswordChange)(nil)

// NewPasswordChange validates the password and then checks that the
// repeated entry matches it. The repeated entry is not validated on its
// own: a mismatch is reported as the invariant violation.
func NewPasswordChange(req PasswordChangeRequest, opts ...Option) (PasswordChange, error) {
	c := model.NewCollector(modeOf(opts))

	password, err := account.ParsePassword(req.Password)
	if c.Add("password", err) {
		return PasswordChange{}, c.Err()
	}
	if err := c.Err(); err != nil {
		return PasswordChange{}, err
	}
	if req.PasswordAgain != req.Password {
		return PasswordChange{}, &errors.InvariantError{
			Rule:   RulePasswordsMatch,
			Reason: "passwords do not match",
		}
	}
	return PasswordChange{password: password}, nil
}

func (p PasswordChange) Password() account.Password {
	return p.password
}

func (p PasswordChange) Validate() error {
	return p.password.Validate()
}

func (p PasswordChange) String() string {
	return "PasswordChange{Password:" + p.password.String() + "}"
}

func (p PasswordChange) Redacted() string {
	return p.String()
}

func (p PasswordChange) TypeName() string {
	return "PasswordChange"
}

func (p PasswordChange) IsZero() bool {
	return p.password.IsZero()
}

// PasswordResetRequest asks for a reset link for an address.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordReset is a validated reset request.
type PasswordReset struct {
	email account.Email
}

var _ model.Aggregate = (*PasswordReset)(nil)

// NewPasswordReset validates the address.
func NewPasswordReset(req PasswordResetRequest) (PasswordReset, error) {
	email, err := account.ParseEmail(req.Email)
	if err != nil {
		return PasswordReset{}, errors.Annotate(err, "email")
	}
	return PasswordReset{email: email}, nil
}

func (p PasswordReset) Email() account.Email {
	return p.email
}

func (p PasswordReset) Validate() error {
	return p.email.Validate()
}

func (p PasswordReset) String() string {
	return "PasswordReset{Email:" + p.email.String() + "}"
}

func (p PasswordReset) Redacted() string {
	return "PasswordReset{Email:" + p.email.Redacted() + "}"
}

func (p PasswordReset) TypeName() string {
	return "PasswordReset"
}

func (p PasswordReset) IsZero() bool {
	return p.email.IsZero()
}
