// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any username/password mismatch.
// Callers must not distinguish unknown users from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialChecker verifies the admin login against the configured
// credentials. The password is hashed at construction so the plaintext is
// not retained for the process lifetime.
type CredentialChecker struct {
	username     string
	passwordHash []byte
}

// NewCredentialChecker hashes the configured admin password with bcrypt.
func NewCredentialChecker(username, password string) (*CredentialChecker, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &CredentialChecker{
		username:     username,
		passwordHash: hash,
	}, nil
}

// Check verifies a login attempt. The username comparison is constant time
// and the password check always runs, so timing does not reveal which part
// failed.
func (c *CredentialChecker) Check(username, password string) error {
	usernameOK := subtle.ConstantTimeCompare([]byte(c.username), []byte(username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password))
	if !usernameOK || passwordErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
