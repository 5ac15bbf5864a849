// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"github.com/go-playground/validator/v10"

	"portal/cli/internal/backend"
	apperrors "portal/cli/internal/errors"
)

var validate = validator.New()

// Credentials is what the user types on the sign-in form. It is never persisted.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Validate checks that both fields are filled in.
func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperrors.Wrap(apperrors.InvalidInput, "username and password are required", err)
	}
	return nil
}

func (c Credentials) wire() backend.Credentials {
	return backend.Credentials{Username: c.Username, Password: c.Password}
}
