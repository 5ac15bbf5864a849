// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	stderrors "errors"
	"fmt"

	apperrors "portal/cli/internal/errors"
)

// PresentError formats the failure of action for verbose output, masking secrets.
// A server error also shows what the API answered, since that is usually where the
// reason for a 4xx is spelled out.
func PresentError(action string, err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: %s", action, Mask(err.Error()))

	var e *apperrors.E
	if stderrors.As(err, &e) && e.Kind == apperrors.ServerError && e.Body != "" {
		msg += fmt.Sprintf("\n  response: %s", Mask(e.Body))
	}
	return msg
}
