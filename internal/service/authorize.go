package service

import (
	appErrors "github.com/openwave/chatcast-backend/internal/errors"
)

// authorize allows a mutation only when the caller-supplied principal exactly
// equals the stored owner. Plain string equality, no session binding: this is
// the trust model of the whole system.
func authorize(owner, principal string) error {
	if principal == "" || owner != principal {
		return appErrors.NewNotAuthorized()
	}
	return nil
}
