// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

type ErrRouteNotFound struct {
	RouteID string
}

func (e *ErrRouteNotFound) Error() string {
	return fmt.Sprintf("route %s not found", e.RouteID)
}

func NewRouteNotFound(id string) error {
	return &ErrRouteNotFound{RouteID: id}
}

type ErrContentNotFound struct {
	ContentID string
}

func (e *ErrContentNotFound) Error() string {
	return fmt.Sprintf("content %s not found", e.ContentID)
}

func NewContentNotFound(id string) error {
	return &ErrContentNotFound{ContentID: id}
}

type ErrInstanceNotFound struct {
	InstanceID string
}

func (e *ErrInstanceNotFound) Error() string {
	return fmt.Sprintf("instance %s not found", e.InstanceID)
}

func NewInstanceNotFound(id string) error {
	return &ErrInstanceNotFound{InstanceID: id}
}

// ErrNotAuthorized means the caller-supplied principal does not match the
// stored owner. Deliberately generic: callers never learn the stored owner.
type ErrNotAuthorized struct{}

func (e *ErrNotAuthorized) Error() string {
	return "not authorized"
}

func NewNotAuthorized() error {
	return &ErrNotAuthorized{}
}

// ErrValidation covers missing or malformed request fields.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

func NewValidation(msg string) error {
	return &ErrValidation{Message: msg}
}

// DispatchError wraps a failed outbound send to OpenChat.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed: %v", e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func NewDispatch(err error) error {
	return &DispatchError{Err: err}
}
