package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/groupe-sii/lumext/internal/common"
)

// DomainError is a failure that carries the HTTP status and the message the
// backend reports for it.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) error {
	return &DomainError{Code: "BAD_REQUEST", Message: message, HTTPStatus: http.StatusBadRequest, Err: common.ErrorValidation}
}

func NewNotFound() error {
	return &DomainError{Code: "NOT_FOUND", Message: "Not found", HTTPStatus: http.StatusNotFound, Err: common.ErrorNotFound}
}

func NewUnauthorized(message string) error {
	return &DomainError{Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized, Err: common.ErrorUnauthorized}
}

func NewForbidden(message string) error {
	return &DomainError{Code: "FORBIDDEN", Message: message, HTTPStatus: http.StatusForbidden, Err: common.ErrorForbidden}
}

func NewInternalError(err error) error {
	return &DomainError{Code: "INTERNAL_ERROR", Message: "Server side issue.", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// ToDomainError converts any error to a DomainError. Bare repository
// sentinels keep their meaning; everything else is internal.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}

	var out error
	switch {
	case errors.Is(err, common.ErrorNotFound):
		out = NewNotFound()
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		out = NewUnauthorized("Invalid session token.")
	case errors.Is(err, common.ErrorForbidden):
		out = NewForbidden("Access denied.")
	default:
		out = NewInternalError(err)
	}
	return out.(*DomainError)
}
