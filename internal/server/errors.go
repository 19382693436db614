// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/pdf"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/schemas"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrResumeNotFound indicates a resume does not exist or is not visible to the caller
type ErrResumeNotFound struct {
	Ref string
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.Ref)
}

// ErrTemplateNotFound indicates a template does not exist
type ErrTemplateNotFound struct {
	TemplateID uuid.UUID
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template not found: %s", e.TemplateID)
}

// ErrTemplateNameTaken indicates another template already uses the name
type ErrTemplateNameTaken struct {
	Name string
}

func (e *ErrTemplateNameTaken) Error() string {
	return fmt.Sprintf("template name already exists: %s", e.Name)
}

// ErrForbidden indicates the caller does not own the resource
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "not authorized to access this resource"
}

// ErrAdminRequired indicates an admin-only endpoint was called by a regular user
type ErrAdminRequired struct{}

func (e *ErrAdminRequired) Error() string {
	return "admin access required"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedUpload indicates an upload of the wrong type or size
type ErrUnsupportedUpload struct {
	Reason string
}

func (e *ErrUnsupportedUpload) Error() string {
	return "unsupported upload: " + e.Reason
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		invalidCreds *ErrInvalidCredentials
		userNF       *ErrUserNotFound
		resumeNF     *ErrResumeNotFound
		templateNF   *ErrTemplateNotFound
		nameTaken    *ErrTemplateNameTaken
		forbidden    *ErrForbidden
		adminReq     *ErrAdminRequired
		validation   *ErrValidation
		upload       *ErrUnsupportedUpload
		schemaErr    *schemas.ValidationError
		pdfErr       *pdf.RenderError
	)
	switch {
	case errors.As(err, &emailExists), errors.As(err, &nameTaken):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden), errors.As(err, &adminReq):
		return http.StatusForbidden
	case errors.As(err, &userNF), errors.As(err, &resumeNF), errors.As(err, &templateNF):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &upload), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &pdfErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
