package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/nfrund/issuedesk/internal/domain"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// EstablishSessionRequest is the identity the external login flow hands over,
// as carried by the hand-off token claims.
type EstablishSessionRequest struct {
	Roll       string `json:"roll" validate:"omitempty,alphanum,max=32"`
	Name       string `json:"name" validate:"max=200"`
	Department string `json:"department" validate:"max=200"`
	Degree     string `json:"degree" validate:"max=100"`
	LastLogin  string `json:"lastLogin" validate:"max=64"`
	IsGuest    bool   `json:"isGuest"`
	IsAdmin    bool   `json:"isAdmin"`
}

// EstablishSessionRequestFromRecord wraps verified token claims for validation.
func EstablishSessionRequestFromRecord(rec domain.IdentityRecord) EstablishSessionRequest {
	return EstablishSessionRequest{
		Roll:       rec.Roll,
		Name:       rec.Name,
		Department: rec.Department,
		Degree:     rec.Degree,
		LastLogin:  rec.LastLogin,
		IsGuest:    rec.IsGuest,
		IsAdmin:    rec.IsAdmin,
	}
}

// Record converts the request into the session record.
func (r EstablishSessionRequest) Record() domain.IdentityRecord {
	return domain.IdentityRecord{
		Roll:       r.Roll,
		Name:       r.Name,
		Department: r.Department,
		Degree:     r.Degree,
		LastLogin:  r.LastLogin,
		IsGuest:    r.IsGuest,
		IsAdmin:    r.IsAdmin,
	}
}
