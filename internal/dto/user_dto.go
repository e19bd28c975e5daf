package dto

import (
	"net/mail"
	"strings"
)

type CreateUserRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if r.Email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	return validateEmail(r.Email)
}

// UpdateUserRequest changes only the keys present in the body.
// phone_number may be null to clear it.
type UpdateUserRequest struct {
	Name        Field[string] `json:"name"`
	Email       Field[string] `json:"email"`
	PhoneNumber Field[string] `json:"phone_number"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Name.Set && (r.Name.Null || strings.TrimSpace(r.Name.Value) == "") {
		return &ValidationError{Field: "name", Reason: "must be a non-empty string"}
	}
	if r.Email.Set {
		if r.Email.Null {
			return &ValidationError{Field: "email", Reason: "must not be null"}
		}
		return validateEmail(r.Email.Value)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Reason: "is not a valid email address"}
	}
	return nil
}
