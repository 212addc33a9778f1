package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// emailPattern is the shallow format check applied to newsletter signups:
// something, an @, something, a dot, something
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ========================================
// CONTACT
// ========================================

// ContactRequest also carries volunteer registrations, told apart by FormType
type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message"`
	Phone    string `json:"phone,omitempty"`
	FormType string `json:"formType,omitempty"`
}

func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	r.Phone = strings.TrimSpace(r.Phone)
	r.FormType = strings.TrimSpace(r.FormType)
}

func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Message, validation.Required.Error("message is required")),
	)
}

// Fields is the payload forwarded to the relay
func (r ContactRequest) Fields() map[string]string {
	f := map[string]string{
		"name":    r.Name,
		"email":   r.Email,
		"message": r.Message,
	}
	if r.Subject != "" {
		f["subject"] = r.Subject
	}
	if r.Phone != "" {
		f["phone"] = r.Phone
	}
	if r.FormType != "" {
		f["formType"] = r.FormType
	}
	return f
}

// ========================================
// NEWSLETTER
// ========================================

type NewsletterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (r *NewsletterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r NewsletterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("invalid email address"),
		),
	)
}

func (r NewsletterRequest) Fields() map[string]string {
	f := map[string]string{"email": r.Email}
	if r.Name != "" {
		f["name"] = r.Name
	}
	return f
}

// ========================================
// UNSUBSCRIBE
// ========================================

// UnsubscribeRequest carries the token from the unsubscribe link. The token
// is required but not checked against anything.
type UnsubscribeRequest struct {
	Email string `json:"email" form:"email"`
	Token string `json:"token" form:"token"`
}

func (r *UnsubscribeRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Token = strings.TrimSpace(r.Token)
}

func (r UnsubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Token, validation.Required.Error("token is required")),
	)
}
