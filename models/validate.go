// ABOUTME: Client-side validation for call placement input
// ABOUTME: E.164 phone checks, name checks, and persona availability checks
package models

import (
	"regexp"
	"strings"
)

// Validation messages shown inline next to the offending field.
const (
	MsgPhoneRequired   = "Phone number is required."
	MsgPhoneInvalid    = "Enter a valid E.164 phone (e.g., +15551234567)."
	MsgNameRequired    = "Name is required."
	MsgNoPersonas      = "No personas available for the selected mode. Try Refresh personas."
	MsgConsentRequired = "Please acknowledge consent before placing the call."
	MsgPersonaUnknown  = "Selected persona is not offered for this mode. Try Refresh personas."
)

// E.164-ish: optional leading +, first digit 1-9, 8-15 digits total.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

// ValidatePhone checks an E.164 phone number.
func ValidatePhone(phone string) error {
	if phone == "" {
		return &ValidationError{Field: "ph", Message: MsgPhoneRequired}
	}
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "ph", Message: MsgPhoneInvalid}
	}
	return nil
}

// ValidateName rejects empty or whitespace-only names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: MsgNameRequired}
	}
	return nil
}

// Validate checks the full request against the current persona snapshot.
// The first failure wins; field order matches the form layout.
func (r CallRequest) Validate(personas PersonaSet) error {
	if err := ValidatePhone(strings.TrimSpace(r.Phone)); err != nil {
		return err
	}
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	choices := personas.ForMode(r.Mode)
	if len(choices) == 0 {
		return &ValidationError{Field: "persona", Message: MsgNoPersonas}
	}
	if !personas.Contains(r.Mode, r.Persona) {
		return &ValidationError{Field: "persona", Message: MsgPersonaUnknown}
	}
	return nil
}
