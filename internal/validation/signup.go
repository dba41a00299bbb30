// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// srnPattern matches an institutional Student Registration Number after
// uppercase normalization, e.g. PES1UG23CS123.
var srnPattern = regexp.MustCompile(`^[A-Z0-9]{6,16}$`)

// ValidateStudentEmail checks that the (already lowercased) email belongs
// to the institution's student domain.
func ValidateStudentEmail(email, domain string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	suffix := "@" + domain
	if !strings.HasSuffix(email, suffix) {
		return fmt.Errorf("email must be a student email (%s)", suffix)
	}
	if strings.TrimSuffix(email, suffix) == "" {
		return fmt.Errorf("email must have a local part before %s", suffix)
	}
	return nil
}

// ValidateSRN checks the shape of an (already uppercased) SRN.
func ValidateSRN(srn string) error {
	if srn == "" {
		return fmt.Errorf("srn is required")
	}
	if !srnPattern.MatchString(srn) {
		return fmt.Errorf("srn must be 6-16 letters and digits")
	}
	return nil
}

// ValidatePassword checks if a password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// emailPattern is a permissive address shape check used for invite
// recipients, who may be outside the student domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmailAddress checks the general shape of any email address.
func ValidateEmailAddress(email string) error {
	if !emailPattern.MatchString(strings.ToLower(email)) {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}
