// Package validation provides the generic form checks shared by the
// registration and login workflows.
package validation

import (
	"fmt"
	"strings"
)

// MissingFieldError reports every required field that was empty after
// trimming, in the order the caller listed them.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// FormatError reports a field whose value does not match the expected shape.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format for field %s", e.Field)
}

// CheckRequired trims every value and returns a MissingFieldError naming all
// required fields that are empty afterwards. Order follows the required list.
func CheckRequired(fields map[string]string, required []string) error {
	var missing []string
	for _, name := range required {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

// CheckEmail requires a non-empty local part, exactly one "@", and a domain
// containing a dot that is neither its first nor last character.
func CheckEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return &FormatError{Field: "email"}
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return &FormatError{Field: "email"}
	}
	return nil
}

// CheckPasswordPair verifies the confirmation matches when a password was
// entered. An empty password is allowed, registration without a credential
// is still valid.
func CheckPasswordPair(password, confirm string) error {
	if password != "" && password != confirm {
		return &FormatError{Field: "password"}
	}
	return nil
}
