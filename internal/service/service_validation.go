package service

import (
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-auth-service/models"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
	passwordMinLength = 6
	passwordMaxLength = 128

	// deleteConfirmationPhrase must be typed verbatim before an account
	// is soft-deleted.
	deleteConfirmationPhrase = "DELETE"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidationError aggregates per-field validation messages so that the
// transport layer can return them all at once instead of failing on the
// first problem.
type ValidationError struct {
	Details map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Details))
}

// Unwrap lets errors.Is(err, ErrInvalidDataProvided) match validation
// failures without callers knowing the concrete type.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidDataProvided
}

func (e *ValidationError) add(field, message string) {
	if e.Details == nil {
		e.Details = map[string][]string{}
	}
	e.Details[field] = append(e.Details[field], message)
}

func (e *ValidationError) orNil() error {
	if len(e.Details) == 0 {
		return nil
	}
	return e
}

func validateUsername(v *ValidationError, username string) {
	if username == "" {
		v.add("username", "username is required")
		return
	}
	if len(username) < usernameMinLength || len(username) > usernameMaxLength {
		v.add("username", fmt.Sprintf("username must be %d-%d characters long", usernameMinLength, usernameMaxLength))
	}
	if !usernamePattern.MatchString(username) {
		v.add("username", "username may only contain letters, digits and underscores")
	}
}

func validateEmail(v *ValidationError, email string) {
	if email == "" {
		v.add("email", "email is required")
		return
	}
	if !emailPattern.MatchString(email) {
		v.add("email", "email address is not valid")
	}
}

func validatePassword(v *ValidationError, password string) {
	if password == "" {
		v.add("password", "password is required")
		return
	}
	if len(password) < passwordMinLength || len(password) > passwordMaxLength {
		v.add("password", fmt.Sprintf("password must be %d-%d characters long", passwordMinLength, passwordMaxLength))
	}
}

func validateRegisterRequest(req models.RegisterRequest) error {
	v := &ValidationError{}

	validateUsername(v, req.Username)
	validateEmail(v, req.Email)
	validatePassword(v, req.Password)

	if req.Password != req.ConfirmPassword {
		v.add("confirm_password", "passwords do not match")
	}

	return v.orNil()
}

func validateLoginRequest(req models.LoginRequest) error {
	v := &ValidationError{}

	if req.Username == "" {
		v.add("username", "username is required")
	}
	if req.Password == "" {
		v.add("password", "password is required")
	}

	return v.orNil()
}

func validateProfileUpdate(update models.ProfileUpdate) error {
	v := &ValidationError{}

	if update.Username == nil && update.Email == nil {
		v.add("profile", "at least one of username or email must be provided")
		return v.orNil()
	}
	if update.Username != nil {
		validateUsername(v, *update.Username)
	}
	if update.Email != nil {
		validateEmail(v, *update.Email)
	}

	return v.orNil()
}

func validatePreferencesUpdate(update models.PreferencesUpdate) error {
	v := &ValidationError{}

	if update.Empty() {
		v.add("preferences", "at least one preference field must be provided")
		return v.orNil()
	}
	if update.Theme != nil && !update.Theme.Valid() {
		v.add("theme", "theme must be one of: light, dark, auto")
	}

	return v.orNil()
}

func validateDeleteAccountRequest(req models.DeleteAccountRequest) error {
	v := &ValidationError{}

	if req.Password == "" {
		v.add("password", "password is required")
	}
	if req.Confirmation == "" {
		v.add("confirmation", "confirmation is required")
	}

	return v.orNil()
}
