package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-auth-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}
}

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	v := &ValidationError{}
	v.add("username", "username is required")

	var err error = v

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Contains(t, err.Error(), "1 field(s)")
}

func TestValidateRegisterRequest_Valid(t *testing.T) {
	require.NoError(t, validateRegisterRequest(validRegisterRequest()))
}

func TestValidateRegisterRequest_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		field  string
	}{
		{"empty username", func(r *models.RegisterRequest) { r.Username = "" }, "username"},
		{"username too short", func(r *models.RegisterRequest) { r.Username = "ab" }, "username"},
		{"username too long", func(r *models.RegisterRequest) { r.Username = strings.Repeat("a", 51) }, "username"},
		{"username with spaces", func(r *models.RegisterRequest) { r.Username = "john doe" }, "username"},
		{"username with dash", func(r *models.RegisterRequest) { r.Username = "john-doe" }, "username"},
		{"empty email", func(r *models.RegisterRequest) { r.Email = "" }, "email"},
		{"email without at", func(r *models.RegisterRequest) { r.Email = "john.example.com" }, "email"},
		{"email without domain dot", func(r *models.RegisterRequest) { r.Email = "john@example" }, "email"},
		{"empty password", func(r *models.RegisterRequest) { r.Password = ""; r.ConfirmPassword = "" }, "password"},
		{"password too short", func(r *models.RegisterRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" }, "password"},
		{"password too long", func(r *models.RegisterRequest) {
			long := strings.Repeat("a", 129)
			r.Password, r.ConfirmPassword = long, long
		}, "password"},
		{"confirmation mismatch", func(r *models.RegisterRequest) { r.ConfirmPassword = "different" }, "confirm_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := validateRegisterRequest(req)

			require.ErrorIs(t, err, ErrInvalidDataProvided)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, vErr.Details, tt.field)
		})
	}
}

func TestValidateRegisterRequest_CollectsAllFields(t *testing.T) {
	err := validateRegisterRequest(models.RegisterRequest{})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))

	// one failing request reports every broken field at once
	assert.Contains(t, vErr.Details, "username")
	assert.Contains(t, vErr.Details, "email")
	assert.Contains(t, vErr.Details, "password")
}

func TestValidateLoginRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr bool
	}{
		{"valid", models.LoginRequest{Username: "johndoe", Password: "pass"}, false},
		{"email as identifier", models.LoginRequest{Username: "john@example.com", Password: "pass"}, false},
		{"missing username", models.LoginRequest{Password: "pass"}, true},
		{"missing password", models.LoginRequest{Username: "johndoe"}, true},
		{"empty request", models.LoginRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLoginRequest(tt.req)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDataProvided)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateProfileUpdate(t *testing.T) {
	tests := []struct {
		name    string
		update  models.ProfileUpdate
		wantErr bool
	}{
		{"username only", models.ProfileUpdate{Username: strPtr("newname")}, false},
		{"email only", models.ProfileUpdate{Email: strPtr("new@example.com")}, false},
		{"both", models.ProfileUpdate{Username: strPtr("newname"), Email: strPtr("new@example.com")}, false},
		{"nothing to update", models.ProfileUpdate{}, true},
		{"bad username", models.ProfileUpdate{Username: strPtr("x")}, true},
		{"bad email", models.ProfileUpdate{Email: strPtr("nope")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProfileUpdate(tt.update)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDataProvided)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidatePreferencesUpdate(t *testing.T) {
	dark := models.ThemeDark
	neon := models.Theme("neon")
	notifications := true

	tests := []struct {
		name    string
		update  models.PreferencesUpdate
		wantErr bool
	}{
		{"theme only", models.PreferencesUpdate{Theme: &dark}, false},
		{"notifications only", models.PreferencesUpdate{NotificationsEnabled: &notifications}, false},
		{"empty update", models.PreferencesUpdate{}, true},
		{"unknown theme", models.PreferencesUpdate{Theme: &neon}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePreferencesUpdate(tt.update)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDataProvided)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateDeleteAccountRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.DeleteAccountRequest
		wantErr bool
	}{
		{"valid", models.DeleteAccountRequest{Password: "pass", Confirmation: "DELETE"}, false},
		// validation only requires presence, the phrase itself is checked by the service
		{"wrong phrase still passes validation", models.DeleteAccountRequest{Password: "pass", Confirmation: "nope"}, false},
		{"missing password", models.DeleteAccountRequest{Confirmation: "DELETE"}, true},
		{"missing confirmation", models.DeleteAccountRequest{Password: "pass"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDeleteAccountRequest(tt.req)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDataProvided)
				return
			}
			require.NoError(t, err)
		})
	}
}
