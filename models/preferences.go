package models

import "time"

// Theme enumerates the supported UI color schemes.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Valid reports whether t is one of the supported theme values.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	}
	return false
}

// UserPreferences holds per-user settings. Exactly one row exists per
// active user once any preference-touching path has run; the record is
// created eagerly at registration and lazily on first access otherwise.
type UserPreferences struct {
	// PreferencesID is the internal unique identifier of the row.
	PreferencesID int64 `json:"id"`

	// UserID references the owning user (one-to-one).
	UserID int64 `json:"user_id"`

	// Theme is the selected UI color scheme.
	Theme Theme `json:"theme"`

	// NotificationsEnabled toggles e-mail/UI notifications.
	NotificationsEnabled bool `json:"notifications_enabled"`

	// RememberMe mirrors the remember-me choice made at the last login.
	RememberMe bool `json:"remember_me"`

	// UpdatedAt is the timestamp of the last preferences mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the UserPreferences model.
func (p UserPreferences) TableName() string {
	return "user_preferences"
}

// PreferencesUpdate represents criteria for updating user preferences.
// Only non-nil fields will be updated (partial update support).
type PreferencesUpdate struct {
	// Theme is the new UI color scheme.
	// If nil, the field will not be updated.
	Theme *Theme `json:"theme,omitempty"`

	// NotificationsEnabled is the new notifications toggle.
	// If nil, the field will not be updated.
	NotificationsEnabled *bool `json:"notifications_enabled,omitempty"`

	// RememberMe is the new remember-me default.
	// If nil, the field will not be updated.
	RememberMe *bool `json:"remember_me,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u PreferencesUpdate) Empty() bool {
	return u.Theme == nil && u.NotificationsEnabled == nil && u.RememberMe == nil
}
