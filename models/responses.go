package models

// MessageResponse is the generic success envelope returned by endpoints
// that do not carry additional data (logout, revoke-all, etc.).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the generic failure envelope. Error carries the
// short machine-oriented category, Message the human-readable cause,
// and Details optional per-field validation messages.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// UserResponse wraps a public user representation.
type UserResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	User    PublicUser `json:"user"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         PublicUser `json:"user"`

	// ExpiresIn is the access-token lifetime in seconds
	// (3600, or 604800 when remember-me was requested).
	ExpiresIn int64 `json:"expires_in"`

	RememberMe bool `json:"remember_me"`
}

// RefreshResponse is returned by POST /api/auth/refresh.
type RefreshResponse struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	AccessToken string     `json:"access_token"`
	User        PublicUser `json:"user"`
}

// Profile is the aggregate returned by GET /api/user/profile:
// the public user plus preferences and session statistics.
type Profile struct {
	PublicUser
	Preferences UserPreferences `json:"preferences"`
	Stats       SessionStats    `json:"stats"`
}

// ProfileResponse wraps a Profile.
type ProfileResponse struct {
	Success bool    `json:"success"`
	User    Profile `json:"user"`
}

// PreferencesResponse wraps a preferences record.
type PreferencesResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message,omitempty"`
	Preferences UserPreferences `json:"preferences"`
}

// StatsResponse wraps per-user session statistics.
type StatsResponse struct {
	Success bool         `json:"success"`
	Stats   SessionStats `json:"stats"`
}

// SessionsResponse is returned by GET /api/user/sessions.
type SessionsResponse struct {
	Success  bool          `json:"success"`
	Sessions []UserSession `json:"sessions"`
	Count    int           `json:"count"`
}

// RevokeAllResponse is returned by POST /api/user/sessions/revoke-all.
type RevokeAllResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Revoked int64  `json:"revoked"`
}

// CleanupResponse is returned by POST /api/utils/cleanup.
type CleanupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cleaned struct {
		ExpiredSessions int64 `json:"expired_sessions"`
	} `json:"cleaned"`
}

// ServiceStats is the aggregate returned by GET /api/utils/stats.
type ServiceStats struct {
	Users struct {
		Total           int64 `json:"total"`
		Active          int64 `json:"active"`
		Inactive        int64 `json:"inactive"`
		CreatedToday    int64 `json:"created_today"`
		CreatedThisWeek int64 `json:"created_this_week"`
	} `json:"users"`
	Sessions struct {
		Active int64 `json:"active"`
	} `json:"sessions"`
}

// HealthResponse is returned by GET /api/utils/health.
type HealthResponse struct {
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Database string `json:"database"`
}

// InfoResponse is returned by GET /api/utils/info.
type InfoResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServiceStatsResponse wraps the service-wide figures.
type ServiceStatsResponse struct {
	Success bool         `json:"success"`
	Stats   ServiceStats `json:"stats"`
}
