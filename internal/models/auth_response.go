package models

// PublicUser is the subset of a user's fields safe to return to a client
type PublicUser struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Balance  float64 `json:"balance"`
}

// AuthResponse represents the response after successful registration or login
type AuthResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"` // JWT token
}

// UserDataResponse represents the getUserData response. Field casing is
// snake_case here, unlike the register/login user view — the reference API
// returns the raw row shape for this one operation and clients depend on it.
type UserDataResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Balance  float64 `json:"balance"`
}

// ErrorResponse is the failure body shared by every route
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"` // detail, omitted in production
}

// SuccessResponse is the bare acknowledgment for mutations with no payload
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the GET liveness payload for the auth endpoint
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Database  string    `json:"database"`
	DBTime    string    `json:"dbTime,omitempty"`
	Endpoints []string  `json:"endpoints"`
	Env       HealthEnv `json:"env"`
}

// HealthEnv reports which critical settings are present, without leaking them
type HealthEnv struct {
	HasDatabaseURL bool `json:"hasDatabaseUrl"`
	HasJWTSecret   bool `json:"hasJwtSecret"`
}
