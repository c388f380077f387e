package dto

// ── Requests ──

// RegisterRequest creates a new account. PharmacienResponsableID is
// mandatory when the requested role is Preparateur.
type RegisterRequest struct {
	Email                   string  `json:"email" binding:"required,email"`
	Username                string  `json:"username" binding:"required,min=3,max=100"`
	Password                string  `json:"password" binding:"required,min=8"`
	Role                    string  `json:"role" binding:"required"`
	PharmacienResponsableID *string `json:"pharmacienResponsableId"`
}

// LoginRequest authenticates by email or username.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest updates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ── Responses ──

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TokenResponse carries the issued token pair and the sanitized user.
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"` // access token TTL in seconds
	User         UserResponse `json:"user"`
}
