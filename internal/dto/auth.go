package dto

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CollectorLoginRequest accepts email or phone in Username.
type CollectorLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CustomerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateCollectorProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Area    *string `json:"area,omitempty"`
	Address *string `json:"address,omitempty"`
}

// AuthResult is the login payload: a bearer token plus a role-specific
// profile summary.
type AuthResult struct {
	Token   string `json:"token"`
	Profile any    `json:"profile"`
}
