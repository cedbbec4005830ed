package models

import "time"

// User roles. Owners manage their own restaurant; superadmins manage the
// platform.
const (
	RoleOwner      = "owner"
	RoleSuperadmin = "superadmin"
)

// User is a back-office account. The blob store persists the full struct, so
// the credential fields carry json tags; API responses go through Public.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Password          string    `json:"password_hash"` // bcrypt hash
	Role              string    `json:"role"`
	IsVerified        bool      `json:"is_verified"`
	VerificationToken string    `json:"verification_token,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PublicUser is the response shape for account endpoints, with credentials
// stripped.
type PublicUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// Public strips the credential fields for API responses.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
