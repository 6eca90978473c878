package domain

import "time"

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

// ParseRole rejects anything outside the three known roles so a bad role
// claim fails at the boundary instead of slipping past an authz check.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFarmer, RoleOwner, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Actor is the authenticated caller as seen by the service layer.
type Actor struct {
	UserID string
	Role   Role
}

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `gorm:"index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
