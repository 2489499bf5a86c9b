package user

import (
	"time"

	"github.com/google/uuid"
)

// UserType is the account kind chosen at registration.
type UserType string

const (
	TypeCustomer UserType = "customer"
	TypeSeller   UserType = "seller"
	TypeAdmin    UserType = "admin"
)

// Role is the privilege flag stored alongside UserType.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// PermissionLevel collapses UserType and Role into the single level used for authorization.
type PermissionLevel int

const (
	LevelCustomer PermissionLevel = iota
	LevelSeller
	LevelAdmin
)

func (l PermissionLevel) String() string {
	switch l {
	case LevelAdmin:
		return "admin"
	case LevelSeller:
		return "seller"
	default:
		return "customer"
	}
}

// User represents a marketplace account
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHashed string
	UserType       UserType
	Role           Role
	Avatar         *string
	IsActive       bool
	IsApproved     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin honours either admin marker.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.UserType == TypeAdmin
}

func (u *User) IsSeller() bool {
	return u.UserType == TypeSeller
}

func (u *User) PermissionLevel() PermissionLevel {
	switch {
	case u.IsAdmin():
		return LevelAdmin
	case u.IsSeller():
		return LevelSeller
	default:
		return LevelCustomer
	}
}
