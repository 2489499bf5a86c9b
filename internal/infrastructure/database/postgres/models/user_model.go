package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_users_username"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	UserType       string    `gorm:"type:varchar(20);not null;default:'customer';index"`
	Role           string    `gorm:"type:varchar(20);not null;default:'user'"`
	Avatar         *string   `gorm:"type:varchar(500)"`
	IsActive       bool      `gorm:"default:true;not null"`
	IsApproved     bool      `gorm:"default:false;not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
