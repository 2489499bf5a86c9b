package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email is already registered")
	ErrUsernameAlreadyExists = errors.New("username is already taken")
	ErrUserInactive          = errors.New("user account is deactivated")
	ErrInvalidUserType       = errors.New("invalid user type")
)
