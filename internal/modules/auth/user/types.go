package user

import "errors"

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("password is wrong")
	errUsernameTaken = errors.New("username already taken")
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string           `json:"token"`
	User  *SafeUserPayload `json:"user"`
}

type SafeUserPayload struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}
