package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for authenticated users. Role-scoped route
// guards dispatch on the Role tag.
type UserClaims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// RegisterRequest is the request body for patient self-registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender,omitempty"`
}
