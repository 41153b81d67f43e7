package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for authenticated users
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account creation
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
