package model

import "github.com/golang-jwt/jwt/v5"

// VeteranClaims are JWT claims for veteran authentication
type VeteranClaims struct {
	VeteranID string `json:"veteranId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token     string `json:"token"`
	VeteranID string `json:"veteranId"`
}
