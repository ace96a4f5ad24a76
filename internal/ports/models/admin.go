package models

// LoginRequest defines the input for the admin login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued admin JWT
type LoginResponse struct {
	Token string `json:"token"`
}
