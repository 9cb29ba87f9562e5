package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse identidad mínima del actor: {id, name, role}.
type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// LoginResponse token JWT + identidad del actor.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
