package handler

// errorResponse documents the standard envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// tokenUser is the claim set echoed back to the client next to the token.
type tokenUser struct {
	ID     string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  tokenUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
