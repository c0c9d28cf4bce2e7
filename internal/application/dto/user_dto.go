package dto

import "time"

// TokenTypeBearer único tipo de token emitido.
const TokenTypeBearer = "bearer"

// RegisterRequest entrada para registro (password en texto, se hashea en use case).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Username string `json:"username" validate:"required,min=1,max=50,nospaces"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// LoginRequest entrada para login. Username acepta el email o el username.
// Se recibe como formulario (application/x-www-form-urlencoded) o JSON.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse salida de register, login y refresh-token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateUserRequest actualización parcial de la cuenta; los campos nil no se tocan.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=50,nospaces"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
