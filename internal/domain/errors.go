package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserAlreadyExists  = errors.New("el usuario ya existe")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidReference   = errors.New("catálogo o categoría inexistente")
	ErrUnauthorized       = errors.New("credenciales de autenticación inválidas")
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos")
)
