// Package service define puertos de servicios de dominio implementados en infraestructura.
package service

// PasswordHasher hashea y verifica contraseñas en texto plano.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify devuelve false ante contraseña incorrecta o hash malformado.
	Verify(password, hash string) bool
}
