package ports

// TokenService emite y verifica tokens Bearer con el ID del usuario como subject.
// Lo implementa *jwt.Manager.
type TokenService interface {
	Issue(subjectID int64) (string, error)
	// Verify devuelve el subject o un error opaco; nunca detalla qué verificación falló.
	Verify(token string) (int64, error)
}
