package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL vigencia de un token cuando la configuración no la define.
const DefaultTTL = 60 * time.Minute

// ErrInvalidToken resultado único de Verify ante firma, algoritmo, expiración o subject inválidos.
var ErrInvalidToken = errors.New("jwt: token inválido o expirado")

// Config parámetros de firma de tokens.
type Config struct {
	Secret    string
	Algorithm string // HS256, HS384 o HS512
	TTL       time.Duration
	Issuer    string
}

// Manager emite y valida tokens Bearer firmados con secreto simétrico.
// Los tokens no tienen estado: no hay revocación, valen hasta su expiración.
type Manager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewManager valida la configuración y construye el emisor/verificador.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: algoritmo no soportado %q", alg)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// Issue genera un token nuevo para subjectID con expiración absoluta now + TTL.
// Cada token lleva un jti propio, de modo que un refresh nunca devuelve el mismo token.
func (m *Manager) Issue(subjectID int64) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    m.issuer,
		Subject:   strconv.FormatInt(subjectID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma, algoritmo y expiración. Devuelve el subject o ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (int64, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	var claims jwt.RegisteredClaims
	token, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// TTL vigencia configurada de los tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
