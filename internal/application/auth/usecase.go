package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/application/ports"
	"github.com/jhoicas/bazar-api/internal/domain"
	"github.com/jhoicas/bazar-api/internal/domain/entity"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
	"github.com/jhoicas/bazar-api/internal/domain/service"
)

// maxPasswordBytes límite de bcrypt; el resto de bytes se ignoraría.
const maxPasswordBytes = 72

// AuthUseCase casos de uso de autenticación: registro, login, refresh y resolución del usuario actual.
type AuthUseCase struct {
	tx        ports.TxRunner
	hasher    service.PasswordHasher
	tokens    ports.TokenService
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx ports.TxRunner, hasher service.PasswordHasher, tokens ports.TokenService) *AuthUseCase {
	// Hash de referencia para comparar cuando el usuario no existe y así igualar tiempos de respuesta.
	dummy, _ := hasher.Hash("bazar-unknown-user")
	return &AuthUseCase{tx: tx, hasher: hasher, tokens: tokens, dummyHash: dummy}
}

// Register crea un usuario y devuelve su primer token. Devuelve domain.ErrUserAlreadyExists si
// el username o el email ya están tomados, ya sea por la verificación previa o por el constraint único.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.ErrInvalidInput
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUserAlreadyExists
		}
		now := time.Now().UTC()
		user = &entity.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(user.ID)
}

// Login busca por email o username, verifica la contraseña y emite un token.
// Usuario inexistente y contraseña incorrecta devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		u, err := repos.Users.GetByIdentifier(ctx, in.Username)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.Verify(in.Password, uc.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(user.ID)
}

// Refresh emite un token nuevo para un usuario ya autenticado; el token anterior sigue
// siendo válido hasta su expiración.
func (uc *AuthUseCase) Refresh(user *entity.User) (*dto.TokenResponse, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user.ID)
}

// Authenticate resuelve el token Bearer al usuario dueño. Token inválido, expirado o cuyo
// usuario ya no existe devuelven domain.ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	userID, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	var user *entity.User
	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		u, err := repos.Users.GetByID(ctx, userID)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (uc *AuthUseCase) issue(userID int64) (*dto.TokenResponse, error) {
	token, err := uc.tokens.Issue(userID)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: dto.TokenTypeBearer}, nil
}
