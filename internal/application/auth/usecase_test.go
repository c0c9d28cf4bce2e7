package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bazar-api/internal/application/auth"
	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/domain"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
	"github.com/jhoicas/bazar-api/internal/infrastructure/security"
	"github.com/jhoicas/bazar-api/internal/testsupport/memstore"
	"github.com/jhoicas/bazar-api/pkg/jwt"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, *memstore.Store, *jwt.Manager) {
	t.Helper()
	store := memstore.New()
	tokens, err := jwt.NewManager(jwt.Config{Secret: "s3cr3t", TTL: time.Minute})
	require.NoError(t, err)
	return auth.NewAuthUseCase(store, security.NewBcryptHasherWithCost(bcrypt.MinCost), tokens), store, tokens
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	uc, store, tokens := newAuth(t)
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@x.io", Username: "ana", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, dto.TokenTypeBearer, out.TokenType)

	user, err := store.Repositories().Users.GetByIdentifier(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "clave", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("clave")))
	assert.False(t, user.CreatedAt.IsZero())

	sub, err := tokens.Verify(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)
}

func TestRegister_Duplicate(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@x.io", Username: "ana", Password: "clave"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@x.io", Username: "otra", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	// Sensible a mayúsculas: no hay normalización.
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ANA@x.io", Username: "Ana", Password: "clave"})
	assert.NoError(t, err)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	uc, _, _ := newAuth(t)
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "a@x.io", Username: "a", Password: string(long)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@x.io", Username: "ana", Password: "clave"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana@x.io", Password: "clave"})
	assert.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave"})
	assert.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana@x.io", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie@x.io", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	uc, store, tokens := newAuth(t)
	ctx := context.Background()
	out, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@x.io", Username: "ana", Password: "clave"})
	require.NoError(t, err)

	user, err := uc.Authenticate(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	_, err = uc.Authenticate(ctx, "basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	ghost, err := tokens.Issue(9999)
	require.NoError(t, err)
	_, err = uc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Un fallo de almacenamiento no se disfraza de 401.
	boom := errors.New("db caída")
	store.FailWith(boom)
	_, err = uc.Authenticate(ctx, out.AccessToken)
	assert.ErrorIs(t, err, boom)
}

func TestAuthenticate_TokenNeverResolvesToAnotherUser(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	a, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@x.io", Username: "a", Password: "clave"})
	require.NoError(t, err)
	b, err := uc.Register(ctx, dto.RegisterRequest{Email: "b@x.io", Username: "b", Password: "clave"})
	require.NoError(t, err)

	ua, err := uc.Authenticate(ctx, a.AccessToken)
	require.NoError(t, err)
	ub, err := uc.Authenticate(ctx, b.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, ua.ID, ub.ID)
	assert.Equal(t, "a", ua.Username)
	assert.Equal(t, "b", ub.Username)
}

func TestRefresh(t *testing.T) {
	uc, _, _ := newAuth(t)
	_, err := uc.Refresh(nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// raceRunner simula que otra transacción insertó el mismo usuario entre la verificación y el insert.
type raceRunner struct {
	store *memstore.Store
}

func (r raceRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return r.store.Run(ctx, func(repos repository.Repositories) error {
		repos.Users = racingUsers{UserRepository: repos.Users}
		return fn(repos)
	})
}

type racingUsers struct {
	repository.UserRepository
}

func (racingUsers) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestRegister_UniqueConstraintIsSourceOfTruth(t *testing.T) {
	store := memstore.New()
	tokens, err := jwt.NewManager(jwt.Config{Secret: "s3cr3t"})
	require.NoError(t, err)
	hasher := security.NewBcryptHasherWithCost(bcrypt.MinCost)
	ctx := context.Background()

	_, err = auth.NewAuthUseCase(store, hasher, tokens).Register(ctx, dto.RegisterRequest{Email: "ana@x.io", Username: "ana", Password: "clave"})
	require.NoError(t, err)

	racy := auth.NewAuthUseCase(raceRunner{store: store}, hasher, tokens)
	_, err = racy.Register(ctx, dto.RegisterRequest{Email: "ana@x.io", Username: "ana", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}
