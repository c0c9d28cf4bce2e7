package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/application/ports"
	"github.com/jhoicas/bazar-api/internal/domain"
	"github.com/jhoicas/bazar-api/internal/domain/entity"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
	"github.com/jhoicas/bazar-api/internal/domain/service"
)

// UserUseCase casos de uso sobre la cuenta del usuario autenticado.
type UserUseCase struct {
	tx     ports.TxRunner
	hasher service.PasswordHasher
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(tx ports.TxRunner, hasher service.PasswordHasher) *UserUseCase {
	return &UserUseCase{tx: tx, hasher: hasher}
}

// Me proyecta el usuario autenticado.
func (uc *UserUseCase) Me(user *entity.User) *dto.UserResponse {
	return toUserResponse(user)
}

// Update aplica los campos presentes; la contraseña se re-hashea. Un username o email ya
// tomado devuelve domain.ErrUserAlreadyExists (lo decide el constraint único).
func (uc *UserUseCase) Update(ctx context.Context, userID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch := entity.UserPatch{
		Username: entity.FromPtr(in.Username),
		Email:    entity.FromPtr(in.Email),
	}
	if in.Password != nil {
		if len(*in.Password) > 72 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = entity.Some(hash)
	}

	var user *entity.User
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		user.Apply(patch)
		user.UpdatedAt = time.Now().UTC()
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina la cuenta; la base elimina en cascada catálogos, categorías y productos.
func (uc *UserUseCase) Delete(ctx context.Context, userID int64) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		deleted, err := repos.Users.Delete(ctx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
