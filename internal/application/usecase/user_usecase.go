package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

// UserUseCase administración de usuarios. Todas las operaciones de este
// caso de uso están reservadas a ADMIN por la tabla de políticas.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Create alta directa de usuario con rol explícito.
func (uc *UserUseCase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(req.Role) {
		return nil, fmt.Errorf("rol %q desconocido: %w", req.Role, domain.ErrInvalidInput)
	}
	existing, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("verificando email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generando hash: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creando usuario: %w", err)
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario; ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update actualización parcial. Si viene Password se re-hashea; nunca se
// acepta ni se devuelve un hash por la API.
func (uc *UserUseCase) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := uc.users.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("verificando email: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !entity.ValidRole(*req.Role) {
			return nil, fmt.Errorf("rol %q desconocido: %w", *req.Role, domain.ErrInvalidInput)
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("generando hash: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("actualizando usuario %s: %w", id, err)
	}
	return toUserResponse(user), nil
}

// List listado paginado, orden por defecto id ascendente.
func (uc *UserUseCase) List(ctx context.Context, query dto.PageQuery) (*dto.UserListResponse, error) {
	params := query.ToParams()
	params.Normalize("id")

	users, total, err := uc.users.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listando usuarios: %w", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return &dto.UserListResponse{Data: out, Total: total}, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
