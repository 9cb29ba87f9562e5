package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/domain"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
	"github.com/stokespro/cake-crm-sub002/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra el directorio de usuarios. La administración de
// usuarios (altas, roles, PINes legados) vive fuera de este núcleo; aquí
// solo se resuelve la identidad del actor {id, name, role}.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + actor.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Name: user.Name, Role: user.Role},
	}, nil
}

// Actor devuelve la identidad mínima de un usuario por ID.
func (uc *AuthUseCase) Actor(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.UserResponse{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}
