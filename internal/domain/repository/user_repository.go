package repository

import "github.com/stokespro/cake-crm-sub002/internal/domain/entity"

// UserRepository puerto de identidad de actores (la administración de
// usuarios vive fuera de este núcleo).
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
