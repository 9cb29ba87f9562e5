package repository

import "github.com/stokespro/cake-crm-sub002/internal/domain/entity"

// SKURepository puerto de lectura del catálogo (el CRUD vive en otro subsistema).
type SKURepository interface {
	GetByID(id string) (*entity.SKU, error)
	GetByCode(code string) (*entity.SKU, error)
	ListActive() ([]*entity.SKU, error)
}
