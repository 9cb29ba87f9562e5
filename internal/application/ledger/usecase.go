package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/domain"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

// LedgerUseCase opera el ledger de materiales: un contador de stock por
// material más un historial append-only. Cada mutación del contador escribe
// exactamente una transacción con el delta firmado, dentro de una misma
// transacción SQL con bloqueo de fila (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner        TxRunner
	materialRepo    repository.MaterialRepository
	transactionRepo repository.MaterialTransactionRepository
}

// NewLedgerUseCase construye el caso de uso. materialRepo y transactionRepo
// se usan para lecturas fuera de transacción; las mutaciones van por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	transactionRepo repository.MaterialTransactionRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:        txRunner,
		materialRepo:    materialRepo,
		transactionRepo: transactionRepo,
	}
}

// Create registra un material nuevo. Falla con ErrDuplicate si ya existe
// otro con el mismo nombre (normalizado). Si InitialStock > 0 escribe una
// transacción "initial" en la misma transacción SQL del insert.
func (uc *LedgerUseCase) Create(ctx context.Context, actorID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	normalized := NormalizeName(in.Name)
	if normalized == "" || in.Type == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock < 0 || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidValue
	}

	existing, err := uc.materialRepo.GetByNormalizedName(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	material := &entity.Material{
		ID:                uuid.New().String(),
		Name:              trimName(in.Name),
		NormalizedName:    normalized,
		SKUCode:           in.SKUCode,
		Type:              in.Type,
		CurrentStock:      in.InitialStock,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		transactionRepo repository.MaterialTransactionRepository,
	) error {
		if err := materialRepo.Create(material); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			return transactionRepo.Create(&entity.MaterialTransaction{
				ID:         uuid.New().String(),
				MaterialID: material.ID,
				Quantity:   in.InitialStock,
				Type:       entity.TransactionInitial,
				UserID:     actorID,
				Notes:      "initial stock",
				CreatedAt:  now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Update edita los campos no-stock de un material (nombre, código, tipo,
// umbral). Rechaza renombrar a un nombre ya usado por otra fila.
func (uc *LedgerUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		normalized := NormalizeName(*in.Name)
		if normalized == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.materialRepo.GetByNormalizedName(normalized)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
		material.Name = trimName(*in.Name)
		material.NormalizedName = normalized
	}
	if in.SKUCode != nil {
		material.SKUCode = *in.SKUCode
	}
	if in.Type != nil {
		if *in.Type == "" {
			return nil, domain.ErrInvalidInput
		}
		material.Type = *in.Type
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidValue
		}
		material.LowStockThreshold = *in.LowStockThreshold
	}
	material.UpdatedAt = time.Now()

	if err := uc.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina un material y todo su historial en cascada (primero las
// transacciones, luego la fila). Sin soft-delete.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		transactionRepo repository.MaterialTransactionRepository,
	) error {
		material, err := materialRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		if err := transactionRepo.DeleteByMaterial(id); err != nil {
			return err
		}
		return materialRepo.Delete(id)
	})
}

// Restock suma quantity al contador y escribe una transacción "restock"
// con el delta positivo. Bloquea la fila del material durante la operación.
func (uc *LedgerUseCase) Restock(ctx context.Context, id, actorID string, in dto.RestockRequest) (*dto.MaterialResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var updated *entity.Material
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		transactionRepo repository.MaterialTransactionRepository,
	) error {
		material, err := materialRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		material.CurrentStock += in.Quantity
		material.UpdatedAt = time.Now()
		if err := materialRepo.UpdateStock(material.ID, material.CurrentStock, material.UpdatedAt); err != nil {
			return err
		}
		if err := transactionRepo.Create(&entity.MaterialTransaction{
			ID:         uuid.New().String(),
			MaterialID: material.ID,
			Quantity:   in.Quantity,
			Type:       entity.TransactionRestock,
			UserID:     actorID,
			Notes:      in.Notes,
			CreatedAt:  material.UpdatedAt,
		}); err != nil {
			return err
		}
		updated = material
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(updated), nil
}

// Use consume quantity del contador y escribe una transacción "usage" con
// el delta NEGATIVO, opcionalmente etiquetada con el SKU que consumió.
// Falla con ErrInsufficientStock si el contador quedara por debajo de cero.
func (uc *LedgerUseCase) Use(ctx context.Context, id, actorID string, in dto.UseRequest) (*dto.MaterialResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var updated *entity.Material
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		transactionRepo repository.MaterialTransactionRepository,
	) error {
		material, err := materialRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		if material.CurrentStock < in.Quantity {
			return domain.ErrInsufficientStock
		}
		material.CurrentStock -= in.Quantity
		material.UpdatedAt = time.Now()
		if err := materialRepo.UpdateStock(material.ID, material.CurrentStock, material.UpdatedAt); err != nil {
			return err
		}
		if err := transactionRepo.Create(&entity.MaterialTransaction{
			ID:         uuid.New().String(),
			MaterialID: material.ID,
			Quantity:   -in.Quantity,
			Type:       entity.TransactionUsage,
			SKUCode:    in.SKUCode,
			UserID:     actorID,
			Notes:      in.Notes,
			CreatedAt:  material.UpdatedAt,
		}); err != nil {
			return err
		}
		updated = material
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(updated), nil
}

// Adjust fija el contador a un valor absoluto y escribe una transacción
// "adjustment" cuyo delta es newStock - stockActual (puede ser cero o
// negativo). Si no llega nota, se genera una legible por humanos.
func (uc *LedgerUseCase) Adjust(ctx context.Context, id, actorID string, in dto.AdjustRequest) (*dto.MaterialResponse, error) {
	if in.NewStock < 0 {
		return nil, domain.ErrInvalidValue
	}
	var updated *entity.Material
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		transactionRepo repository.MaterialTransactionRepository,
	) error {
		material, err := materialRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		delta := in.NewStock - material.CurrentStock
		notes := in.Notes
		if notes == "" {
			notes = fmt.Sprintf("stock adjusted from %d to %d", material.CurrentStock, in.NewStock)
		}
		material.CurrentStock = in.NewStock
		material.UpdatedAt = time.Now()
		if err := materialRepo.UpdateStock(material.ID, material.CurrentStock, material.UpdatedAt); err != nil {
			return err
		}
		if err := transactionRepo.Create(&entity.MaterialTransaction{
			ID:         uuid.New().String(),
			MaterialID: material.ID,
			Quantity:   delta,
			Type:       entity.TransactionAdjustment,
			UserID:     actorID,
			Notes:      notes,
			CreatedAt:  material.UpdatedAt,
		}); err != nil {
			return err
		}
		updated = material
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(updated), nil
}

// transactionListLimit tope de filas del historial por consulta.
const transactionListLimit = 100

// ListTransactions devuelve hasta 100 transacciones, las más recientes
// primero, opcionalmente filtradas a un material, enriquecidas con nombre
// de material y de actor.
func (uc *LedgerUseCase) ListTransactions(materialID string) ([]dto.TransactionResponse, error) {
	list, err := uc.transactionRepo.List(materialID, transactionListLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, dto.TransactionResponse{
			ID:           tx.ID,
			MaterialID:   tx.MaterialID,
			MaterialName: tx.MaterialName,
			Quantity:     tx.Quantity,
			Type:         tx.Type,
			SKUCode:      tx.SKUCode,
			UserName:     tx.UserName,
			Notes:        tx.Notes,
			CreatedAt:    tx.CreatedAt,
		})
	}
	return items, nil
}

// GetByID obtiene un material por ID.
func (uc *LedgerUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// List lista todos los materiales.
func (uc *LedgerUseCase) List() ([]dto.MaterialResponse, error) {
	list, err := uc.materialRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return items, nil
}

// trimName recorta el nombre visible; conserva acentos y mayúsculas.
func trimName(name string) string {
	return strings.TrimSpace(name)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:                m.ID,
		Name:              m.Name,
		SKUCode:           m.SKUCode,
		Type:              m.Type,
		CurrentStock:      m.CurrentStock,
		LowStockThreshold: m.LowStockThreshold,
		LowStock:          m.IsLowStock(),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
