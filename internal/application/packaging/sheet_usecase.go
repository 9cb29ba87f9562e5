package packaging

import (
	"context"
	"fmt"
	"time"

	"github.com/stokespro/cake-crm-sub002/internal/application/demand"
	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
)

// ProductionSheetGenerator puerto del generador PDF de la hoja de producción.
type ProductionSheetGenerator interface {
	GenerateProductionSheet(ctx context.Context, date time.Time, tasks []dto.TaskResponse, summary dto.DemandSummary) ([]byte, error)
}

// ProductionSheetUseCase arma la hoja de producción imprimible: las tareas
// de empaque abiertas más la demanda agregada, para el piso de empaque.
type ProductionSheetUseCase struct {
	demand    *demand.DemandUseCase
	generator ProductionSheetGenerator
}

// NewProductionSheetUseCase construye el caso de uso.
func NewProductionSheetUseCase(demandUC *demand.DemandUseCase, generator ProductionSheetGenerator) *ProductionSheetUseCase {
	return &ProductionSheetUseCase{demand: demandUC, generator: generator}
}

// DownloadProductionSheet genera el PDF del día y devuelve bytes + filename.
// Solo incluye tareas sin terminar (TO_FILL y TO_CASE).
func (uc *ProductionSheetUseCase) DownloadProductionSheet(ctx context.Context) ([]byte, string, error) {
	all, err := uc.demand.GetPackagingTasks("")
	if err != nil {
		return nil, "", fmt.Errorf("production sheet: tareas: %w", err)
	}
	open := make([]dto.TaskResponse, 0, len(all))
	for _, t := range all {
		if t.CurrentColumn != entity.ColumnDone {
			open = append(open, t)
		}
	}

	summary, err := uc.demand.GetDemandSummary()
	if err != nil {
		return nil, "", fmt.Errorf("production sheet: demanda: %w", err)
	}

	now := time.Now()
	pdf, err := uc.generator.GenerateProductionSheet(ctx, now, open, summary)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("production-sheet-%s.pdf", now.Format("2006-01-02"))
	return pdf, filename, nil
}
