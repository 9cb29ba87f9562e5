package packaging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/application/packaging"
	"github.com/stokespro/cake-crm-sub002/internal/domain"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
	"github.com/stokespro/cake-crm-sub002/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (la atomicidad real se prueba contra PostgreSQL)
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	rows map[string]*entity.Inventory
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{rows: make(map[string]*entity.Inventory)}
}

func (f *fakeInventoryRepo) Get(skuID string) (*entity.Inventory, error) {
	if inv, ok := f.rows[skuID]; ok {
		cp := *inv
		return &cp, nil
	}
	// fila implícita: sin registro = baldes en cero
	return &entity.Inventory{SKUID: skuID}, nil
}

func (f *fakeInventoryRepo) GetForUpdate(skuID string) (*entity.Inventory, error) {
	return f.Get(skuID)
}

func (f *fakeInventoryRepo) Upsert(inv *entity.Inventory) error {
	cp := *inv
	f.rows[inv.SKUID] = &cp
	return nil
}

func (f *fakeInventoryRepo) ListAll() ([]*entity.Inventory, error) {
	out := make([]*entity.Inventory, 0, len(f.rows))
	for _, inv := range f.rows {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks map[string]*entity.PackagingTask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*entity.PackagingTask)}
}

func (f *fakeTaskRepo) Create(task *entity.PackagingTask) error {
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(id string) (*entity.PackagingTask, error) {
	if t, ok := f.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTaskRepo) GetForUpdate(id string) (*entity.PackagingTask, error) {
	return f.GetByID(id)
}

func (f *fakeTaskRepo) Update(task *entity.PackagingTask) error {
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) List(column string) ([]*entity.PackagingTask, error) {
	out := []*entity.PackagingTask{}
	for _, t := range f.tasks {
		if column != "" && t.CurrentColumn != column {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSKURepo struct {
	skus map[string]*entity.SKU
}

func (f *fakeSKURepo) GetByID(id string) (*entity.SKU, error) {
	if s, ok := f.skus[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSKURepo) GetByCode(code string) (*entity.SKU, error) {
	for _, s := range f.skus {
		if s.Code == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSKURepo) ListActive() ([]*entity.SKU, error) {
	out := make([]*entity.SKU, 0, len(f.skus))
	for _, s := range f.skus {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type fakePipelineRunner struct {
	inventory *fakeInventoryRepo
	tasks     *fakeTaskRepo
}

func (f *fakePipelineRunner) RunPipeline(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	taskRepo repository.PackagingTaskRepository,
) error) error {
	return fn(f.inventory, f.tasks)
}

const (
	testSKUID   = "sku-0001"
	testActorID = "00000000-0000-0000-0000-0000000000aa"
)

func newPipelineUC() (*packaging.PipelineUseCase, *fakeInventoryRepo, *fakeTaskRepo) {
	inventory := newFakeInventoryRepo()
	tasks := newFakeTaskRepo()
	skus := &fakeSKURepo{skus: map[string]*entity.SKU{
		testSKUID: {ID: testSKUID, Code: "X001", Name: "Vanilla Dream 6pk", Active: true},
	}}
	runner := &fakePipelineRunner{inventory: inventory, tasks: tasks}
	return packaging.NewPipelineUseCase(runner, inventory, tasks, skus, logger.Nop()), inventory, tasks
}

func setBuckets(t *testing.T, inventory *fakeInventoryRepo, staged, filled, cased int64) {
	t.Helper()
	require.NoError(t, inventory.Upsert(&entity.Inventory{
		SKUID: testSKUID, Staged: staged, Filled: filled, Cased: cased,
	}))
}

func scheduleTask(t *testing.T, uc *packaging.PipelineUseCase, qty int64) string {
	t.Helper()
	task, err := uc.ScheduleTask(context.Background(), dto.ScheduleTaskRequest{SKUID: testSKUID, Quantity: qty})
	require.NoError(t, err)
	return task.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// ScheduleTask / AddStaged
// ──────────────────────────────────────────────────────────────────────────────

func TestScheduleTask_CreaEnToFillSinMoverBaldes(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 40, 0, 0)

	task, err := uc.ScheduleTask(context.Background(), dto.ScheduleTaskRequest{SKUID: testSKUID, Quantity: 25})
	require.NoError(t, err)

	assert.Equal(t, entity.ColumnToFill, task.CurrentColumn)
	assert.Equal(t, entity.TaskTypeFill, task.TaskType)
	assert.Equal(t, "X001", task.SKUCode)
	assert.Nil(t, task.CompletedAt)

	inv, _ := inventory.Get(testSKUID)
	assert.Equal(t, int64(40), inv.Staged, "programar una tarea no mueve baldes")
}

func TestScheduleTask_SKUInexistente_RetornaErrNotFound(t *testing.T) {
	uc, _, _ := newPipelineUC()
	_, err := uc.ScheduleTask(context.Background(), dto.ScheduleTaskRequest{SKUID: "nope", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScheduleTask_CantidadNoPositiva_RetornaErrInvalidQuantity(t *testing.T) {
	uc, _, _ := newPipelineUC()
	_, err := uc.ScheduleTask(context.Background(), dto.ScheduleTaskRequest{SKUID: testSKUID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAddStaged_SumaAlBaldeStaged(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 10, 0, 0)

	inv, err := uc.AddStaged(context.Background(), dto.AddStagedRequest{SKUID: testSKUID, Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(25), inv.Staged)
	assert.Equal(t, int64(25), inv.Total)
}

func TestAddStaged_SKUSinFila_CreaLaFila(t *testing.T) {
	uc, _, _ := newPipelineUC()

	inv, err := uc.AddStaged(context.Background(), dto.AddStagedRequest{SKUID: testSKUID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), inv.Staged)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdvanceTask: las guardas de suficiencia
// ──────────────────────────────────────────────────────────────────────────────

func TestAdvanceTask_ToFill_MueveStagedAFilled(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 40, 0, 0)
	taskID := scheduleTask(t, uc, 25)

	task, err := uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)

	assert.Equal(t, entity.ColumnToCase, task.CurrentColumn)
	assert.Equal(t, entity.TaskTypeCase, task.TaskType)

	inv, _ := inventory.Get(testSKUID)
	assert.Equal(t, int64(15), inv.Staged)
	assert.Equal(t, int64(25), inv.Filled)
	assert.Equal(t, int64(40), inv.Total(), "avanzar conserva el total")
}

func TestAdvanceTask_ToCase_MueveFilledACasedYMarcaCompletada(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 40, 0, 0)
	taskID := scheduleTask(t, uc, 25)

	_, err := uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)
	task, err := uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)

	assert.Equal(t, entity.ColumnDone, task.CurrentColumn)
	require.NotNil(t, task.CompletedAt, "llegar a DONE debe sellar completed_at")

	inv, _ := inventory.Get(testSKUID)
	assert.Equal(t, int64(15), inv.Staged)
	assert.Equal(t, int64(0), inv.Filled)
	assert.Equal(t, int64(25), inv.Cased)
}

func TestAdvanceTask_StagedInsuficiente_NoMutaNada(t *testing.T) {
	uc, inventory, tasks := newPipelineUC()
	setBuckets(t, inventory, 10, 0, 0)
	taskID := scheduleTask(t, uc, 25)

	_, err := uc.AdvanceTask(context.Background(), taskID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	inv, _ := inventory.Get(testSKUID)
	assert.Equal(t, int64(10), inv.Staged, "la guarda debe dejar los baldes intactos")
	task, _ := tasks.GetByID(taskID)
	assert.Equal(t, entity.ColumnToFill, task.CurrentColumn, "la tarea no debe cambiar de columna")
}

func TestAdvanceTask_Done_RetornaErrInvalidInput(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 40, 0, 0)
	taskID := scheduleTask(t, uc, 10)

	_, err := uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)
	_, err = uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)

	_, err = uc.AdvanceTask(context.Background(), taskID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "DONE es terminal para advance")
}

func TestAdvanceTask_TareaInexistente_RetornaErrNotFound(t *testing.T) {
	uc, _, _ := newPipelineUC()
	_, err := uc.AdvanceTask(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RevertTask: camino de corrección SIN guarda
// ──────────────────────────────────────────────────────────────────────────────

func TestRevertTask_DeshaceElAvance(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 40, 0, 0)
	taskID := scheduleTask(t, uc, 25)

	_, err := uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)
	task, err := uc.RevertTask(context.Background(), taskID)
	require.NoError(t, err)

	assert.Equal(t, entity.ColumnToFill, task.CurrentColumn)
	assert.Equal(t, entity.TaskTypeFill, task.TaskType)

	inv, _ := inventory.Get(testSKUID)
	assert.Equal(t, int64(40), inv.Staged, "revert debe restaurar los baldes al estado previo")
	assert.Equal(t, int64(0), inv.Filled)
}

func TestRevertTask_DesdeDone_LimpiaCompletedAt(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 40, 0, 0)
	taskID := scheduleTask(t, uc, 10)

	_, err := uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)
	_, err = uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)

	task, err := uc.RevertTask(context.Background(), taskID)
	require.NoError(t, err)
	assert.Equal(t, entity.ColumnToCase, task.CurrentColumn)
	assert.Nil(t, task.CompletedAt, "salir de DONE debe limpiar completed_at")
}

func TestRevertTask_SinGuarda_PuedeDejarBaldeNegativo(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 40, 0, 0)
	taskID := scheduleTask(t, uc, 25)
	_, err := uc.AdvanceTask(context.Background(), taskID)
	require.NoError(t, err)

	// un operador corrige filled a cero antes de revertir
	filled := int64(0)
	_, err = uc.OverrideInventory(context.Background(), testSKUID, testActorID, dto.OverrideInventoryRequest{Filled: &filled})
	require.NoError(t, err)

	_, err = uc.RevertTask(context.Background(), taskID)
	require.NoError(t, err, "revert es un camino de corrección y no valida suficiencia")

	inv, _ := inventory.Get(testSKUID)
	assert.Equal(t, int64(-25), inv.Filled, "el balde puede quedar negativo a propósito")
	assert.Equal(t, int64(40), inv.Staged)
}

func TestRevertTask_DesdeToFill_RetornaErrInvalidInput(t *testing.T) {
	uc, _, _ := newPipelineUC()
	taskID := scheduleTask(t, uc, 10)

	_, err := uc.RevertTask(context.Background(), taskID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "TO_FILL es la primera columna, no retrocede")
}

// ──────────────────────────────────────────────────────────────────────────────
// OverrideInventory: corrección manual con valores absolutos
// ──────────────────────────────────────────────────────────────────────────────

func TestOverrideInventory_FijaValoresAbsolutos(t *testing.T) {
	uc, _, _ := newPipelineUC()
	staged, filled, cased := int64(7), int64(3), int64(1)

	inv, err := uc.OverrideInventory(context.Background(), testSKUID, testActorID, dto.OverrideInventoryRequest{
		Staged: &staged, Filled: &filled, Cased: &cased,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), inv.Staged)
	assert.Equal(t, int64(3), inv.Filled)
	assert.Equal(t, int64(1), inv.Cased)
}

func TestOverrideInventory_CamposOmitidosNoSeTocan(t *testing.T) {
	uc, inventory, _ := newPipelineUC()
	setBuckets(t, inventory, 10, 20, 30)

	staged := int64(99)
	inv, err := uc.OverrideInventory(context.Background(), testSKUID, testActorID, dto.OverrideInventoryRequest{Staged: &staged})
	require.NoError(t, err)
	assert.Equal(t, int64(99), inv.Staged)
	assert.Equal(t, int64(20), inv.Filled)
	assert.Equal(t, int64(30), inv.Cased)
}

func TestOverrideInventory_SinCampos_RetornaErrInvalidInput(t *testing.T) {
	uc, _, _ := newPipelineUC()
	_, err := uc.OverrideInventory(context.Background(), testSKUID, testActorID, dto.OverrideInventoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOverrideInventory_PermiteValoresNegativos(t *testing.T) {
	uc, _, _ := newPipelineUC()
	staged := int64(-5)
	inv, err := uc.OverrideInventory(context.Background(), testSKUID, testActorID, dto.OverrideInventoryRequest{Staged: &staged})
	require.NoError(t, err, "el override es deliberadamente permisivo")
	assert.Equal(t, int64(-5), inv.Staged)
}

func TestGetInventory_SKUSinFila_DevuelveBaldesEnCero(t *testing.T) {
	uc, _, _ := newPipelineUC()
	inv, err := uc.GetInventory(testSKUID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.Staged)
	assert.Equal(t, int64(0), inv.Filled)
	assert.Equal(t, int64(0), inv.Cased)
	assert.Equal(t, "X001", inv.SKUCode)
}
