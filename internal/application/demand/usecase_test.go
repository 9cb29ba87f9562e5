package demand_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stokespro/cake-crm-sub002/internal/application/demand"
	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	open      []*entity.Order
	confirmed []*entity.Order
}

func (f *fakeOrderRepo) ListOpenWithItems() ([]*entity.Order, error) {
	return f.open, nil
}

func (f *fakeOrderRepo) ListConfirmedWithDispensary() ([]*entity.Order, error) {
	return f.confirmed, nil
}

type fakeInventoryRepo struct {
	rows []*entity.Inventory
}

func (f *fakeInventoryRepo) Get(skuID string) (*entity.Inventory, error) {
	for _, inv := range f.rows {
		if inv.SKUID == skuID {
			return inv, nil
		}
	}
	return &entity.Inventory{SKUID: skuID}, nil
}

func (f *fakeInventoryRepo) GetForUpdate(skuID string) (*entity.Inventory, error) {
	return f.Get(skuID)
}

func (f *fakeInventoryRepo) Upsert(inv *entity.Inventory) error { return nil }

func (f *fakeInventoryRepo) ListAll() ([]*entity.Inventory, error) { return f.rows, nil }

type fakeTaskRepo struct {
	tasks []*entity.PackagingTask
}

func (f *fakeTaskRepo) Create(*entity.PackagingTask) error { return nil }
func (f *fakeTaskRepo) Update(*entity.PackagingTask) error { return nil }
func (f *fakeTaskRepo) GetByID(string) (*entity.PackagingTask, error) {
	return nil, nil
}
func (f *fakeTaskRepo) GetForUpdate(string) (*entity.PackagingTask, error) {
	return nil, nil
}
func (f *fakeTaskRepo) List(column string) ([]*entity.PackagingTask, error) {
	out := []*entity.PackagingTask{}
	for _, t := range f.tasks {
		if column == "" || t.CurrentColumn == column {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeSKURepo struct {
	skus []*entity.SKU
}

func (f *fakeSKURepo) GetByID(id string) (*entity.SKU, error) {
	for _, s := range f.skus {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSKURepo) GetByCode(code string) (*entity.SKU, error) {
	for _, s := range f.skus {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSKURepo) ListActive() ([]*entity.SKU, error) { return f.skus, nil }

func newDemandUC(orders *fakeOrderRepo, inventory *fakeInventoryRepo, tasks *fakeTaskRepo, skus *fakeSKURepo) *demand.DemandUseCase {
	if inventory == nil {
		inventory = &fakeInventoryRepo{}
	}
	if tasks == nil {
		tasks = &fakeTaskRepo{}
	}
	if skus == nil {
		skus = &fakeSKURepo{}
	}
	return demand.NewDemandUseCase(orders, inventory, tasks, skus)
}

func demandEntryOf(total, urgent, tomorrow int64) dto.DemandEntry {
	return dto.DemandEntry{Total: total, Urgent: urgent, Tomorrow: tomorrow}
}

// orderWithItems arma un pedido abierto con una sola línea.
func orderWithItems(delivery time.Time, skuCode string, qty int64) *entity.Order {
	return &entity.Order{
		ID:           "order-" + delivery.Format("20060102") + "-" + skuCode,
		Status:       entity.OrderStatusConfirmed,
		DeliveryDate: delivery,
		Items: []entity.OrderItem{
			{SKUCode: skuCode, Quantity: qty, UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetDemandSummary: clasificación por urgencia con comparación solo-fecha
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDemandSummary_ClasificaPorUrgencia(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	orders := &fakeOrderRepo{open: []*entity.Order{
		orderWithItems(yesterday, "X001", 2), // vencido → urgent
		orderWithItems(now, "X001", 3),       // hoy → urgent
		orderWithItems(tomorrow, "X001", 3),  // mañana → tomorrow
		orderWithItems(nextWeek, "X002", 4),  // futuro → solo total
	}}
	uc := newDemandUC(orders, nil, nil, nil)

	summary, err := uc.GetDemandSummary()
	require.NoError(t, err)

	x001 := summary["X001"]
	assert.Equal(t, int64(8), x001.Total)
	assert.Equal(t, int64(5), x001.Urgent, "urgent = entregas de hoy o vencidas")
	assert.Equal(t, int64(3), x001.Tomorrow)

	x002 := summary["X002"]
	assert.Equal(t, int64(4), x002.Total)
	assert.Equal(t, int64(0), x002.Urgent)
	assert.Equal(t, int64(0), x002.Tomorrow)
}

func TestGetDemandSummary_DosPedidosHoyYManana(t *testing.T) {
	now := time.Now()
	orders := &fakeOrderRepo{open: []*entity.Order{
		orderWithItems(now, "X001", 5),
		orderWithItems(now.AddDate(0, 0, 1), "X001", 3),
	}}
	uc := newDemandUC(orders, nil, nil, nil)

	summary, err := uc.GetDemandSummary()
	require.NoError(t, err)
	assert.Equal(t, demandEntryOf(8, 5, 3), summary["X001"])
}

func TestGetDemandSummary_ComparaSoloFecha(t *testing.T) {
	// entrega hoy a las 23:59 sigue siendo "hoy" aunque ya sea más tarde
	y, m, d := time.Now().Date()
	lateToday := time.Date(y, m, d, 23, 59, 0, 0, time.Local)

	orders := &fakeOrderRepo{open: []*entity.Order{
		orderWithItems(lateToday, "X001", 5),
	}}
	uc := newDemandUC(orders, nil, nil, nil)

	summary, err := uc.GetDemandSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary["X001"].Urgent,
		"la hora del día no debe afectar la clasificación")
}

func TestGetDemandSummary_AcumulaVariosPedidosDelMismoSKU(t *testing.T) {
	now := time.Now()
	orders := &fakeOrderRepo{open: []*entity.Order{
		orderWithItems(now, "X001", 2),
		orderWithItems(now, "X001", 3),
	}}
	uc := newDemandUC(orders, nil, nil, nil)

	summary, err := uc.GetDemandSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary["X001"].Total)
}

func TestGetDemandSummary_SinPedidos_MapaVacio(t *testing.T) {
	uc := newDemandUC(&fakeOrderRepo{}, nil, nil, nil)
	summary, err := uc.GetDemandSummary()
	require.NoError(t, err)
	assert.Empty(t, summary)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetInventoryLevels: filas implícitas en cero
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInventoryLevels_SKUSinFilaApareceEnCero(t *testing.T) {
	skus := &fakeSKURepo{skus: []*entity.SKU{
		{ID: "sku-1", Code: "X001", Name: "Vanilla Dream 6pk", Active: true},
		{ID: "sku-2", Code: "X002", Name: "Choco Bliss 6pk", Active: true},
	}}
	inventory := &fakeInventoryRepo{rows: []*entity.Inventory{
		{SKUID: "sku-1", Staged: 10, Filled: 5, Cased: 2},
	}}
	uc := newDemandUC(&fakeOrderRepo{}, inventory, nil, skus)

	levels, err := uc.GetInventoryLevels()
	require.NoError(t, err)
	require.Len(t, levels, 2)

	assert.Equal(t, "X001", levels[0].SKUCode)
	assert.Equal(t, int64(17), levels[0].Total)

	assert.Equal(t, "X002", levels[1].SKUCode)
	assert.Equal(t, int64(0), levels[1].Staged, "SKU sin fila de inventario = baldes en cero")
	assert.Equal(t, int64(0), levels[1].Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetConfirmedOrders: importes con decimal
// ──────────────────────────────────────────────────────────────────────────────

func TestGetConfirmedOrders_CalculaImportesPorLineaYTotal(t *testing.T) {
	delivery := time.Now().AddDate(0, 0, 2)
	orders := &fakeOrderRepo{confirmed: []*entity.Order{
		{
			ID:             "order-1",
			DispensaryName: "Green Valley",
			Status:         entity.OrderStatusConfirmed,
			DeliveryDate:   delivery,
			Items: []entity.OrderItem{
				{SKUCode: "X001", Quantity: 3, UnitPrice: decimal.RequireFromString("12.50")},
				{SKUCode: "X002", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
			},
		},
	}}
	uc := newDemandUC(orders, nil, nil, nil)

	out, err := uc.GetConfirmedOrders()
	require.NoError(t, err)
	require.Len(t, out, 1)

	o := out[0]
	assert.Equal(t, "Green Valley", o.DispensaryName)
	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].Total.Equal(decimal.RequireFromString("37.50")),
		"3 × 12.50 = 37.50, got %s", o.Items[0].Total)
	assert.True(t, o.Items[1].Total.Equal(decimal.RequireFromString("19.98")))
	assert.True(t, o.Total.Equal(decimal.RequireFromString("57.48")),
		"el total del pedido suma las líneas, got %s", o.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetPackagingTasks: filtro por columna
// ──────────────────────────────────────────────────────────────────────────────

func TestGetPackagingTasks_FiltraPorColumna(t *testing.T) {
	tasks := &fakeTaskRepo{tasks: []*entity.PackagingTask{
		{ID: "t1", CurrentColumn: entity.ColumnToFill, SKUCode: "X001"},
		{ID: "t2", CurrentColumn: entity.ColumnDone, SKUCode: "X001"},
	}}
	uc := newDemandUC(&fakeOrderRepo{}, nil, tasks, nil)

	all, err := uc.GetPackagingTasks("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	done, err := uc.GetPackagingTasks(entity.ColumnDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "t2", done[0].ID)
}
