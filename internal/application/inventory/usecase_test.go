package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// Fakes mínimos del paquete: solo lo que el caso de uso de inventario toca.

type memStore struct {
	medicines map[string]*entity.Medicine
	movements []*entity.InventoryMovement
	alerts    []*entity.Alert
}

type memMedicineRepo struct{ s *memStore }

func (r *memMedicineRepo) Create(m *entity.Medicine) error { r.s.medicines[m.ID] = m; return nil }
func (r *memMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	if m, ok := r.s.medicines[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}
func (r *memMedicineRepo) GetByName(string) (*entity.Medicine, error) { return nil, nil }
func (r *memMedicineRepo) Update(m *entity.Medicine) error            { r.s.medicines[m.ID] = m; return nil }
func (r *memMedicineRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.s.medicines[id].Cost = cost
	return nil
}
func (r *memMedicineRepo) List(filter repository.MedicineFilter) ([]*entity.Medicine, error) {
	now := time.Now()
	var out []*entity.Medicine
	for _, m := range r.s.medicines {
		if filter.ExpiringDays > 0 && !m.ExpiresWithin(filter.ExpiringDays, now) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memMedicineRepo) Delete(id string) error { delete(r.s.medicines, id); return nil }
func (r *memMedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) { return r.GetByID(id) }
func (r *memMedicineRepo) AdjustQuantity(id string, delta int64) (int64, error) {
	m := r.s.medicines[id]
	if m.Quantity+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	m.Quantity += delta
	return m.Quantity, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *memMovementRepo) ListByMedicine(medicineID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.MedicineID == medicineID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memAlertRepo struct{ s *memStore }

func (r *memAlertRepo) Create(a *entity.Alert) error {
	cp := *a
	r.s.alerts = append(r.s.alerts, &cp)
	return nil
}
func (r *memAlertRepo) FindUnread(alertType, medicineID string) (*entity.Alert, error) {
	for _, a := range r.s.alerts {
		if a.Type == alertType && a.MedicineID == medicineID && !a.IsRead {
			return a, nil
		}
	}
	return nil, nil
}
func (r *memAlertRepo) List(bool, string, int, int) ([]*entity.Alert, error) { return r.s.alerts, nil }
func (r *memAlertRepo) MarkRead(string) error                                { return nil }
func (r *memAlertRepo) MarkAllRead() error                                   { return nil }
func (r *memAlertRepo) CountUnread() (int, error)                            { return len(r.s.alerts), nil }

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunMovement(ctx context.Context, fn func(
	repository.MedicineRepository,
	repository.AlertRepository,
	repository.InventoryMovementRepository,
) error) error {
	return fn(&memMedicineRepo{r.s}, &memAlertRepo{r.s}, &memMovementRepo{r.s})
}

func newMemUseCase(s *memStore) *UseCase {
	return NewUseCase(&memTxRunner{s}, &memMedicineRepo{s}, &memMovementRepo{s}, &memAlertRepo{s}, 30)
}

func seedMed(s *memStore, id string, qty, minStock int64, cost float64) {
	s.medicines[id] = &entity.Medicine{
		ID:            id,
		Name:          "Medicamento " + id,
		Quantity:      qty,
		MinStockLevel: minStock,
		Cost:          decimal.NewFromFloat(cost),
	}
}

func newMemStore() *memStore {
	return &memStore{medicines: make(map[string]*entity.Medicine)}
}

func TestRegisterMovement_EntradaRecalculaCostoPromedio(t *testing.T) {
	s := newMemStore()
	seedMed(s, "med-1", 10, 2, 100) // 10 unidades a costo 100
	uc := newMemUseCase(s)

	cost := decimal.NewFromInt(200)
	resp, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		MedicineID: "med-1",
		Type:       entity.MovementTypeIN,
		Quantity:   10, // 10 unidades a costo 200
		UnitCost:   &cost,
	})
	require.NoError(t, err)

	// promedio ponderado: (10·100 + 10·200) / 20 = 150
	assert.True(t, s.medicines["med-1"].Cost.Equal(decimal.NewFromInt(150)),
		"costo promedio esperado 150, fue %s", s.medicines["med-1"].Cost)
	assert.Equal(t, int64(20), s.medicines["med-1"].Quantity)
	assert.Equal(t, int64(10), resp.Quantity)
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(2000)))
}

func TestRegisterMovement_EntradaSobreStockCeroAdoptaElCosto(t *testing.T) {
	s := newMemStore()
	seedMed(s, "med-1", 0, 2, 0)
	uc := newMemUseCase(s)

	cost := decimal.NewFromFloat(123.45)
	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		MedicineID: "med-1",
		Type:       entity.MovementTypeIN,
		Quantity:   5,
		UnitCost:   &cost,
	})
	require.NoError(t, err)
	assert.True(t, s.medicines["med-1"].Cost.Equal(cost))
}

func TestRegisterMovement_SalidaDecrementaYAlerta(t *testing.T) {
	s := newMemStore()
	seedMed(s, "med-1", 6, 5, 80)
	uc := newMemUseCase(s)

	resp, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		MedicineID: "med-1",
		Type:       entity.MovementTypeOUT,
		Quantity:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), s.medicines["med-1"].Quantity)
	assert.Equal(t, int64(-2), resp.Quantity, "la salida se registra con signo negativo")
	require.Len(t, s.alerts, 1, "4 bajo mínimo 5 debe generar alerta de bajo stock")
	assert.Equal(t, entity.AlertTypeStock, s.alerts[0].Type)
}

func TestRegisterMovement_SalidaMayorAlStockFalla(t *testing.T) {
	s := newMemStore()
	seedMed(s, "med-1", 3, 1, 80)
	uc := newMemUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		MedicineID: "med-1",
		Type:       entity.MovementTypeOUT,
		Quantity:   5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), s.medicines["med-1"].Quantity, "el stock no debe cambiar")
	assert.Empty(t, s.movements)
}

func TestRegisterMovement_AjusteNegativoNuncaBajoDeCero(t *testing.T) {
	s := newMemStore()
	seedMed(s, "med-1", 4, 1, 80)
	uc := newMemUseCase(s)

	// ajuste válido hacia abajo
	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		MedicineID: "med-1",
		Type:       entity.MovementTypeADJUSTMENT,
		Quantity:   -3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.medicines["med-1"].Quantity)

	// ajuste que dejaría el stock negativo
	_, err = uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		MedicineID: "med-1",
		Type:       entity.MovementTypeADJUSTMENT,
		Quantity:   -2,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(1), s.medicines["med-1"].Quantity)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	s := newMemStore()
	seedMed(s, "med-1", 10, 1, 80)
	uc := newMemUseCase(s)

	cases := []struct {
		name string
		req  dto.RegisterMovementRequest
	}{
		{"sin medicamento", dto.RegisterMovementRequest{Type: entity.MovementTypeOUT, Quantity: 1}},
		{"entrada sin costo", dto.RegisterMovementRequest{MedicineID: "med-1", Type: entity.MovementTypeIN, Quantity: 1}},
		{"entrada negativa", dto.RegisterMovementRequest{MedicineID: "med-1", Type: entity.MovementTypeIN, Quantity: -1}},
		{"salida negativa", dto.RegisterMovementRequest{MedicineID: "med-1", Type: entity.MovementTypeOUT, Quantity: -1}},
		{"ajuste cero", dto.RegisterMovementRequest{MedicineID: "med-1", Type: entity.MovementTypeADJUSTMENT, Quantity: 0}},
		{"tipo desconocido", dto.RegisterMovementRequest{MedicineID: "med-1", Type: "VENTA", Quantity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(context.Background(), "user-1", tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestExpiryScan_EsIdempotente(t *testing.T) {
	s := newMemStore()
	seedMed(s, "med-1", 10, 1, 50)
	s.medicines["med-1"].ExpiryDate = time.Now().AddDate(0, 0, 10) // vence en 10 días
	seedMed(s, "med-2", 10, 1, 50)
	s.medicines["med-2"].ExpiryDate = time.Now().AddDate(0, 0, -1) // ya vencido
	seedMed(s, "med-3", 10, 1, 50)
	s.medicines["med-3"].ExpiryDate = time.Now().AddDate(1, 0, 0) // fuera de ventana
	uc := newMemUseCase(s)

	first, err := uc.ExpiryScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Scanned)
	assert.Equal(t, 2, first.Raised)

	// el vencido debe salir CRITICAL
	criticals := 0
	for _, a := range s.alerts {
		require.Equal(t, entity.AlertTypeExpiry, a.Type)
		if a.Severity == entity.AlertSeverityCritical {
			criticals++
		}
	}
	assert.Equal(t, 1, criticals)

	second, err := uc.ExpiryScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Raised, "el segundo barrido no debe duplicar alertas")
	assert.Len(t, s.alerts, 2)
}
