package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

func seedMedicine(s *fakeStore, id, name string, price float64, quantity, minStock int64) {
	s.medicines[id] = &entity.Medicine{
		ID:            id,
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		Cost:          decimal.NewFromFloat(price / 2),
		Quantity:      quantity,
		MinStockLevel: minStock,
	}
}

func seedCashier(s *fakeStore) string {
	s.users["caj-1"] = &entity.User{ID: "caj-1", Name: "Laura Cajera", Role: entity.RoleCajero}
	return "caj-1"
}

func TestCreateSale_TotalesConsistentes(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Acetaminofén 500mg", 1000, 50, 5)
	uc := newTestUseCase(s)

	resp, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 2, UnitPrice: decimal.NewFromInt(1000)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	// subtotal 2000, impuesto 10% = 200, total 2200
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(2000)), "subtotal esperado 2000, fue %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(decimal.NewFromInt(200)), "impuesto esperado 200, fue %s", resp.Tax)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(2200)), "total esperado 2200, fue %s", resp.Total)
	assert.Equal(t, int64(48), s.medicines["med-1"].Quantity, "el stock debe decrementarse")
	assert.Equal(t, "Laura Cajera", resp.CashierName)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "Acetaminofén 500mg", resp.Details[0].MedicineName)
}

func TestCreateSale_DescuentosPorLineaYGlobales(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Ibuprofeno 400mg", 500, 30, 5)
	uc := newTestUseCase(s)

	resp, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			// 4 × 500 − 200 de descuento de línea = 1800
			{MedicineID: "med-1", Quantity: 4, UnitPrice: decimal.NewFromInt(500), Discount: decimal.NewFromInt(200)},
		},
		PaymentMethod: entity.PaymentMethodCard,
		Discount:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// subtotal 1800, impuesto 180, total = 1800 + 180 − 100 = 1880
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(1800)))
	assert.True(t, resp.Tax.Equal(decimal.NewFromInt(180)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1880)))
}

func TestCreateSale_RegistraMovimientoDeAuditoria(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Loratadina 10mg", 800, 20, 3)
	uc := newTestUseCase(s)

	resp, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 5, UnitPrice: decimal.NewFromInt(800)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeSALE, mov.Type)
	assert.Equal(t, int64(-5), mov.Quantity, "la cantidad del movimiento de venta debe ser negativa")
	assert.Equal(t, resp.ID, mov.TransactionID, "el movimiento debe referenciar la venta")
	assert.Equal(t, cashier, mov.CreatedBy)
}

func TestCreateSale_GeneraAlertaDeBajoStock(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Amoxicilina 500mg", 1200, 6, 5)
	uc := newTestUseCase(s)

	_, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 1, UnitPrice: decimal.NewFromInt(1200)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	// quedó en 5 (= mínimo): debe haber exactamente una alerta HIGH
	require.Len(t, s.alerts, 1)
	a := s.alerts[0]
	assert.Equal(t, entity.AlertTypeStock, a.Type)
	assert.Equal(t, entity.AlertSeverityHigh, a.Severity)
	assert.Equal(t, "Low Stock Alert", a.Title)
	assert.Equal(t, "med-1", a.MedicineID)
	assert.False(t, a.IsRead)
}

func TestCreateSale_SinAlertaConStockSobreElUmbral(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Omeprazol 20mg", 900, 10, 5)
	uc := newTestUseCase(s)

	_, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 1, UnitPrice: decimal.NewFromInt(900)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Empty(t, s.alerts, "9 unidades sobre mínimo 5 no debe generar alerta")
}

func TestCreateSale_AgotadoGeneraAlertaCritica(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Insulina glargina", 45000, 2, 5)
	uc := newTestUseCase(s)

	_, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 2, UnitPrice: decimal.NewFromInt(45000)},
		},
		PaymentMethod: entity.PaymentMethodInsurance,
	})
	require.NoError(t, err)

	require.Len(t, s.alerts, 1)
	assert.Equal(t, entity.AlertSeverityCritical, s.alerts[0].Severity)
	assert.Equal(t, "Out of Stock", s.alerts[0].Title)
	assert.Equal(t, int64(0), s.medicines["med-1"].Quantity)
}

func TestCreateSale_AlertaNoSeDuplica(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Salbutamol inhalador", 15000, 5, 5)
	uc := newTestUseCase(s)

	for i := 0; i < 2; i++ {
		_, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{
				{MedicineID: "med-1", Quantity: 1, UnitPrice: decimal.NewFromInt(15000)},
			},
			PaymentMethod: entity.PaymentMethodCash,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, s.unreadStockAlerts("med-1"),
		"dos ventas bajo el umbral deben dejar una sola alerta no leída")
}

func TestCreateSale_AlertaLeidaPermiteUnaNueva(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Metformina 850mg", 600, 5, 5)
	uc := newTestUseCase(s)

	sell := func() {
		_, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{
				{MedicineID: "med-1", Quantity: 1, UnitPrice: decimal.NewFromInt(600)},
			},
			PaymentMethod: entity.PaymentMethodCash,
		})
		require.NoError(t, err)
	}

	sell()
	require.Len(t, s.alerts, 1)
	s.alerts[0].IsRead = true

	sell()
	assert.Len(t, s.alerts, 2, "con la anterior leída, la venta debe generar una alerta nueva")
	assert.Equal(t, 1, s.unreadStockAlerts("med-1"))
}

func TestCreateSale_StockInsuficienteNoDejaRastro(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Diclofenaco 50mg", 400, 20, 3)
	seedMedicine(s, "med-2", "Naproxeno 250mg", 700, 1, 3)
	uc := newTestUseCase(s)

	_, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 5, UnitPrice: decimal.NewFromInt(400)},
			{MedicineID: "med-2", Quantity: 3, UnitPrice: decimal.NewFromInt(700)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "med-2", stockErr.MedicineID)
	assert.Equal(t, int64(1), stockErr.Available)
	assert.Equal(t, int64(3), stockErr.Requested)

	// todo-o-nada: ningún efecto aplicado
	assert.Equal(t, int64(20), s.medicines["med-1"].Quantity)
	assert.Equal(t, int64(1), s.medicines["med-2"].Quantity)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.details)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.alerts)
}

// Una venta concurrente agota el stock entre el chequeo preliminar y la
// transacción: el re-chequeo bajo bloqueo debe detectarlo y revertir todo.
func TestCreateSale_StockAgotadoDuranteLaTransaccion(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Omeprazol 20mg", 600, 10, 2)
	uc := newRacingUseCase(s, func() {
		// otra venta confirmada se llevó casi todo el stock
		s.medicines["med-1"].Quantity = 2
	})

	_, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 5, UnitPrice: decimal.NewFromInt(600)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// el error refleja el stock visto bajo el bloqueo, no el del chequeo previo
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(5), stockErr.Requested)

	// el efecto de la venta concurrente queda; el nuestro se revierte completo
	assert.Equal(t, int64(2), s.medicines["med-1"].Quantity)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.details)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.alerts)
}

func TestCreateSale_ValidacionesDeEntrada(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Aspirina 100mg", 300, 10, 2)
	uc := newTestUseCase(s)

	item := func(qty int64, price int64) []dto.SaleItemRequest {
		return []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: qty, UnitPrice: decimal.NewFromInt(price)}}
	}

	cases := []struct {
		name    string
		cashier string
		req     dto.CreateSaleRequest
		wantErr error
	}{
		{"carrito vacío", cashier, dto.CreateSaleRequest{PaymentMethod: entity.PaymentMethodCash}, domain.ErrInvalidInput},
		{"cantidad cero", cashier, dto.CreateSaleRequest{Items: item(0, 300), PaymentMethod: entity.PaymentMethodCash}, domain.ErrInvalidInput},
		{"cantidad negativa", cashier, dto.CreateSaleRequest{Items: item(-1, 300), PaymentMethod: entity.PaymentMethodCash}, domain.ErrInvalidInput},
		{"precio cero", cashier, dto.CreateSaleRequest{Items: item(1, 0), PaymentMethod: entity.PaymentMethodCash}, domain.ErrInvalidInput},
		{"método de pago inválido", cashier, dto.CreateSaleRequest{Items: item(1, 300), PaymentMethod: "BITCOIN"}, domain.ErrInvalidInput},
		{"sin cajero", "", dto.CreateSaleRequest{Items: item(1, 300), PaymentMethod: entity.PaymentMethodCash}, domain.ErrInvalidInput},
		{"cliente inexistente", cashier, dto.CreateSaleRequest{CustomerID: "no-existe", Items: item(1, 300), PaymentMethod: entity.PaymentMethodCash}, domain.ErrNotFound},
		{"medicamento inexistente", cashier, dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{MedicineID: "fantasma", Quantity: 1, UnitPrice: decimal.NewFromInt(300)}},
			PaymentMethod: entity.PaymentMethodCash,
		}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateSale(context.Background(), tc.cashier, tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "esperaba %v, fue %v", tc.wantErr, err)
			assert.Equal(t, int64(10), s.medicines["med-1"].Quantity, "el stock no debe cambiar")
		})
	}
}

func seedPrescription(s *fakeStore, id, customerID string, items ...entity.PrescriptionItem) {
	s.prescriptions[id] = &entity.Prescription{
		ID:         id,
		CustomerID: customerID,
		DoctorName: "Dra. Gómez",
		Status:     entity.PrescriptionStatusPending,
		Items:      items,
		CreatedAt:  time.Now(),
	}
}

func TestFillPrescription_UsaElPrecioVigente(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	s.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Pedro Paciente"}
	seedMedicine(s, "med-1", "Losartán 50mg", 1000, 30, 5)
	seedPrescription(s, "rx-1", "cli-1",
		entity.PrescriptionItem{ID: "it-1", PrescriptionID: "rx-1", MedicineID: "med-1", Quantity: 3, Dosage: "1 cada 12h"},
	)
	uc := newTestUseCase(s)

	// el precio sube después de emitida la fórmula
	s.medicines["med-1"].Price = decimal.NewFromInt(1500)

	resp, err := uc.FillPrescription(context.Background(), cashier, "rx-1", dto.FillPrescriptionRequest{})
	require.NoError(t, err)

	// 3 × 1500 (precio vigente, no el de la emisión) = 4500; impuesto 450
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(4500)), "debe usar el precio vigente, subtotal fue %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(decimal.NewFromInt(450)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(4950)))
	assert.Equal(t, entity.PaymentMethodCash, resp.PaymentMethod, "el método de pago por defecto es CASH")
	assert.Equal(t, "rx-1", resp.PrescriptionID)
	assert.Equal(t, "Pedro Paciente", resp.CustomerName)
	assert.Equal(t, entity.PrescriptionStatusFilled, s.prescriptions["rx-1"].Status)
	assert.Equal(t, int64(27), s.medicines["med-1"].Quantity)
}

func TestFillPrescription_DobleDespachoFalla(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	s.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Pedro Paciente"}
	seedMedicine(s, "med-1", "Losartán 50mg", 1000, 30, 5)
	seedPrescription(s, "rx-1", "cli-1",
		entity.PrescriptionItem{ID: "it-1", PrescriptionID: "rx-1", MedicineID: "med-1", Quantity: 2},
	)
	uc := newTestUseCase(s)

	_, err := uc.FillPrescription(context.Background(), cashier, "rx-1", dto.FillPrescriptionRequest{})
	require.NoError(t, err)

	_, err = uc.FillPrescription(context.Background(), cashier, "rx-1", dto.FillPrescriptionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, s.sales, 1, "el segundo despacho no debe crear otra venta")
	assert.Equal(t, int64(28), s.medicines["med-1"].Quantity, "el stock solo se decrementa una vez")
}

// Dos despachos simultáneos: el segundo pasa el chequeo preliminar mientras la
// fórmula aún es PENDING, pero el guard de transición dentro de la tx (0 filas
// afectadas si el estado cambió) lo rechaza y revierte el decremento de stock.
func TestFillPrescription_CarreraDeDespachoRevierteElStock(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	s.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Pedro Paciente"}
	seedMedicine(s, "med-1", "Metformina 850mg", 800, 30, 5)
	seedPrescription(s, "rx-1", "cli-1",
		entity.PrescriptionItem{ID: "it-1", PrescriptionID: "rx-1", MedicineID: "med-1", Quantity: 4},
	)
	uc := newRacingUseCase(s, func() {
		// el otro despacho confirmó primero
		s.prescriptions["rx-1"].Status = entity.PrescriptionStatusFilled
	})

	_, err := uc.FillPrescription(context.Background(), cashier, "rx-1", dto.FillPrescriptionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// el decremento hecho antes del guard se revierte con el resto de la tx
	assert.Equal(t, int64(30), s.medicines["med-1"].Quantity)
	assert.Equal(t, entity.PrescriptionStatusFilled, s.prescriptions["rx-1"].Status)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.movements)
}

func TestFillPrescription_StockInsuficienteMantienePendiente(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	s.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Pedro Paciente"}
	seedMedicine(s, "med-1", "Enalapril 20mg", 500, 1, 2)
	seedPrescription(s, "rx-1", "cli-1",
		entity.PrescriptionItem{ID: "it-1", PrescriptionID: "rx-1", MedicineID: "med-1", Quantity: 5},
	)
	uc := newTestUseCase(s)

	_, err := uc.FillPrescription(context.Background(), cashier, "rx-1", dto.FillPrescriptionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, entity.PrescriptionStatusPending, s.prescriptions["rx-1"].Status,
		"la fórmula debe seguir despachable")
	assert.Equal(t, int64(1), s.medicines["med-1"].Quantity)
	assert.Empty(t, s.sales)
}

func TestFillPrescription_FormulaInexistente(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	uc := newTestUseCase(s)

	_, err := uc.FillPrescription(context.Background(), cashier, "rx-nope", dto.FillPrescriptionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSale_ExpandeNombres(t *testing.T) {
	s := newFakeStore()
	cashier := seedCashier(s)
	seedMedicine(s, "med-1", "Cetirizina 10mg", 350, 40, 5)
	uc := newTestUseCase(s)

	created, err := uc.CreateSale(context.Background(), cashier, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 2, UnitPrice: decimal.NewFromInt(350)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.Total.Equal(created.Total))
	require.Len(t, got.Details, 1)
	assert.Equal(t, "Cetirizina 10mg", got.Details[0].MedicineName)
}
