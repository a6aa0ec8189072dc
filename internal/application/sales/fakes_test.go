package sales

// Fakes en memoria para probar la transacción de venta sin base de datos.
// Un fakeStore central guarda el estado; cada puerto de repositorio tiene su
// fake apuntando al mismo store. fakeTxRunner simula la atomicidad con
// snapshot/restore del estado completo.

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

type fakeStore struct {
	medicines     map[string]*entity.Medicine
	customers     map[string]*entity.Customer
	users         map[string]*entity.User
	prescriptions map[string]*entity.Prescription
	sales         []*entity.Sale
	details       []*entity.SaleDetail
	alerts        []*entity.Alert
	movements     []*entity.InventoryMovement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		medicines:     make(map[string]*entity.Medicine),
		customers:     make(map[string]*entity.Customer),
		users:         make(map[string]*entity.User),
		prescriptions: make(map[string]*entity.Prescription),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, m := range s.medicines {
		cp := *m
		c.medicines[id] = &cp
	}
	for id, cu := range s.customers {
		cp := *cu
		c.customers[id] = &cp
	}
	for id, u := range s.users {
		cp := *u
		c.users[id] = &cp
	}
	for id, p := range s.prescriptions {
		cp := *p
		cp.Items = append([]entity.PrescriptionItem(nil), p.Items...)
		c.prescriptions[id] = &cp
	}
	for _, v := range s.sales {
		cp := *v
		c.sales = append(c.sales, &cp)
	}
	for _, d := range s.details {
		cp := *d
		c.details = append(c.details, &cp)
	}
	for _, a := range s.alerts {
		cp := *a
		c.alerts = append(c.alerts, &cp)
	}
	for _, m := range s.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	return c
}

func (s *fakeStore) restore(from *fakeStore) { *s = *from }

// unreadStockAlerts cuenta alertas STOCK no leídas para un medicamento.
func (s *fakeStore) unreadStockAlerts(medicineID string) int {
	n := 0
	for _, a := range s.alerts {
		if a.Type == entity.AlertTypeStock && a.MedicineID == medicineID && !a.IsRead {
			n++
		}
	}
	return n
}

// --- MedicineRepository ---

type fakeMedicineRepo struct{ s *fakeStore }

func (r *fakeMedicineRepo) Create(m *entity.Medicine) error {
	cp := *m
	r.s.medicines[m.ID] = &cp
	return nil
}

func (r *fakeMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	m, ok := r.s.medicines[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMedicineRepo) GetByName(name string) (*entity.Medicine, error) {
	for _, m := range r.s.medicines {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMedicineRepo) Update(m *entity.Medicine) error {
	cp := *m
	r.s.medicines[m.ID] = &cp
	return nil
}

func (r *fakeMedicineRepo) UpdateCost(id string, cost decimal.Decimal) error {
	if m, ok := r.s.medicines[id]; ok {
		m.Cost = cost
	}
	return nil
}

func (r *fakeMedicineRepo) List(filter repository.MedicineFilter) ([]*entity.Medicine, error) {
	out := make([]*entity.Medicine, 0, len(r.s.medicines))
	for _, m := range r.s.medicines {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMedicineRepo) Delete(id string) error {
	delete(r.s.medicines, id)
	return nil
}

func (r *fakeMedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	return r.GetByID(id)
}

func (r *fakeMedicineRepo) AdjustQuantity(id string, delta int64) (int64, error) {
	m, ok := r.s.medicines[id]
	if !ok {
		return 0, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	if m.Quantity+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	m.Quantity += delta
	return m.Quantity, nil
}

// --- CustomerRepository ---

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) List(search string, limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.s.customers, id)
	return nil
}

// --- UserRepository ---

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// --- PrescriptionRepository ---

type fakePrescriptionRepo struct{ s *fakeStore }

func (r *fakePrescriptionRepo) Create(p *entity.Prescription) error {
	cp := *p
	cp.Items = append([]entity.PrescriptionItem(nil), p.Items...)
	r.s.prescriptions[p.ID] = &cp
	return nil
}

func (r *fakePrescriptionRepo) GetByIDWithItems(id string) (*entity.Prescription, error) {
	p, ok := r.s.prescriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Items = append([]entity.PrescriptionItem(nil), p.Items...)
	return &cp, nil
}

func (r *fakePrescriptionRepo) List(status, customerID string, limit, offset int) ([]*entity.Prescription, error) {
	out := make([]*entity.Prescription, 0, len(r.s.prescriptions))
	for _, p := range r.s.prescriptions {
		if status != "" && p.Status != status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePrescriptionRepo) UpdateStatus(id, fromStatus, toStatus string) error {
	p, ok := r.s.prescriptions[id]
	if !ok {
		return fmt.Errorf("%w: fórmula %s", domain.ErrNotFound, id)
	}
	if p.Status != fromStatus {
		return fmt.Errorf("%w: la fórmula está en estado %s", domain.ErrInvalidState, p.Status)
	}
	p.Status = toStatus
	return nil
}

// --- SaleRepository ---

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	cp.Details = nil
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) CreateDetail(d *entity.SaleDetail) error {
	cp := *d
	r.s.details = append(r.s.details, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, v := range r.s.sales {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetDetailsBySaleID(saleID string) ([]*entity.SaleDetail, error) {
	var out []*entity.SaleDetail
	for _, d := range r.s.details {
		if d.SaleID == saleID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for _, v := range r.s.sales {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

// --- AlertRepository ---

type fakeAlertRepo struct{ s *fakeStore }

func (r *fakeAlertRepo) Create(a *entity.Alert) error {
	cp := *a
	r.s.alerts = append(r.s.alerts, &cp)
	return nil
}

func (r *fakeAlertRepo) FindUnread(alertType, medicineID string) (*entity.Alert, error) {
	for _, a := range r.s.alerts {
		if a.Type == alertType && a.MedicineID == medicineID && !a.IsRead {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) List(onlyUnread bool, alertType string, limit, offset int) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if onlyUnread && a.IsRead {
			continue
		}
		if alertType != "" && a.Type != alertType {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAlertRepo) MarkRead(id string) error {
	for _, a := range r.s.alerts {
		if a.ID == id {
			a.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAlertRepo) MarkAllRead() error {
	for _, a := range r.s.alerts {
		a.IsRead = true
	}
	return nil
}

func (r *fakeAlertRepo) CountUnread() (int, error) {
	n := 0
	for _, a := range r.s.alerts {
		if !a.IsRead {
			n++
		}
	}
	return n, nil
}

// --- InventoryMovementRepository ---

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByMedicine(medicineID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.MedicineID == medicineID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- SaleTxRunner ---

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	medicineRepo repository.MedicineRepository,
	saleRepo repository.SaleRepository,
	alertRepo repository.AlertRepository,
	movementRepo repository.InventoryMovementRepository,
	prescriptionRepo repository.PrescriptionRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(
		&fakeMedicineRepo{s: r.s},
		&fakeSaleRepo{s: r.s},
		&fakeAlertRepo{s: r.s},
		&fakeMovementRepo{s: r.s},
		&fakePrescriptionRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

// racingTxRunner simula una escritura concurrente confirmada entre el chequeo
// preliminar y la transacción: ejecuta before una sola vez justo antes de
// abrir la tx, como si otra venta hubiera hecho commit en ese hueco.
type racingTxRunner struct {
	inner  *fakeTxRunner
	before func()
}

func (r *racingTxRunner) RunSale(ctx context.Context, fn func(
	medicineRepo repository.MedicineRepository,
	saleRepo repository.SaleRepository,
	alertRepo repository.AlertRepository,
	movementRepo repository.InventoryMovementRepository,
	prescriptionRepo repository.PrescriptionRepository,
) error) error {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	return r.inner.RunSale(ctx, fn)
}

// newRacingUseCase como newTestUseCase, pero con un hook que corre entre el
// chequeo preliminar y la transacción.
func newRacingUseCase(s *fakeStore, before func()) *SaleUseCase {
	return NewSaleUseCase(
		&racingTxRunner{inner: &fakeTxRunner{s: s}, before: before},
		&fakeMedicineRepo{s: s},
		&fakeCustomerRepo{s: s},
		&fakePrescriptionRepo{s: s},
		&fakeSaleRepo{s: s},
		&fakeUserRepo{s: s},
		nil,
	)
}

// newTestUseCase arma el caso de uso completo sobre un fakeStore.
func newTestUseCase(s *fakeStore) *SaleUseCase {
	return NewSaleUseCase(
		&fakeTxRunner{s: s},
		&fakeMedicineRepo{s: s},
		&fakeCustomerRepo{s: s},
		&fakePrescriptionRepo{s: s},
		&fakeSaleRepo{s: s},
		&fakeUserRepo{s: s},
		nil,
	)
}
