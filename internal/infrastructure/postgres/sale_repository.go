package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las ventas son inmutables: solo INSERT y SELECT.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// dbSale fila de sales para escaneo con pgxscan.
type dbSale struct {
	ID             string          `db:"id"`
	CustomerID     string          `db:"customer_id"`
	PrescriptionID string          `db:"prescription_id"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	Tax            decimal.Decimal `db:"tax"`
	Discount       decimal.Decimal `db:"discount"`
	Total          decimal.Decimal `db:"total"`
	PaymentMethod  string          `db:"payment_method"`
	CashierID      string          `db:"cashier_id"`
	Notes          string          `db:"notes"`
	SaleDate       time.Time       `db:"sale_date"`
	CreatedAt      time.Time       `db:"created_at"`
}

func (d *dbSale) toEntity() *entity.Sale {
	return &entity.Sale{
		ID:             d.ID,
		CustomerID:     d.CustomerID,
		PrescriptionID: d.PrescriptionID,
		Subtotal:       d.Subtotal,
		Tax:            d.Tax,
		Discount:       d.Discount,
		Total:          d.Total,
		PaymentMethod:  d.PaymentMethod,
		CashierID:      d.CashierID,
		Notes:          d.Notes,
		SaleDate:       d.SaleDate,
		CreatedAt:      d.CreatedAt,
	}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, prescription_id, subtotal, tax, discount, total, payment_method, cashier_id, notes, sale_date, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CustomerID, s.PrescriptionID, s.Subtotal, s.Tax, s.Discount, s.Total,
		s.PaymentMethod, s.CashierID, s.Notes, s.SaleDate, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la venta.
func (r *SaleRepo) CreateDetail(d *entity.SaleDetail) error {
	query := `
		INSERT INTO sale_details (id, sale_id, medicine_id, quantity, unit_price, discount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.SaleID, d.MedicineID, d.Quantity, d.UnitPrice, d.Discount, d.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta; nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, COALESCE(customer_id, ''), COALESCE(prescription_id, ''), subtotal, tax, discount, total, payment_method, cashier_id, notes, sale_date, created_at
		FROM sales WHERE id = $1`
	var d dbSale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.CustomerID, &d.PrescriptionID, &d.Subtotal, &d.Tax, &d.Discount, &d.Total,
		&d.PaymentMethod, &d.CashierID, &d.Notes, &d.SaleDate, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return d.toEntity(), nil
}

// GetDetailsBySaleID devuelve las líneas de una venta.
func (r *SaleRepo) GetDetailsBySaleID(saleID string) ([]*entity.SaleDetail, error) {
	query := `
		SELECT id, sale_id, medicine_id, quantity, unit_price, discount, subtotal
		FROM sale_details WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.MedicineID, &d.Quantity, &d.UnitPrice, &d.Discount, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// List filtra ventas por rango de fechas, método de pago, cajero y cliente.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	builder := psql.Select(
		`id, COALESCE(customer_id, '') AS customer_id, COALESCE(prescription_id, '') AS prescription_id,
		 subtotal, tax, discount, total, payment_method, cashier_id, notes, sale_date, created_at`).
		From("sales").
		OrderBy("sale_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"sale_date": filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.LtOrEq{"sale_date": filter.To})
	}
	if filter.PaymentMethod != "" {
		builder = builder.Where(sq.Eq{"payment_method": filter.PaymentMethod})
	}
	if filter.CashierID != "" {
		builder = builder.Where(sq.Eq{"cashier_id": filter.CashierID})
	}
	if filter.CustomerID != "" {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sale query: %w", err)
	}

	var rows []*dbSale
	if err := pgxscan.Select(context.Background(), r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := make([]*entity.Sale, 0, len(rows))
	for _, d := range rows {
		list = append(list, d.toEntity())
	}
	return list, nil
}
