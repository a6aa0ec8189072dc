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
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/normalize"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// psql genera consultas con placeholders $1, $2, ... (formato PostgreSQL).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador de persistencia para medicamentos. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

const medicineColumns = `id, name, generic_name, category, description, price, cost, quantity, min_stock_level, expiry_date, batch_number, manufacturer, created_at, updated_at`

// dbMedicine fila de medicines para escaneo con pgxscan.
type dbMedicine struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	GenericName   string          `db:"generic_name"`
	Category      string          `db:"category"`
	Description   string          `db:"description"`
	Price         decimal.Decimal `db:"price"`
	Cost          decimal.Decimal `db:"cost"`
	Quantity      int64           `db:"quantity"`
	MinStockLevel int64           `db:"min_stock_level"`
	ExpiryDate    time.Time       `db:"expiry_date"`
	BatchNumber   string          `db:"batch_number"`
	Manufacturer  string          `db:"manufacturer"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (d *dbMedicine) toEntity() *entity.Medicine {
	return &entity.Medicine{
		ID:            d.ID,
		Name:          d.Name,
		GenericName:   d.GenericName,
		Category:      d.Category,
		Description:   d.Description,
		Price:         d.Price,
		Cost:          d.Cost,
		Quantity:      d.Quantity,
		MinStockLevel: d.MinStockLevel,
		ExpiryDate:    d.ExpiryDate,
		BatchNumber:   d.BatchNumber,
		Manufacturer:  d.Manufacturer,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// searchText texto normalizado para búsqueda sin tildes (columna search_text).
func searchText(m *entity.Medicine) string {
	return normalize.Search(m.Name + " " + m.GenericName)
}

// Create persiste un medicamento. Cost inicia en 0; el nombre es único.
func (r *MedicineRepo) Create(m *entity.Medicine) error {
	query := `
		INSERT INTO medicines (id, name, generic_name, category, description, price, cost, quantity, min_stock_level, expiry_date, batch_number, manufacturer, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.GenericName, m.Category, m.Description, m.Price, m.Cost,
		m.Quantity, m.MinStockLevel, m.ExpiryDate, m.BatchNumber, m.Manufacturer,
		searchText(m), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID; nil si no existe.
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	return r.getOne(`SELECT `+medicineColumns+` FROM medicines WHERE id = $1`, id)
}

// GetByName obtiene un medicamento por nombre exacto; nil si no existe.
func (r *MedicineRepo) GetByName(name string) (*entity.Medicine, error) {
	return r.getOne(`SELECT `+medicineColumns+` FROM medicines WHERE name = $1`, name)
}

// GetForUpdate obtiene el medicamento bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *MedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	return r.getOne(`SELECT `+medicineColumns+` FROM medicines WHERE id = $1 FOR UPDATE`, id)
}

func (r *MedicineRepo) getOne(query string, arg any) (*entity.Medicine, error) {
	var d dbMedicine
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&d.ID, &d.Name, &d.GenericName, &d.Category, &d.Description, &d.Price, &d.Cost,
		&d.Quantity, &d.MinStockLevel, &d.ExpiryDate, &d.BatchNumber, &d.Manufacturer,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return d.toEntity(), nil
}

// Update actualiza los datos del catálogo. No toca quantity ni cost
// (se manejan vía ventas y movimientos).
func (r *MedicineRepo) Update(m *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, generic_name = $3, category = $4, description = $5, price = $6,
		    min_stock_level = $7, expiry_date = $8, batch_number = $9, manufacturer = $10,
		    search_text = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.GenericName, m.Category, m.Description, m.Price,
		m.MinStockLevel, m.ExpiryDate, m.BatchNumber, m.Manufacturer,
		searchText(m), m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update medicine: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (usado por las entradas de inventario).
func (r *MedicineRepo) UpdateCost(medicineID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE medicines SET cost = $2, updated_at = now() WHERE id = $1`,
		medicineID, cost,
	)
	if err != nil {
		return fmt.Errorf("update medicine cost: %w", err)
	}
	return nil
}

// AdjustQuantity aplica un delta al stock con el guard quantity + delta >= 0.
// Si el guard no deja pasar el UPDATE retorna ErrInsufficientStock: el stock
// nunca queda negativo aunque el chequeo previo haya quedado obsoleto.
func (r *MedicineRepo) AdjustQuantity(id string, delta int64) (int64, error) {
	var newQuantity int64
	err := r.q.QueryRow(context.Background(), `
		UPDATE medicines
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity`,
		id, delta,
	).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("adjust medicine quantity: %w", err)
	}
	return newQuantity, nil
}

// List busca en el catálogo con filtros dinámicos (término normalizado,
// categoría, bajo stock, próximos a vencer).
func (r *MedicineRepo) List(filter repository.MedicineFilter) ([]*entity.Medicine, error) {
	builder := psql.Select(medicineColumns).
		From("medicines").
		OrderBy("name ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.Search != "" {
		builder = builder.Where(sq.Like{"search_text": "%" + filter.Search + "%"})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.LowStock {
		builder = builder.Where("quantity <= min_stock_level")
	}
	if filter.ExpiringDays > 0 {
		builder = builder.Where("expiry_date <= now() + make_interval(days => ?)", filter.ExpiringDays)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build medicine query: %w", err)
	}

	var rows []*dbMedicine
	if err := pgxscan.Select(context.Background(), r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	list := make([]*entity.Medicine, 0, len(rows))
	for _, d := range rows {
		list = append(list, d.toEntity())
	}
	return list, nil
}

// Delete elimina un medicamento del catálogo.
func (r *MedicineRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
