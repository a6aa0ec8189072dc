package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reportes de ventas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardCounters conteos rápidos del día y del estado del inventario.
func (r *AnalyticsRepo) GetDashboardCounters(ctx context.Context, now time.Time, expiryWindowDays int) (*repository.DashboardCounters, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM sales WHERE sale_date::date = $1::date)                 AS sales_today,
	    (SELECT COALESCE(SUM(total), 0) FROM sales WHERE sale_date::date = $1::date)  AS revenue_today,
	    (SELECT COUNT(*) FROM medicines WHERE quantity <= min_stock_level)            AS low_stock_count,
	    (SELECT COUNT(*) FROM medicines
	        WHERE expiry_date <= $1 + make_interval(days => $2))                      AS expiring_count,
	    (SELECT COUNT(*) FROM prescriptions WHERE status = 'PENDING')                 AS pending_prescriptions,
	    (SELECT COUNT(*) FROM alerts WHERE is_read = false)                           AS unread_alerts`

	var c repository.DashboardCounters
	err := r.pool.QueryRow(ctx, query, now, expiryWindowDays).Scan(
		&c.SalesToday,
		&c.RevenueToday,
		&c.LowStockCount,
		&c.ExpiringCount,
		&c.PendingPrescriptions,
		&c.UnreadAlerts,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDashboardCounters: %w", err)
	}
	return &c, nil
}

// GetDailySales serie diaria de ventas del rango [from, to].
func (r *AnalyticsRepo) GetDailySales(ctx context.Context, from, to time.Time) ([]repository.DailySalesRow, error) {
	const query = `
	SELECT
	    sale_date::date       AS day,
	    COUNT(*)              AS sale_count,
	    SUM(subtotal)         AS subtotal,
	    SUM(tax)              AS tax,
	    SUM(total)            AS total
	FROM sales
	WHERE sale_date BETWEEN $1 AND $2
	GROUP BY sale_date::date
	ORDER BY day ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDailySales: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Day, &row.Count, &row.Subtotal, &row.Tax, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetDailySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSalesByPaymentMethod desglose de ventas del rango por método de pago.
func (r *AnalyticsRepo) GetSalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]repository.PaymentMethodRow, error) {
	const query = `
	SELECT payment_method, COUNT(*) AS sale_count, SUM(total) AS total
	FROM sales
	WHERE sale_date BETWEEN $1 AND $2
	GROUP BY payment_method
	ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByPaymentMethod: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentMethodRow
	for rows.Next() {
		var row repository.PaymentMethodRow
		if err := rows.Scan(&row.PaymentMethod, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByPaymentMethod scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopMedicines medicamentos con mayor ingreso del rango.
func (r *AnalyticsRepo) GetTopMedicines(ctx context.Context, from, to time.Time, limit int) ([]repository.TopMedicineRow, error) {
	const query = `
	SELECT
	    m.id,
	    m.name,
	    SUM(d.quantity) AS units_sold,
	    SUM(d.subtotal) AS revenue
	FROM sales s
	JOIN sale_details d ON d.sale_id = s.id
	JOIN medicines    m ON m.id      = d.medicine_id
	WHERE s.sale_date BETWEEN $1 AND $2
	GROUP BY m.id, m.name
	ORDER BY revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopMedicines: %w", err)
	}
	defer rows.Close()

	var results []repository.TopMedicineRow
	for rows.Next() {
		var row repository.TopMedicineRow
		if err := rows.Scan(&row.MedicineID, &row.Name, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopMedicines scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
