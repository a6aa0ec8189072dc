package repository

import (
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// SaleFilter filtros dinámicos del listado de ventas.
type SaleFilter struct {
	From          time.Time
	To            time.Time
	PaymentMethod string
	CashierID     string
	CustomerID    string
	Limit         int
	Offset        int
}

// SaleRepository define el puerto de persistencia para Sale y sus detalles.
// Las ventas son inmutables: no hay Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateDetail(detail *entity.SaleDetail) error
	GetByID(id string) (*entity.Sale, error)
	GetDetailsBySaleID(saleID string) ([]*entity.SaleDetail, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
}
