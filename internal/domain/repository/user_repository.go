package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para el personal (staff).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
}
