package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups repositories bound to one transaction.
type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// UnitOfWork runs fn inside a single database transaction. Returning an error from fn
// rolls back every write made through the supplied repositories.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(repos Repositories) error) error
}

type GORMUnitOfWork struct {
	db *gorm.DB
}

func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{db: db}
}

func (u *GORMUnitOfWork) RunInTx(ctx context.Context, fn func(repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repositories{
			Users:    NewGORMUserRepository(tx),
			Products: NewGORMProductRepository(tx),
			Carts:    NewGORMCartRepository(tx),
			Orders:   NewGORMOrderRepository(tx),
		})
	})
}
