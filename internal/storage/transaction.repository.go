package storage

import (
	"context"

	"github.com/ticoencargo/cartera/internal/model"
	"github.com/ticoencargo/cartera/pkg/pg"
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

// List returns every transaction, newest created first.
func (r *TransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(entities), nil
}

func (r *TransactionRepository) ListByClient(ctx context.Context, clientID int64) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(entities), nil
}

func (r *TransactionRepository) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(t)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}
