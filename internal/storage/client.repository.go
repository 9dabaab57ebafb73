package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ticoencargo/cartera/internal/model"
	"github.com/ticoencargo/cartera/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound = errors.New("client not found")
)

type ClientRepository struct {
	*pg.DB
}

func NewClientRepository(db *pg.DB) *ClientRepository {
	return &ClientRepository{
		db,
	}
}

// List returns every client, newest created first.
func (r *ClientRepository) List(ctx context.Context) ([]*model.Client, error) {
	var entities []*ClientEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toClientModels(entities), nil
}

func (r *ClientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	var entity ClientEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return toClientModel(&entity), nil
}

func (r *ClientRepository) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	entity := toClientEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toClientModel(entity), nil
}

// UpdateDebt overwrites current_debt. The caller computed the new
// figure; this is a plain write, not an increment.
func (r *ClientRepository) UpdateDebt(ctx context.Context, id int64, newDebt int64) (*model.Client, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ClientEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_debt": newDebt,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrClientNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the client and its transactions in one transaction.
// The explicit transaction delete keeps sqlite correct even without
// foreign keys enabled.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		result := r.Write(ctx).
			Where("id = ?", id).
			Delete(&ClientEntity{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrClientNotFound
		}
		return r.Write(ctx).
			Where("client_id = ?", id).
			Delete(&TransactionEntity{}).
			Error
	})
}
