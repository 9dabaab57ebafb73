package storage

import (
	"time"

	"github.com/ticoencargo/cartera/internal/model"
)

type ClientEntity struct {
	ID           int64                `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name         string               `db:"name"         gorm:"column:name;not null"`
	Phone        string               `db:"phone"        gorm:"column:phone;not null;default:''"`
	CurrentDebt  int64                `db:"current_debt" gorm:"column:current_debt;not null;default:0"`
	Notes        string               `db:"notes"        gorm:"column:notes;not null;default:''"`
	CreatedAt    time.Time            `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `db:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
	Transactions []*TransactionEntity `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (ClientEntity) TableName() string {
	return "clients"
}

func toClientEntity(m *model.Client) *ClientEntity {
	if m == nil {
		return nil
	}
	return &ClientEntity{
		ID:          m.ID,
		Name:        m.Name,
		Phone:       m.Phone,
		CurrentDebt: m.CurrentDebt,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toClientModel(e *ClientEntity) *model.Client {
	if e == nil {
		return nil
	}
	return &model.Client{
		ID:          e.ID,
		Name:        e.Name,
		Phone:       e.Phone,
		CurrentDebt: e.CurrentDebt,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toClientModels(entities []*ClientEntity) []*model.Client {
	if entities == nil {
		return nil
	}
	models := make([]*model.Client, len(entities))
	for i, e := range entities {
		models[i] = toClientModel(e)
	}
	return models
}
