package storage

import (
	"time"

	"github.com/ticoencargo/cartera/internal/model"
)

type TransactionEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	ClientID    int64     `db:"client_id"   gorm:"column:client_id;not null;index"`
	Type        string    `db:"type"        gorm:"column:type;not null"`
	Amount      int64     `db:"amount"      gorm:"column:amount;not null"`
	Date        time.Time `db:"date"        gorm:"column:date;not null"`
	Description string    `db:"description" gorm:"column:description;not null;default:''"`
	CreatedAt   time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:          m.ID,
		ClientID:    m.ClientID,
		Type:        string(m.Type),
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:          e.ID,
		ClientID:    e.ClientID,
		Type:        model.TransactionType(e.Type),
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
