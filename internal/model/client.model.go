package model

import (
	"errors"
	"time"
)

type Client struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	CurrentDebt int64     `json:"current_debt"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// ClientCreateRequest is the input for creating a client. The store
// assigns id, created_at and updated_at.
type ClientCreateRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CurrentDebt int64  `json:"current_debt"`
	Notes       string `json:"notes"`
}

func (p ClientCreateRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.CurrentDebt < 0 {
		return errors.New("current_debt cannot be negative")
	}
	return nil
}
