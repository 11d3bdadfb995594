package domain

import "time"

// TransactionType separates money coming in from money going out. It applies
// to both categories and transactions.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// CreatedByAdmin marks categories created through the admin API.
const CreatedByAdmin = "ADMIN"

// Category groups transactions. Names are unique across the system.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	CreatedBy string          `json:"createdBy"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
