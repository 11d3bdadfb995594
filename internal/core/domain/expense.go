package domain

import "time"

// Expense is a single income or expense transaction owned by a user.
type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      float64         `json:"amount"`
	CategoryID  string          `json:"categoryId"`
	Description string          `json:"description"`
	PaymentType string          `json:"paymentType"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	IsDeleted   bool            `json:"isDeleted"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AuditEntity returns the audit entity matching the transaction type.
func (e *Expense) AuditEntity() AuditEntity {
	if e.Type == TypeIncome {
		return EntityIncome
	}
	return EntityExpense
}

// ExpenseDetail is an expense with its owner and category resolved.
type ExpenseDetail struct {
	Expense
	User     *UserSummary `json:"user,omitempty"`
	Category string       `json:"category,omitempty"`
}

// CategoryTotal is the sum of transactions in one category.
type CategoryTotal struct {
	Category string  `json:"_id" bson:"_id"`
	Total    float64 `json:"total" bson:"total"`
	Count    int64   `json:"count" bson:"count"`
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int `json:"year" bson:"year"`
	Month int `json:"month" bson:"month"`
}

// MonthlyTotal is the sum of transactions within one month.
type MonthlyTotal struct {
	Month MonthKey `json:"_id" bson:"_id"`
	Total float64  `json:"total" bson:"total"`
}

// UserSpending is the total spent by one user.
type UserSpending struct {
	Email      string  `json:"_id" bson:"_id"`
	Name       string  `json:"name" bson:"name"`
	TotalSpent float64 `json:"totalSpent" bson:"totalSpent"`
}

// Analytics is the admin dashboard summary over all non-deleted transactions.
type Analytics struct {
	TotalExpenses         float64         `json:"totalExpenses"`
	CategoryWiseTotals    []CategoryTotal `json:"categoryWiseTotals"`
	MonthlySpendingTrends []MonthlyTotal  `json:"monthlySpendingTrends"`
	TopSpendingUsers      []UserSpending  `json:"topSpendingUsers"`
}
