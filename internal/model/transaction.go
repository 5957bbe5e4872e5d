package model

// Transaction types. The store enforces the same set with a CHECK
// constraint.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction is a dated income or expense entry. It always references
// one of the owner's categories and optionally one of the owner's
// goals (GoalID nil means no goal).
//
// Category and Icon are denormalized from the joined category row on
// reads and are never written back.
type Transaction struct {
	ID              int64   `json:"id"              db:"id"`
	UserID          int64   `json:"userId"          db:"user_id"`
	CategoryID      int64   `json:"categoryId"      db:"category_id"`
	GoalID          *int64  `json:"goalId"          db:"goal_id"`
	Type            string  `json:"type"            db:"type"`
	Amount          float64 `json:"amount"          db:"amount"`
	Description     string  `json:"description"     db:"description"`
	TransactionDate Date    `json:"transactionDate" db:"transaction_date"`
	Category        string  `json:"category"        db:"-"`
	Icon            string  `json:"icon"            db:"-"`
}
