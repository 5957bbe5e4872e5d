package model

// Goal is a user-owned savings target.
//
// Saved is derived on read: the sum of income-type transactions
// referencing this goal. It is never persisted.
type Goal struct {
	ID                  int64   `json:"id"                  db:"id"`
	UserID              int64   `json:"userId"              db:"user_id"`
	Name                string  `json:"name"                db:"name"`
	TargetAmount        float64 `json:"targetAmount"        db:"target_amount"`
	MonthlyContribution float64 `json:"monthlyContribution" db:"monthly_contribution"`
	TargetDate          Date    `json:"targetDate"          db:"target_date"`
	Saved               float64 `json:"saved"               db:"-"`
}
