package model

// Category is a user-owned spending or income bucket. Budget is the
// monthly budget in currency units; 0 means the category is untracked.
// Icon and Color are opaque presentation tokens chosen by the frontend
// (e.g. "fa-utensils", "#ef4444").
type Category struct {
	ID     int64   `json:"id"     db:"id"`
	UserID int64   `json:"userId" db:"user_id"`
	Name   string  `json:"name"   db:"name"`
	Budget float64 `json:"budget" db:"budget"`
	Icon   string  `json:"icon"   db:"icon"`
	Color  string  `json:"color"  db:"color"`
}
