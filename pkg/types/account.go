package types

// AccountSummary is a patron's financial snapshot from the integrated
// library system. A positive balance is money owed to the library.
type AccountSummary struct {
	Balance            float64 `json:"balance" yaml:"balance"`
	OutstandingDebits  float64 `json:"outstanding_debits" yaml:"outstanding_debits"`
	OutstandingCredits float64 `json:"outstanding_credits" yaml:"outstanding_credits"`
}

// Checkout is one item currently on loan to the patron.
type Checkout struct {
	ItemID  int    `json:"item_id" yaml:"item_id"`
	DueDate string `json:"due_date" yaml:"due_date"`
}
