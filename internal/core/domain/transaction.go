package domain

import "time"

// TransactionType discriminates the two kinds of ledger records.
type TransactionType string

const (
	TxSale        TransactionType = "sale"
	TxLoanPayment TransactionType = "loan_payment"
)

// LineItem is a denormalized snapshot of a product at sale time. Later
// price or name changes never retroactively alter a recorded sale.
type LineItem struct {
	ProductID int64   `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Type      string  `json:"type,omitempty" bson:"type,omitempty"`
}

// Transaction is an immutable ledger record. Sale records carry Items,
// Total, Paid and Loan; loan payments carry Amount plus the PreviousLoan
// and NewLoan balance snapshots. Once appended a transaction is only ever
// read, or dropped wholesale when its client is deleted.
type Transaction struct {
	ID       int64           `json:"id" bson:"id"`
	ClientID int64           `json:"clientId" bson:"clientId"`
	Type     TransactionType `json:"type" bson:"type"`

	// Sale fields.
	Items []LineItem `json:"items,omitempty" bson:"items,omitempty"`
	Total float64    `json:"total" bson:"total"`
	Paid  float64    `json:"paid" bson:"paid"`
	Loan  float64    `json:"loan" bson:"loan"`

	// Loan payment fields.
	Amount       float64 `json:"amount" bson:"amount"`
	PreviousLoan float64 `json:"previousLoan" bson:"previousLoan"`
	NewLoan      float64 `json:"newLoan" bson:"newLoan"`

	Date   time.Time `json:"date" bson:"date"`
	UserID int64     `json:"userId" bson:"userId"`
}
