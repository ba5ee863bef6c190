package ports

import (
	"context"
	"time"

	"github.com/mannager/pos-system/internal/core/domain"
)

// SaleItemInput is one line of a sale as submitted by the caller. Name,
// Price and Type are snapshotted into the transaction: the ledger records
// what was sold at what price, independent of later catalog edits.
type SaleItemInput struct {
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
	Type      string
}

// SaleInput is the payload for RecordSale.
type SaleInput struct {
	ClientID int64
	Items    []SaleItemInput
	Paid     float64
}

// LoanPaymentResult is the outcome of a recorded repayment.
type LoanPaymentResult struct {
	Client        domain.Client
	Payment       float64
	RemainingLoan float64
	Transaction   domain.Transaction
}

// StockResult reports a stock overwrite.
type StockResult struct {
	Product  domain.Product
	OldStock int
	NewStock int
}

// ClientInput creates a client; the loan balance always starts at zero.
type ClientInput struct {
	Name    string
	Phone   string
	Insurer string
}

// ClientUpdate is a shallow merge: only non-nil fields are applied.
type ClientUpdate struct {
	Name    *string
	Phone   *string
	Insurer *string
}

// ProductInput creates a catalog entry. Stock nil means untracked.
type ProductInput struct {
	Name  string
	Price float64
	Type  string
	Stock *int
}

// ProductUpdate is a shallow merge: only non-nil fields are applied.
type ProductUpdate struct {
	Name  *string
	Price *float64
	Type  *string
}

// PurchaseItem is one line of a past sale, formatted for history views.
type PurchaseItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
	Type        string  `json:"type,omitempty"`
}

// PurchaseRecord is one past sale of a client, newest first in listings.
type PurchaseRecord struct {
	ID    int64          `json:"id"`
	Date  time.Time      `json:"date"`
	Total float64        `json:"total"`
	Paid  float64        `json:"paid"`
	Loan  float64        `json:"loan"`
	Items []PurchaseItem `json:"items"`
}

// LedgerService validates and applies every mutating operation on
// clients, products and the transaction log. Each call runs to completion
// — validation, mutation, snapshot persistence — before the next begins;
// a returned error means the store was not touched.
type LedgerService interface {
	RecordSale(ctx context.Context, actor domain.Actor, input SaleInput) (*domain.Transaction, error)
	RecordLoanPayment(ctx context.Context, actor domain.Actor, clientID int64, amount float64) (*LoanPaymentResult, error)
	AdjustStock(ctx context.Context, actor domain.Actor, productID int64, newStock int) (*StockResult, error)

	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, actor domain.Actor, input ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, actor domain.Actor, id int64, update ClientUpdate) (*domain.Client, error)
	DeleteClient(ctx context.Context, actor domain.Actor, id int64) error
	SearchClients(ctx context.Context, query string) ([]domain.Client, error)
	LoanHistory(ctx context.Context, clientID int64) ([]domain.Transaction, error)
	PurchaseHistory(ctx context.Context, clientID int64) ([]PurchaseRecord, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, actor domain.Actor, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, id int64, update ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor domain.Actor, id int64) error
	LowStockProducts(ctx context.Context) ([]domain.Product, error)
}
