package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/api/metrics"
	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/ports"
	"github.com/mannager/pos-system/internal/store"
)

// LedgerService applies sales, loan repayments, stock overwrites and the
// client/product registry operations. Every mutation validates all of its
// preconditions before touching the store, so a returned error always
// means "nothing happened".
type LedgerService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewLedgerService(st *store.Store, logger zerolog.Logger) *LedgerService {
	return &LedgerService{store: st, logger: logger}
}

// RecordSale computes total and loan for the submitted items and appends a
// sale transaction. A client already carrying a balance cannot take on
// more credit: if the new sale would leave anything unpaid the call fails
// with a conflict and the store is untouched.
func (s *LedgerService) RecordSale(ctx context.Context, actor domain.Actor, input ports.SaleInput) (*domain.Transaction, error) {
	if len(input.Items) == 0 {
		return nil, domain.Validationf("sale requires at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domain.Validationf("item quantity must be positive")
		}
		if item.Price < 0 {
			return nil, domain.Validationf("item price cannot be negative")
		}
	}
	if input.Paid < 0 {
		return nil, domain.Validationf("paid amount cannot be negative")
	}

	var recorded domain.Transaction
	err := s.store.Update(func(tx *store.Tx) error {
		client := tx.Data.FindClient(input.ClientID)
		if client == nil {
			return domain.ErrClientNotFound
		}

		var total float64
		for _, item := range input.Items {
			total += item.Price * float64(item.Quantity)
		}
		loan := total - input.Paid

		if client.Loan > 0 && loan > 0 {
			metrics.LedgerRejectionsTotal.WithLabelValues("outstanding_loan").Inc()
			return domain.ErrOutstandingLoan
		}

		items := make([]domain.LineItem, len(input.Items))
		for i, item := range input.Items {
			items[i] = domain.LineItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Type:      item.Type,
			}
		}

		recorded = domain.Transaction{
			ID:       tx.NextID(),
			ClientID: client.ID,
			Type:     domain.TxSale,
			Items:    items,
			Total:    total,
			Paid:     input.Paid,
			Loan:     loan,
			Date:     time.Now(),
			UserID:   actor.ID,
		}
		tx.Data.Transactions = append(tx.Data.Transactions, recorded)

		credit := "cash"
		if loan > 0 {
			credit = "loan"
			client.Loan += loan
			tx.Notify(domain.NotifyWarning, "⚠️ New loan: %s - %v FRW", client.Name, loan)
		}
		tx.Notify(domain.NotifySale, "💰 Sale: %s - %v FRW paid", client.Name, input.Paid)

		metrics.SalesRecordedTotal.WithLabelValues(credit).Inc()
		metrics.OutstandingLoanTotal.Set(outstandingTotal(tx.Data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("client_id", recorded.ClientID).
		Float64("total", recorded.Total).
		Float64("paid", recorded.Paid).
		Float64("loan", recorded.Loan).
		Msg("sale recorded")
	return &recorded, nil
}

// RecordLoanPayment reduces a client's balance and appends an immutable
// loan_payment transaction carrying the before/after balance snapshots.
func (s *LedgerService) RecordLoanPayment(ctx context.Context, actor domain.Actor, clientID int64, amount float64) (*ports.LoanPaymentResult, error) {
	var result ports.LoanPaymentResult
	err := s.store.Update(func(tx *store.Tx) error {
		client := tx.Data.FindClient(clientID)
		if client == nil {
			return domain.ErrClientNotFound
		}
		if client.Loan <= 0 {
			metrics.LedgerRejectionsTotal.WithLabelValues("no_active_loan").Inc()
			return domain.ErrNoActiveLoan
		}
		if amount <= 0 {
			return domain.ErrInvalidPayment
		}
		if amount > client.Loan {
			metrics.LedgerRejectionsTotal.WithLabelValues("overpayment").Inc()
			return domain.ErrPaymentExceedsLoan
		}

		previous := client.Loan
		client.Loan -= amount

		payment := domain.Transaction{
			ID:           tx.NextID(),
			ClientID:     client.ID,
			Type:         domain.TxLoanPayment,
			Amount:       amount,
			PreviousLoan: previous,
			NewLoan:      client.Loan,
			Date:         time.Now(),
			UserID:       actor.ID,
		}
		tx.Data.Transactions = append(tx.Data.Transactions, payment)
		tx.Notify(domain.NotifySuccess, "✅ Loan payment: %s paid %v FRW", client.Name, amount)

		result = ports.LoanPaymentResult{
			Client:        *client,
			Payment:       amount,
			RemainingLoan: client.Loan,
			Transaction:   payment,
		}

		metrics.LoanPaymentsTotal.Inc()
		metrics.OutstandingLoanTotal.Set(outstandingTotal(tx.Data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("client_id", clientID).
		Float64("amount", amount).
		Float64("remaining", result.RemainingLoan).
		Msg("loan payment recorded")
	return &result, nil
}

// AdjustStock overwrites a product's tracked stock. A previously untracked
// product becomes tracked at zero before the overwrite, so the old/new
// delta in the notification is well-defined.
func (s *LedgerService) AdjustStock(ctx context.Context, actor domain.Actor, productID int64, newStock int) (*ports.StockResult, error) {
	if newStock < 0 {
		metrics.LedgerRejectionsTotal.WithLabelValues("negative_stock").Inc()
		return nil, domain.ErrNegativeStock
	}

	var result ports.StockResult
	err := s.store.Update(func(tx *store.Tx) error {
		product := tx.Data.FindProduct(productID)
		if product == nil {
			return domain.ErrProductNotFound
		}

		oldStock := 0
		if product.Stock != nil {
			oldStock = *product.Stock
		}
		stock := newStock
		product.Stock = &stock

		tx.Notify(domain.NotifyStock, "📦 Stock updated: %s - %d → %d", product.Name, oldStock, newStock)
		result = ports.StockResult{Product: *product, OldStock: oldStock, NewStock: newStock}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("product_id", productID).
		Int("old_stock", result.OldStock).
		Int("new_stock", result.NewStock).
		Msg("stock adjusted")
	return &result, nil
}

// LoanHistory returns the transactions that touched a client's balance:
// credit sales and repayments.
func (s *LedgerService) LoanHistory(ctx context.Context, clientID int64) ([]domain.Transaction, error) {
	var history []domain.Transaction
	s.store.View(func(data *store.Data) {
		for _, t := range data.Transactions {
			if t.ClientID == clientID && (t.Loan > 0 || t.Type == domain.TxLoanPayment) {
				history = append(history, t)
			}
		}
	})
	if history == nil {
		history = []domain.Transaction{}
	}
	return history, nil
}

// PurchaseHistory returns a client's sales newest-first, with per-line
// totals computed from the recorded prices.
func (s *LedgerService) PurchaseHistory(ctx context.Context, clientID int64) ([]ports.PurchaseRecord, error) {
	records := []ports.PurchaseRecord{}
	s.store.View(func(data *store.Data) {
		for _, t := range data.Transactions {
			if t.ClientID != clientID || t.Type != domain.TxSale {
				continue
			}
			items := make([]ports.PurchaseItem, len(t.Items))
			for i, item := range t.Items {
				items[i] = ports.PurchaseItem{
					ProductName: item.Name,
					Quantity:    item.Quantity,
					UnitPrice:   item.Price,
					TotalPrice:  item.Price * float64(item.Quantity),
					Type:        item.Type,
				}
			}
			records = append(records, ports.PurchaseRecord{
				ID:    t.ID,
				Date:  t.Date,
				Total: t.Total,
				Paid:  t.Paid,
				Loan:  t.Loan,
				Items: items,
			})
		}
	})
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	return records, nil
}

// outstandingTotal sums all client balances. Called under the store lock.
func outstandingTotal(data *store.Data) float64 {
	var total float64
	for _, c := range data.Clients {
		total += c.Loan
	}
	return total
}
