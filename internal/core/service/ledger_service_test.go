package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/ports"
	"github.com/mannager/pos-system/internal/store"
)

func saleItems() []ports.SaleItemInput {
	return []ports.SaleItemInput{
		{ProductID: 10, Name: "Rice", Price: 1000, Quantity: 2},
		{ProductID: 11, Name: "Oil", Price: 500, Quantity: 1},
	}
}

func TestRecordSale_FullyPaid(t *testing.T) {
	st, gw := newTestStore(t, &store.Data{
		Clients: []*domain.Client{{ID: 5, Name: "Alice"}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	tx, err := svc.RecordSale(context.Background(), userActor(), ports.SaleInput{
		ClientID: 5,
		Items:    saleItems(),
		Paid:     2500,
	})
	if err != nil {
		t.Fatalf("RecordSale returned error: %v", err)
	}
	if tx.Total != 2500 || tx.Paid != 2500 || tx.Loan != 0 {
		t.Fatalf("unexpected amounts: total=%v paid=%v loan=%v", tx.Total, tx.Paid, tx.Loan)
	}
	if tx.Type != domain.TxSale {
		t.Fatalf("unexpected type: %s", tx.Type)
	}
	if tx.UserID != userActor().ID {
		t.Fatalf("sale not attributed to the acting user: %d", tx.UserID)
	}
	if gw.saves != 1 {
		t.Fatalf("expected one snapshot save, got %d", gw.saves)
	}

	st.View(func(d *store.Data) {
		if d.Clients[0].Loan != 0 {
			t.Fatalf("fully paid sale changed the loan balance: %v", d.Clients[0].Loan)
		}
		if len(d.Transactions) != 1 {
			t.Fatalf("expected one transaction, got %d", len(d.Transactions))
		}
	})

	n := lastNotification(t, st)
	if n.Type != domain.NotifySale || !strings.Contains(n.Message, "Alice") {
		t.Fatalf("unexpected sale notification: %+v", n)
	}
}

func TestRecordSale_PartialPaymentOpensLoan(t *testing.T) {
	st, _ := newTestStore(t, &store.Data{
		Clients: []*domain.Client{{ID: 5, Name: "Alice"}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	tx, err := svc.RecordSale(context.Background(), userActor(), ports.SaleInput{
		ClientID: 5,
		Items:    saleItems(),
		Paid:     1000,
	})
	if err != nil {
		t.Fatalf("RecordSale returned error: %v", err)
	}
	if tx.Loan != 1500 {
		t.Fatalf("expected loan 1500, got %v", tx.Loan)
	}

	st.View(func(d *store.Data) {
		if d.Clients[0].Loan != 1500 {
			t.Fatalf("client balance not increased: %v", d.Clients[0].Loan)
		}
		var warned bool
		for _, n := range d.Notifications {
			if n.Type == domain.NotifyWarning && strings.Contains(n.Message, "New loan") {
				warned = true
			}
		}
		if !warned {
			t.Fatalf("expected a new-loan warning notification")
		}
	})
}

func TestRecordSale_RejectsSecondLoan(t *testing.T) {
	st, gw := newTestStore(t, &store.Data{
		Clients: []*domain.Client{{ID: 5, Name: "Alice", Loan: 700}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	_, err := svc.RecordSale(context.Background(), userActor(), ports.SaleInput{
		ClientID: 5,
		Items:    saleItems(),
		Paid:     1000,
	})
	if !errors.Is(err, domain.ErrOutstandingLoan) {
		t.Fatalf("expected ErrOutstandingLoan, got %v", err)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected a conflict kind, got %v", err)
	}
	if gw.saves != 0 {
		t.Fatalf("rejected sale must not persist, got %d saves", gw.saves)
	}

	st.View(func(d *store.Data) {
		if len(d.Transactions) != 0 {
			t.Fatalf("rejected sale appended a transaction")
		}
		if d.Clients[0].Loan != 700 {
			t.Fatalf("rejected sale changed the balance: %v", d.Clients[0].Loan)
		}
	})
}

func TestRecordSale_IndebtedClientMayPayInFull(t *testing.T) {
	st, _ := newTestStore(t, &store.Data{
		Clients: []*domain.Client{{ID: 5, Name: "Alice", Loan: 700}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	tx, err := svc.RecordSale(context.Background(), userActor(), ports.SaleInput{
		ClientID: 5,
		Items:    saleItems(),
		Paid:     2500,
	})
	if err != nil {
		t.Fatalf("fully paid sale should pass despite the open loan: %v", err)
	}
	if tx.Loan != 0 {
		t.Fatalf("expected zero loan, got %v", tx.Loan)
	}

	st.View(func(d *store.Data) {
		if d.Clients[0].Loan != 700 {
			t.Fatalf("existing loan must stay untouched: %v", d.Clients[0].Loan)
		}
	})
}

func TestRecordSale_UnknownClient(t *testing.T) {
	st, _ := newTestStore(t, nil)
	svc := NewLedgerService(st, zerolog.Nop())

	_, err := svc.RecordSale(context.Background(), userActor(), ports.SaleInput{
		ClientID: 99,
		Items:    saleItems(),
		Paid:     100,
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestRecordSale_Validation(t *testing.T) {
	st, gw := newTestStore(t, &store.Data{
		Clients: []*domain.Client{{ID: 5, Name: "Alice"}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	cases := []ports.SaleInput{
		{ClientID: 5, Items: nil, Paid: 100},
		{ClientID: 5, Items: []ports.SaleItemInput{{Name: "Rice", Price: 100, Quantity: 0}}, Paid: 100},
		{ClientID: 5, Items: []ports.SaleItemInput{{Name: "Rice", Price: -1, Quantity: 1}}, Paid: 100},
		{ClientID: 5, Items: saleItems(), Paid: -1},
	}
	for i, input := range cases {
		if _, err := svc.RecordSale(context.Background(), userActor(), input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if gw.saves != 0 {
		t.Fatalf("validation failures must not persist")
	}
}

func TestRecordLoanPayment_ReducesBalance(t *testing.T) {
	st, _ := newTestStore(t, &store.Data{
		Clients: []*domain.Client{{ID: 5, Name: "Alice", Loan: 1500}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	result, err := svc.RecordLoanPayment(context.Background(), userActor(), 5, 600)
	if err != nil {
		t.Fatalf("RecordLoanPayment returned error: %v", err)
	}
	if result.Payment != 600 || result.RemainingLoan != 900 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Transaction.Type != domain.TxLoanPayment {
		t.Fatalf("unexpected transaction type: %s", result.Transaction.Type)
	}
	if result.Transaction.PreviousLoan != 1500 || result.Transaction.NewLoan != 900 {
		t.Fatalf("balance snapshots wrong: prev=%v new=%v",
			result.Transaction.PreviousLoan, result.Transaction.NewLoan)
	}

	st.View(func(d *store.Data) {
		if d.Clients[0].Loan != 900 {
			t.Fatalf("client balance not reduced: %v", d.Clients[0].Loan)
		}
	})
}

func TestRecordLoanPayment_ExactPayoff(t *testing.T) {
	st, _ := newTestStore(t, &store.Data{
		Clients: []*domain.Client{{ID: 5, Name: "Alice", Loan: 400}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	result, err := svc.RecordLoanPayment(context.Background(), userActor(), 5, 400)
	if err != nil {
		t.Fatalf("RecordLoanPayment returned error: %v", err)
	}
	if result.RemainingLoan != 0 {
		t.Fatalf("expected zero balance, got %v", result.RemainingLoan)
	}
}

func TestRecordLoanPayment_Preconditions(t *testing.T) {
	st, gw := newTestStore(t, &store.Data{
		Clients: []*domain.Client{
			{ID: 5, Name: "Alice", Loan: 400},
			{ID: 6, Name: "Bob"},
		},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	if _, err := svc.RecordLoanPayment(context.Background(), userActor(), 99, 100); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if _, err := svc.RecordLoanPayment(context.Background(), userActor(), 6, 100); !errors.Is(err, domain.ErrNoActiveLoan) {
		t.Fatalf("expected ErrNoActiveLoan, got %v", err)
	}
	if _, err := svc.RecordLoanPayment(context.Background(), userActor(), 5, 0); !errors.Is(err, domain.ErrInvalidPayment) {
		t.Fatalf("expected ErrInvalidPayment, got %v", err)
	}
	if _, err := svc.RecordLoanPayment(context.Background(), userActor(), 5, 401); !errors.Is(err, domain.ErrPaymentExceedsLoan) {
		t.Fatalf("expected ErrPaymentExceedsLoan, got %v", err)
	}
	if gw.saves != 0 {
		t.Fatalf("rejected payments must not persist")
	}
}

func TestAdjustStock_Overwrite(t *testing.T) {
	st, _ := newTestStore(t, &store.Data{
		Products: []*domain.Product{{ID: 10, Name: "Rice", Stock: intPtr(8)}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	result, err := svc.AdjustStock(context.Background(), userActor(), 10, 20)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if result.OldStock != 8 || result.NewStock != 20 {
		t.Fatalf("unexpected result: %+v", result)
	}

	n := lastNotification(t, st)
	if n.Type != domain.NotifyStock || !strings.Contains(n.Message, "Rice") {
		t.Fatalf("unexpected stock notification: %+v", n)
	}
}

func TestAdjustStock_UntrackedBecomesTracked(t *testing.T) {
	st, _ := newTestStore(t, &store.Data{
		Products: []*domain.Product{{ID: 10, Name: "Rice"}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	result, err := svc.AdjustStock(context.Background(), userActor(), 10, 15)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if result.OldStock != 0 {
		t.Fatalf("untracked product should report old stock 0, got %d", result.OldStock)
	}

	st.View(func(d *store.Data) {
		p := d.FindProduct(10)
		if !p.Tracked() || *p.Stock != 15 {
			t.Fatalf("product not tracked at 15: %+v", p)
		}
	})
}

func TestAdjustStock_RejectsNegative(t *testing.T) {
	st, gw := newTestStore(t, &store.Data{
		Products: []*domain.Product{{ID: 10, Name: "Rice", Stock: intPtr(8)}},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	if _, err := svc.AdjustStock(context.Background(), userActor(), 10, -1); !errors.Is(err, domain.ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	if gw.saves != 0 {
		t.Fatalf("rejected stock change must not persist")
	}
}

func TestLoanHistory_FiltersCreditActivity(t *testing.T) {
	now := time.Now()
	st, _ := newTestStore(t, &store.Data{
		Transactions: []domain.Transaction{
			{ID: 1, ClientID: 5, Type: domain.TxSale, Loan: 500, Date: now},
			{ID: 2, ClientID: 5, Type: domain.TxSale, Loan: 0, Date: now},
			{ID: 3, ClientID: 5, Type: domain.TxLoanPayment, Amount: 200, Date: now},
			{ID: 4, ClientID: 6, Type: domain.TxSale, Loan: 900, Date: now},
		},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	history, err := svc.LoanHistory(context.Background(), 5)
	if err != nil {
		t.Fatalf("LoanHistory returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].ID != 1 || history[1].ID != 3 {
		t.Fatalf("unexpected entries: %+v", history)
	}
}

func TestPurchaseHistory_NewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st, _ := newTestStore(t, &store.Data{
		Transactions: []domain.Transaction{
			{ID: 1, ClientID: 5, Type: domain.TxSale, Total: 100, Date: base,
				Items: []domain.LineItem{{Name: "Rice", Price: 50, Quantity: 2}}},
			{ID: 2, ClientID: 5, Type: domain.TxSale, Total: 300, Date: base.Add(48 * time.Hour)},
			{ID: 3, ClientID: 5, Type: domain.TxLoanPayment, Amount: 50, Date: base.Add(72 * time.Hour)},
		},
	})
	svc := NewLedgerService(st, zerolog.Nop())

	records, err := svc.PurchaseHistory(context.Background(), 5)
	if err != nil {
		t.Fatalf("PurchaseHistory returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(records))
	}
	if records[0].ID != 2 || records[1].ID != 1 {
		t.Fatalf("expected newest first, got %d then %d", records[0].ID, records[1].ID)
	}

	item := records[1].Items[0]
	if item.ProductName != "Rice" || item.TotalPrice != 100 {
		t.Fatalf("unexpected line item: %+v", item)
	}
}
