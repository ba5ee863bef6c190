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

func exportData() *store.Data {
	return &store.Data{
		Clients: []*domain.Client{
			{ID: 1, Name: "Alice", Phone: "0788", Loan: 500, Insurer: "RSSB"},
			{ID: 2, Name: "Bob", Phone: "0799"},
		},
		Products: []*domain.Product{
			{ID: 10, Name: "Rice", Price: 1000, Type: "food", Stock: intPtr(8)},
			{ID: 11, Name: "Delivery", Price: 200},
		},
		Transactions: []domain.Transaction{
			{ID: 100, ClientID: 1, Type: domain.TxSale, Total: 1000, Paid: 500, Loan: 500,
				Date:  time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
				Items: []domain.LineItem{{ProductID: 10, Name: "Rice", Price: 1000, Quantity: 1}}},
			{ID: 101, ClientID: 1, Type: domain.TxLoanPayment, Amount: 200,
				Date: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)},
		},
	}
}

func TestExportReport_SalesJSON(t *testing.T) {
	st, _ := newTestStore(t, exportData())
	svc := NewAnalyticsService(st, zerolog.Nop())

	export, err := svc.ExportReport(context.Background(), ports.ReportSales, ports.FormatJSON)
	if err != nil {
		t.Fatalf("ExportReport returned error: %v", err)
	}
	if export.Type != ports.ReportSales {
		t.Fatalf("unexpected type: %s", export.Type)
	}
	if len(export.Rows) != 1 {
		t.Fatalf("loan payments must not appear in a sales export: %d rows", len(export.Rows))
	}
	row := export.Rows[0]
	if row["id"] != int64(100) || row["paid"] != 500.0 || row["itemCount"] != 1 {
		t.Fatalf("unexpected sales row: %+v", row)
	}
	if export.CSV != "" {
		t.Fatalf("json export must not render CSV")
	}
}

func TestExportReport_DefaultsToJSON(t *testing.T) {
	st, _ := newTestStore(t, exportData())
	svc := NewAnalyticsService(st, zerolog.Nop())

	export, err := svc.ExportReport(context.Background(), ports.ReportClients, "")
	if err != nil {
		t.Fatalf("ExportReport returned error: %v", err)
	}
	if len(export.Rows) != 2 {
		t.Fatalf("expected 2 client rows, got %d", len(export.Rows))
	}
	if _, ok := export.Rows[1]["insurer"]; ok {
		t.Fatalf("uninsured client must have no insurer column")
	}
}

func TestExportReport_InventoryCSVUnionHeader(t *testing.T) {
	st, _ := newTestStore(t, exportData())
	svc := NewAnalyticsService(st, zerolog.Nop())

	export, err := svc.ExportReport(context.Background(), ports.ReportInventory, ports.FormatCSV)
	if err != nil {
		t.Fatalf("ExportReport returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(export.CSV), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), export.CSV)
	}

	// The untracked product has no stock or type cell, but the header must
	// still carry both columns because the tracked product has them.
	header := strings.Split(lines[0], ",")
	want := map[string]bool{"id": true, "name": true, "price": true, "stock": true, "type": true}
	for _, col := range header {
		delete(want, col)
	}
	if len(want) != 0 {
		t.Fatalf("header missing columns %v: %s", want, lines[0])
	}

	// Second product row: blanks where the columns do not apply.
	if !strings.Contains(lines[2], "Delivery") {
		t.Fatalf("expected the untracked product row: %s", lines[2])
	}
	if strings.Count(lines[2], ",") != len(header)-1 {
		t.Fatalf("row has wrong number of cells: %s", lines[2])
	}
}

func TestExportReport_Financial(t *testing.T) {
	st, _ := newTestStore(t, exportData())
	svc := NewAnalyticsService(st, zerolog.Nop())

	export, err := svc.ExportReport(context.Background(), ports.ReportFinancial, ports.FormatJSON)
	if err != nil {
		t.Fatalf("ExportReport returned error: %v", err)
	}
	if len(export.Rows) != 1 {
		t.Fatalf("financial export is a single row, got %d", len(export.Rows))
	}
	row := export.Rows[0]
	if row["totalSales"] != 500.0 || row["totalLoanPayments"] != 200.0 || row["grossRevenue"] != 700.0 {
		t.Fatalf("unexpected financial row: %+v", row)
	}
	if row["activeLoans"] != 1 || row["totalOutstanding"] != 500.0 {
		t.Fatalf("unexpected loan columns: %+v", row)
	}
}

func TestExportReport_Validation(t *testing.T) {
	st, _ := newTestStore(t, exportData())
	svc := NewAnalyticsService(st, zerolog.Nop())

	if _, err := svc.ExportReport(context.Background(), "payroll", ports.FormatJSON); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
	if _, err := svc.ExportReport(context.Background(), ports.ReportSales, "xml"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown format, got %v", err)
	}
}

func TestRowsToCSV_Empty(t *testing.T) {
	if got := rowsToCSV(nil); strings.TrimSpace(got) != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
