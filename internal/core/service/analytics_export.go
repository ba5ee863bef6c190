package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/ports"
	"github.com/mannager/pos-system/internal/store"
)

// ExportReport flattens a report into rows of scalar columns. Row shapes
// may differ within one report (an untracked product has no stock column);
// the CSV form takes the union of keys across all rows as its header and
// leaves missing cells blank.
func (s *AnalyticsService) ExportReport(ctx context.Context, reportType ports.ReportType, format ports.ExportFormat) (*ports.Export, error) {
	if format == "" {
		format = ports.FormatJSON
	}
	if format != ports.FormatJSON && format != ports.FormatCSV {
		return nil, domain.Validationf("unknown format %q", format)
	}

	var rows []map[string]any
	var buildErr error
	s.store.View(func(data *store.Data) {
		switch reportType {
		case ports.ReportSales:
			rows = salesRows(data.Transactions)
		case ports.ReportInventory:
			rows = inventoryRows(data.Products)
		case ports.ReportFinancial:
			rows = financialRows(data.Transactions, data.Clients)
		case ports.ReportClients:
			rows = clientRows(data.Clients)
		default:
			buildErr = domain.Validationf("unknown report type %q", reportType)
		}
	})
	if buildErr != nil {
		return nil, buildErr
	}

	export := &ports.Export{Type: reportType, Rows: rows}
	if format == ports.FormatCSV {
		export.CSV = rowsToCSV(rows)
	}
	return export, nil
}

func salesRows(transactions []domain.Transaction) []map[string]any {
	rows := []map[string]any{}
	for _, t := range transactions {
		if t.Type != domain.TxSale {
			continue
		}
		rows = append(rows, map[string]any{
			"id":        t.ID,
			"date":      t.Date.Format(time.RFC3339),
			"clientId":  t.ClientID,
			"total":     t.Total,
			"paid":      t.Paid,
			"loan":      t.Loan,
			"itemCount": len(t.Items),
		})
	}
	return rows
}

func inventoryRows(products []*domain.Product) []map[string]any {
	rows := []map[string]any{}
	for _, p := range products {
		row := map[string]any{
			"id":    p.ID,
			"name":  p.Name,
			"price": p.Price,
		}
		if p.Type != "" {
			row["type"] = p.Type
		}
		// Untracked products carry no stock column at all.
		if p.Stock != nil {
			row["stock"] = *p.Stock
		}
		rows = append(rows, row)
	}
	return rows
}

func financialRows(transactions []domain.Transaction, clients []*domain.Client) []map[string]any {
	report := FinancialReport(transactions, clients, nil, nil)
	return []map[string]any{{
		"totalSales":        report.Revenue.TotalSales,
		"totalLoanPayments": report.Revenue.TotalLoanPayments,
		"grossRevenue":      report.Revenue.GrossRevenue,
		"salesCount":        report.Transactions.TotalSales,
		"loanPaymentsCount": report.Transactions.TotalLoanPayments,
		"averageSaleValue":  report.Transactions.AverageSaleValue,
		"activeLoans":       report.Loans.ActiveLoans,
		"totalOutstanding":  report.Loans.TotalOutstanding,
	}}
}

func clientRows(clients []*domain.Client) []map[string]any {
	rows := []map[string]any{}
	for _, c := range clients {
		row := map[string]any{
			"id":    c.ID,
			"name":  c.Name,
			"phone": c.Phone,
			"loan":  c.Loan,
		}
		if c.Insurer != "" {
			row["insurer"] = c.Insurer
		}
		rows = append(rows, row)
	}
	return rows
}

// rowsToCSV renders rows with a header covering the union of all keys.
// Columns appear in the order keys are first seen, walking each row's keys
// alphabetically, so the output is deterministic for any row mix.
func rowsToCSV(rows []map[string]any) string {
	header := []string{}
	seen := map[string]bool{}
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(header)
	record := make([]string, len(header))
	for _, row := range rows {
		for i, k := range header {
			if v, ok := row[k]; ok {
				record[i] = fmt.Sprint(v)
			} else {
				record[i] = ""
			}
		}
		_ = w.Write(record)
	}
	w.Flush()
	return sb.String()
}
