package ports

import (
	"context"
	"time"

	"github.com/mannager/pos-system/internal/core/domain"
)

// Period selects the aggregation bucket width for sales reports.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// PeriodBucket aggregates the sales falling in one calendar bucket.
// Start is the bucket's underlying start instant; listings are ordered by
// Start, never by the formatted Date label.
type PeriodBucket struct {
	Date         string    `json:"date"`
	Revenue      float64   `json:"revenue"`
	Transactions int       `json:"transactions"`
	Start        time.Time `json:"-"`
}

// ProductSales aggregates one product's performance across all sales,
// using the prices recorded on the line items.
type ProductSales struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// ClientStats aggregates one client's purchase behaviour.
type ClientStats struct {
	ClientID     int64     `json:"clientId"`
	ClientName   string    `json:"clientName"`
	TotalSpent   float64   `json:"totalSpent"`
	Transactions int       `json:"transactions"`
	LastPurchase time.Time `json:"lastPurchase"`
}

// OverviewSummary totals a sales overview.
type OverviewSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalTransactions int     `json:"totalTransactions"`
	AverageSale       float64 `json:"averageSale"`
}

// SalesOverview is the combined analytics payload for the overview page.
type SalesOverview struct {
	SalesOverview []PeriodBucket  `json:"salesOverview"`
	TopProducts   []ProductSales  `json:"topProducts"`
	ClientStats   []ClientStats   `json:"clientStats"`
	Summary       OverviewSummary `json:"summary"`
}

// FinancialReport covers a historical transaction window. The Loans block
// is deliberately a point-in-time overlay: it reflects the clients' loan
// balances at the moment the report runs, not at the end of the window.
type FinancialReport struct {
	Period struct {
		StartDate *time.Time `json:"startDate"`
		EndDate   *time.Time `json:"endDate"`
	} `json:"period"`
	Revenue struct {
		TotalSales        float64 `json:"totalSales"`
		TotalLoanPayments float64 `json:"totalLoanPayments"`
		GrossRevenue      float64 `json:"grossRevenue"`
	} `json:"revenue"`
	Transactions struct {
		TotalSales        int     `json:"totalSales"`
		TotalLoanPayments int     `json:"totalLoanPayments"`
		AverageSaleValue  float64 `json:"averageSaleValue"`
	} `json:"transactions"`
	Loans struct {
		ActiveLoans      int     `json:"activeLoans"`
		TotalOutstanding float64 `json:"totalOutstanding"`
	} `json:"loans"`
}

// ReportType selects what an export covers.
type ReportType string

const (
	ReportSales     ReportType = "sales"
	ReportInventory ReportType = "inventory"
	ReportFinancial ReportType = "financial"
	ReportClients   ReportType = "clients"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// Export is a report flattened into rows of scalar columns. CSV is filled
// only for the CSV format; its header is the union of keys across all
// rows, so heterogeneous row shapes export with blanks rather than
// dropped columns.
type Export struct {
	Type ReportType       `json:"type"`
	Rows []map[string]any `json:"rows"`
	CSV  string           `json:"-"`
}

// Dashboard is the at-a-glance state of the shop.
type Dashboard struct {
	DailyIncome      float64               `json:"dailyIncome"`
	WeeklyIncome     float64               `json:"weeklyIncome"`
	MonthlyIncome    float64               `json:"monthlyIncome"`
	ClientsWithLoans []domain.Client       `json:"clientsWithLoans"`
	LowStockProducts []domain.Product      `json:"lowStockProducts"`
	Notifications    []domain.Notification `json:"notifications"`
}

// AnalyticsService derives reports from the immutable transaction history.
// All methods are pure reads over a consistent snapshot of the store.
type AnalyticsService interface {
	SalesOverview(ctx context.Context, period Period) (*SalesOverview, error)
	FinancialReport(ctx context.Context, startDate, endDate *time.Time) (*FinancialReport, error)
	ExportReport(ctx context.Context, reportType ReportType, format ExportFormat) (*Export, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}
