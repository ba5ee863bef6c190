package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/ports"
	"github.com/mannager/pos-system/internal/store"
)

const defaultTopProducts = 10

// AnalyticsService derives reports from the transaction history. It never
// mutates; every method reads one consistent snapshot of the store and
// hands the collections to the pure aggregation functions below.
type AnalyticsService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewAnalyticsService(st *store.Store, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{store: st, logger: logger}
}

func (s *AnalyticsService) SalesOverview(ctx context.Context, period ports.Period) (*ports.SalesOverview, error) {
	if !period.Valid() {
		return nil, domain.Validationf("unknown period %q", period)
	}

	var overview ports.SalesOverview
	s.store.View(func(data *store.Data) {
		overview.SalesOverview = BucketSalesByPeriod(data.Transactions, period)
		overview.TopProducts = TopSellingProducts(data.Transactions, defaultTopProducts)
		overview.ClientStats = ClientStatistics(data.Transactions, data.Clients)

		for _, b := range overview.SalesOverview {
			overview.Summary.TotalRevenue += b.Revenue
			overview.Summary.TotalTransactions += b.Transactions
		}
		overview.Summary.AverageSale = AverageSale(data.Transactions)
	})
	return &overview, nil
}

func (s *AnalyticsService) FinancialReport(ctx context.Context, startDate, endDate *time.Time) (*ports.FinancialReport, error) {
	var report *ports.FinancialReport
	s.store.View(func(data *store.Data) {
		report = FinancialReport(data.Transactions, data.Clients, startDate, endDate)
	})
	return report, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	dash := &ports.Dashboard{
		ClientsWithLoans: []domain.Client{},
		LowStockProducts: []domain.Product{},
		Notifications:    []domain.Notification{},
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	s.store.View(func(data *store.Data) {
		weekStart := now.AddDate(0, 0, -7)
		monthStart := now.AddDate(0, 0, -30)
		for _, t := range data.Transactions {
			if t.Type != domain.TxSale {
				continue
			}
			if !t.Date.Before(dayStart) {
				dash.DailyIncome += t.Paid
			}
			if t.Date.After(weekStart) {
				dash.WeeklyIncome += t.Paid
			}
			if t.Date.After(monthStart) {
				dash.MonthlyIncome += t.Paid
			}
		}

		for _, c := range data.Clients {
			if c.Loan > 0 {
				dash.ClientsWithLoans = append(dash.ClientsWithLoans, *c)
			}
		}
		for _, p := range data.Products {
			if p.LowStock() {
				dash.LowStockProducts = append(dash.LowStockProducts, *p)
			}
		}

		// Most recent 10, newest first.
		n := len(data.Notifications)
		for i := n - 1; i >= 0 && i >= n-10; i-- {
			dash.Notifications = append(dash.Notifications, data.Notifications[i])
		}
	})
	return dash, nil
}

// BucketSalesByPeriod groups sales into calendar buckets and accumulates
// paid revenue and transaction counts. Buckets come back ordered by their
// underlying start instant — weekly labels embed a date string that does
// not sort lexically, so the label is never used for ordering.
func BucketSalesByPeriod(transactions []domain.Transaction, period ports.Period) []ports.PeriodBucket {
	byLabel := map[string]*ports.PeriodBucket{}

	for _, t := range transactions {
		if t.Type != domain.TxSale {
			continue
		}

		start, label := bucketKey(t.Date, period)
		b, ok := byLabel[label]
		if !ok {
			b = &ports.PeriodBucket{Date: label, Start: start}
			byLabel[label] = b
		}
		b.Revenue += t.Paid
		b.Transactions++
	}

	buckets := make([]ports.PeriodBucket, 0, len(byLabel))
	for _, b := range byLabel {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })
	return buckets
}

// bucketKey computes a bucket's start instant and display label for a
// recorded sale date.
func bucketKey(date time.Time, period ports.Period) (time.Time, string) {
	switch period {
	case ports.PeriodDaily:
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		return start, start.Format("2006-01-02")
	case ports.PeriodWeekly:
		// ISO weeks start on Monday.
		offset := (int(date.Weekday()) + 6) % 7
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		start := day.AddDate(0, 0, -offset)
		return start, "Week " + start.Format("2006-01-02")
	case ports.PeriodMonthly:
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		return start, start.Format("2006-01")
	default: // yearly
		start := time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
		return start, start.Format("2006")
	}
}

// TopSellingProducts aggregates quantity and revenue per product across
// all sale line items, using the prices recorded at sale time. Products
// are ordered by revenue descending; equal revenue keeps the order of
// first appearance in the transaction log.
func TopSellingProducts(transactions []domain.Transaction, limit int) []ports.ProductSales {
	if limit <= 0 {
		limit = defaultTopProducts
	}

	index := map[int64]int{}
	products := []ports.ProductSales{}

	for _, t := range transactions {
		if t.Type != domain.TxSale {
			continue
		}
		for _, item := range t.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(products)
				index[item.ProductID] = i
				products = append(products, ports.ProductSales{
					ProductID:   item.ProductID,
					ProductName: item.Name,
				})
			}
			products[i].Quantity += item.Quantity
			products[i].Revenue += item.Price * float64(item.Quantity)
		}
	}

	sort.SliceStable(products, func(i, j int) bool { return products[i].Revenue > products[j].Revenue })
	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

// ClientStatistics aggregates spend, transaction count and last purchase
// date per client. Names resolve against the current client records; a
// client that no longer exists shows as "Unknown".
func ClientStatistics(transactions []domain.Transaction, clients []*domain.Client) []ports.ClientStats {
	names := make(map[int64]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	index := map[int64]int{}
	stats := []ports.ClientStats{}

	for _, t := range transactions {
		if t.Type != domain.TxSale {
			continue
		}
		i, ok := index[t.ClientID]
		if !ok {
			name, found := names[t.ClientID]
			if !found {
				name = "Unknown"
			}
			i = len(stats)
			index[t.ClientID] = i
			stats = append(stats, ports.ClientStats{
				ClientID:     t.ClientID,
				ClientName:   name,
				LastPurchase: t.Date,
			})
		}
		stats[i].TotalSpent += t.Paid
		stats[i].Transactions++
		if t.Date.After(stats[i].LastPurchase) {
			stats[i].LastPurchase = t.Date
		}
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalSpent > stats[j].TotalSpent })
	return stats
}

// AverageSale returns the mean paid amount across all sales, zero when
// there are none.
func AverageSale(transactions []domain.Transaction) float64 {
	var total float64
	var count int
	for _, t := range transactions {
		if t.Type == domain.TxSale {
			total += t.Paid
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// FinancialReport covers the inclusive [startDate, endDate] window over
// recorded transaction dates (defaulting to epoch start and now). The
// Loans block is a point-in-time overlay: current balances, not balances
// as of endDate — callers see this documented on the result type.
func FinancialReport(transactions []domain.Transaction, clients []*domain.Client, startDate, endDate *time.Time) *ports.FinancialReport {
	start := time.Unix(0, 0)
	if startDate != nil {
		start = *startDate
	}
	end := time.Now()
	if endDate != nil {
		end = *endDate
	}

	report := &ports.FinancialReport{}
	report.Period.StartDate = startDate
	report.Period.EndDate = endDate

	for _, t := range transactions {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		switch t.Type {
		case domain.TxSale:
			report.Revenue.TotalSales += t.Paid
			report.Transactions.TotalSales++
		case domain.TxLoanPayment:
			report.Revenue.TotalLoanPayments += t.Amount
			report.Transactions.TotalLoanPayments++
		}
	}
	report.Revenue.GrossRevenue = report.Revenue.TotalSales + report.Revenue.TotalLoanPayments
	if report.Transactions.TotalSales > 0 {
		report.Transactions.AverageSaleValue = report.Revenue.TotalSales / float64(report.Transactions.TotalSales)
	}

	for _, c := range clients {
		if c.Loan > 0 {
			report.Loans.ActiveLoans++
		}
		report.Loans.TotalOutstanding += c.Loan
	}
	return report
}
