// Package finance holds the pure aggregations behind the dashboard cards:
// the cash/transfer summary, the expense category breakdown, the daily
// bar chart series and the monthly report with profit sharing.
package finance

import (
	"sort"
	"time"

	"sirekap-dgn/internal/models"
)

// Partners is the fixed member list the monthly profit is divided among
var Partners = []string{"Daden", "Mardi", "Hamdan", "UMI", "Ramdani"}

// Category options the transaction form offers per type
var (
	IncomeCategories  = []string{"Iuran", "Penjualan", "Layanan", "Gaji", "Lain-lain"}
	ExpenseCategories = []string{"Operasional", "Listrik", "Internet", "Gaji Karyawan", "Transportasi", "Lain-lain"}
)

// ChartColors is the palette the category donut cycles through
var ChartColors = []string{
	"#4f46e5", "#3b82f6", "#10b981", "#f59e0b",
	"#ef4444", "#8b5cf6", "#ec4899", "#64748b",
}

// Bucket holds income/expense/balance for one payment mode (or the total)
type Bucket struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Summary is the three-bucket financial overview
type Summary struct {
	Cash     Bucket `json:"cash"`
	Transfer Bucket `json:"transfer"`
	Total    Bucket `json:"total"`
}

// CalculateSummary folds the full transaction list into per-mode buckets.
// A transaction without an explicit mode counts as a transfer.
func CalculateSummary(transactions []models.Transaction) Summary {
	var cash, transfer Bucket

	for _, t := range transactions {
		target := &transfer
		if t.Mode == models.ModeCash {
			target = &cash
		}
		if t.Type == models.TransactionIncome {
			target.Income += t.Amount
		} else {
			target.Expense += t.Amount
		}
	}

	cash.Balance = cash.Income - cash.Expense
	transfer.Balance = transfer.Income - transfer.Expense

	total := Bucket{
		Income:  cash.Income + transfer.Income,
		Expense: cash.Expense + transfer.Expense,
	}
	total.Balance = total.Income - total.Expense

	return Summary{Cash: cash, Transfer: transfer, Total: total}
}

// CategorySlice is one segment of the expense breakdown
type CategorySlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// CategoryBreakdown groups expenses by category, assigns each group a
// palette color by first-seen order and sorts by amount descending.
// Returns an empty slice when there are no expenses at all.
func CategoryBreakdown(transactions []models.Transaction) []CategorySlice {
	totals := map[string]float64{}
	var order []string
	var totalExpense float64

	for _, t := range transactions {
		if t.Type != models.TransactionExpense {
			continue
		}
		category := t.Category
		if category == "" {
			category = "Lain-lain"
		}
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] += t.Amount
		totalExpense += t.Amount
	}

	if len(order) == 0 {
		return []CategorySlice{}
	}

	slices := make([]CategorySlice, 0, len(order))
	for i, name := range order {
		value := totals[name]
		percentage := 0.0
		if totalExpense > 0 {
			percentage = value / totalExpense * 100
		}
		slices = append(slices, CategorySlice{
			Name:       name,
			Value:      value,
			Percentage: percentage,
			Color:      ChartColors[i%len(ChartColors)],
		})
	}

	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Value > slices[j].Value })
	return slices
}

// ChartPoint is one day's bar in the income/expense chart
type ChartPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

const maxChartDays = 30

// DailySeries buckets transactions by their exact date string, ascending,
// and keeps only the most recent 30 buckets.
func DailySeries(transactions []models.Transaction) []ChartPoint {
	byDate := map[string]*ChartPoint{}

	for _, t := range transactions {
		p, ok := byDate[t.Date]
		if !ok {
			p = &ChartPoint{Date: t.Date}
			byDate[t.Date] = p
		}
		if t.Type == models.TransactionIncome {
			p.Income += t.Amount
		} else {
			p.Expense += t.Amount
		}
	}

	points := make([]ChartPoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	if len(points) > maxChartDays {
		points = points[len(points)-maxChartDays:]
	}
	return points
}

// SeriesMax is the largest single-day value across both series, used for
// the chart's linear y-scale. Returns at least 1 so the scale never
// divides by zero on an empty month.
func SeriesMax(points []ChartPoint) float64 {
	max := 0.0
	for _, p := range points {
		if p.Income > max {
			max = p.Income
		}
		if p.Expense > max {
			max = p.Expense
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}

// MonthlyReport carries everything the monthly report page and its PDF need
type MonthlyReport struct {
	Year            int                  `json:"year"`
	Month           int                  `json:"month"`
	Income          []models.Transaction `json:"income"`
	Expense         []models.Transaction `json:"expense"`
	TotalIncome     float64              `json:"totalIncome"`
	TotalExpense    float64              `json:"totalExpense"`
	Balance         float64              `json:"balance"`
	Partners        []string             `json:"partners"`
	SharePerPartner float64              `json:"sharePerPartner"`
}

// BuildMonthlyReport filters to one calendar month, splits into sorted
// income/expense lists and divides a positive balance evenly among the
// partners. A zero or negative balance distributes nothing.
func BuildMonthlyReport(transactions []models.Transaction, year int, month time.Month) MonthlyReport {
	report := MonthlyReport{
		Year:     year,
		Month:    int(month),
		Income:   []models.Transaction{},
		Expense:  []models.Transaction{},
		Partners: Partners,
	}

	for _, t := range transactions {
		parsed, err := time.Parse("2006-01-02", t.Date)
		if err != nil || parsed.Year() != year || parsed.Month() != month {
			continue
		}
		if t.Type == models.TransactionIncome {
			report.Income = append(report.Income, t)
			report.TotalIncome += t.Amount
		} else {
			report.Expense = append(report.Expense, t)
			report.TotalExpense += t.Amount
		}
	}

	sort.SliceStable(report.Income, func(i, j int) bool { return report.Income[i].Date < report.Income[j].Date })
	sort.SliceStable(report.Expense, func(i, j int) bool { return report.Expense[i].Date < report.Expense[j].Date })

	report.Balance = report.TotalIncome - report.TotalExpense
	if report.Balance > 0 {
		report.SharePerPartner = report.Balance / float64(len(Partners))
	}
	return report
}
