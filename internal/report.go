package internal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedName is used for subscriptions without a category
const UncategorizedName = "Other"

// AnnualCost returns the yearly cost of sub in its own currency
func AnnualCost(sub Subscription) float64 {
	switch sub.BillingCycle {
	case BillingMonthly:
		return sub.Amount * 12
	case BillingYearly:
		return sub.Amount
	default:
		return 0
	}
}

type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share float64 `json:"share"` // percent of the annual total
}

type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type GoalProgress struct {
	Goal   SpendingGoal `json:"goal"`
	Spent  float64      `json:"spent"` // in the goal's currency
	Over   bool         `json:"over"`
	Margin float64      `json:"margin"` // goal amount minus spent
}

// Report aggregates the active subscriptions in one display currency
type Report struct {
	Currency    string          `json:"currency"`
	ActiveCount int             `json:"active_count"`
	TotalCount  int             `json:"total_count"`
	AnnualTotal float64         `json:"annual_total"`
	MonthlyAvg  float64         `json:"monthly_total"`
	Categories  []CategoryTotal `json:"categories"`
	Timeline    []MonthTotal    `json:"timeline"`
	Goals       []GoalProgress  `json:"goals,omitempty"`
}

// BuildReport computes category totals, the monthly timeline and goal progress
// from the active subscriptions. Amounts are converted into displayCurrency.
func BuildReport(subs []Subscription, displayCurrency string, goals []SpendingGoal) Report {
	active := FilterActive(subs)

	byCategory := map[string]decimal.Decimal{}
	var order []string
	annual := decimal.Zero
	for _, sub := range active {
		name := sub.Category
		if name == "" {
			name = UncategorizedName
		}
		cost := decimal.NewFromFloat(Convert(AnnualCost(sub), sub.Currency, displayCurrency))
		if _, seen := byCategory[name]; !seen {
			order = append(order, name)
		}
		byCategory[name] = byCategory[name].Add(cost)
		annual = annual.Add(cost)
	}

	categories := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		value := byCategory[name]
		share := 0.0
		if !annual.IsZero() {
			share = value.Div(annual).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
		}
		categories = append(categories, CategoryTotal{Name: name, Value: value.Round(2).InexactFloat64(), Share: share})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Value > categories[j].Value
	})

	report := Report{
		Currency:    displayCurrency,
		ActiveCount: len(active),
		TotalCount:  len(subs),
		AnnualTotal: annual.Round(2).InexactFloat64(),
		MonthlyAvg:  annual.Div(decimal.NewFromInt(12)).Round(2).InexactFloat64(),
		Categories:  categories,
		Timeline:    buildTimeline(active, displayCurrency),
	}

	for _, g := range goals {
		report.Goals = append(report.Goals, goalProgress(g, annual, displayCurrency))
	}
	return report
}

// buildTimeline spreads charges over the twelve months: monthly subscriptions charge
// every month, yearly ones the month they started in
func buildTimeline(active []Subscription, displayCurrency string) []MonthTotal {
	var months [12]decimal.Decimal
	for _, sub := range active {
		amount := decimal.NewFromFloat(Convert(sub.Amount, sub.Currency, displayCurrency))
		switch sub.BillingCycle {
		case BillingMonthly:
			for i := range months {
				months[i] = months[i].Add(amount)
			}
		case BillingYearly:
			if sub.StartDate.IsZero() {
				continue
			}
			m := sub.StartDate.Month() - 1
			months[m] = months[m].Add(amount)
		}
	}

	timeline := make([]MonthTotal, 12)
	for i := range months {
		timeline[i] = MonthTotal{
			Month: time.Month(i + 1).String()[:3],
			Total: months[i].Round(2).InexactFloat64(),
		}
	}
	return timeline
}

func goalProgress(g SpendingGoal, annual decimal.Decimal, displayCurrency string) GoalProgress {
	spentDisplay := annual
	if g.Type == GoalMonthly {
		spentDisplay = annual.Div(decimal.NewFromInt(12))
	}
	spent := decimal.NewFromFloat(Convert(spentDisplay.InexactFloat64(), displayCurrency, g.Currency)).Round(2)
	limit := decimal.NewFromFloat(g.Amount)
	return GoalProgress{
		Goal:   g,
		Spent:  spent.InexactFloat64(),
		Over:   spent.GreaterThan(limit),
		Margin: limit.Sub(spent).Round(2).InexactFloat64(),
	}
}

// FilterActive returns the subscriptions with activeStatus set
func FilterActive(subs []Subscription) []Subscription {
	var result []Subscription
	for _, sub := range subs {
		if sub.ActiveStatus {
			result = append(result, sub)
		}
	}
	return result
}
