package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputOptions controls how subscriptions are displayed
type OutputOptions struct {
	ShowFilter     string // active, inactive or all
	CategoryFilter []string
	SortField      string // name, amount, start or usage
	SortDir        string
	Currency       Currency
}

// JSONList is the root JSON output object of the list command
type JSONList struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Summary       JSONSummary    `json:"summary"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count        int     `json:"count"`
	ActiveCount  int     `json:"active_count"`
	MonthlyTotal float64 `json:"monthly_total"`
	YearlyTotal  float64 `json:"yearly_total"`
	Currency     string  `json:"currency"`
	Backend      string  `json:"backend,omitempty"`
}

// PrintJSON writes v as indented JSON
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// PrintSubscriptionsJSON outputs subscriptions in JSON format
func PrintSubscriptionsJSON(w io.Writer, subs []Subscription, currency Currency, backend string) error {
	if subs == nil {
		subs = []Subscription{}
	}
	yearly := yearlyTotal(subs, currency.Code)
	return PrintJSON(w, JSONList{
		Subscriptions: subs,
		Summary: JSONSummary{
			Count:        len(subs),
			ActiveCount:  len(FilterActive(subs)),
			MonthlyTotal: roundCents(yearly / 12),
			YearlyTotal:  roundCents(yearly),
			Currency:     currency.Code,
			Backend:      backend,
		},
	})
}

// PrintSubscriptionsTable outputs subscriptions as a formatted table. Prices are shown
// in their own currency, the yearly column and totals in the display currency.
func PrintSubscriptionsTable(w io.Writer, allSubs []Subscription, displaySubs []Subscription, opts OutputOptions) {
	activeCount := len(FilterActive(allSubs))
	fmt.Fprintf(w, "Found %d subscriptions (%d active, %d inactive)\n",
		len(allSubs), activeCount, len(allSubs)-activeCount)
	showingStr := opts.ShowFilter
	if len(opts.CategoryFilter) > 0 {
		showingStr += fmt.Sprintf(", categories: %s", strings.Join(opts.CategoryFilter, ", "))
	}
	fmt.Fprintf(w, "Showing: %s\n\n", showingStr)

	SortSubscriptions(displaySubs, opts.SortField, opts.SortDir)

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"ID", "Name", "Provider", "Category", "Status", "Cycle", "Started", "Price", "Yearly", "Used"}
	t.AppendHeader(header)

	for _, sub := range displaySubs {
		status := text.FgGreen.Sprint("ACTIVE")
		if !sub.ActiveStatus {
			status = text.FgRed.Sprint("INACTIVE")
		}

		yearlyStr := opts.Currency.FormatConverted(AnnualCost(sub), sub.Currency)
		if !sub.ActiveStatus {
			yearlyStr = text.FgHiBlack.Sprint("-")
		}

		started := "-"
		if !sub.StartDate.IsZero() {
			started = sub.StartDate.String()
		}

		t.AppendRow(table.Row{
			shortID(sub.ID),
			sub.Name,
			sub.Provider,
			sub.Category,
			status,
			string(sub.BillingCycle),
			started,
			GetCurrency(sub.Currency).Format(sub.Amount),
			yearlyStr,
			sub.UsageCount,
		})
	}

	t.AppendSeparator()

	yearly := yearlyTotal(displaySubs, opts.Currency.Code)
	t.AppendFooter(table.Row{"", "", "", "", "", "", "",
		text.Bold.Sprint("Total (active)"),
		text.Bold.Sprint(opts.Currency.Format(yearly)),
		""})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
		{Number: 10, Align: text.AlignRight},
	})

	t.Render()
}

// PrintReportTable renders the category breakdown, the monthly timeline and goal progress
func PrintReportTable(w io.Writer, r Report) {
	cur := GetCurrency(r.Currency)

	fmt.Fprintf(w, "%d active of %d subscriptions\n", r.ActiveCount, r.TotalCount)
	fmt.Fprintf(w, "Annual: %s   Monthly: %s\n\n", cur.Format(r.AnnualTotal), cur.Format(r.MonthlyAvg))

	cats := table.NewWriter()
	cats.SetOutputMirror(w)
	cats.SetTitle("By category")
	cats.AppendHeader(table.Row{"Category", "Yearly", "Share"})
	for _, c := range r.Categories {
		cats.AppendRow(table.Row{c.Name, cur.Format(c.Value), fmt.Sprintf("%.1f%%", c.Share)})
	}
	cats.SetStyle(table.StyleRounded)
	cats.Style().Format.Header = text.FormatDefault
	cats.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	cats.Render()
	fmt.Fprintln(w)

	months := table.NewWriter()
	months.SetOutputMirror(w)
	months.SetTitle("Charges per month")
	header := table.Row{}
	row := table.Row{}
	for _, m := range r.Timeline {
		header = append(header, m.Month)
		row = append(row, cur.Format(m.Total))
	}
	months.AppendHeader(header)
	months.AppendRow(row)
	months.SetStyle(table.StyleRounded)
	months.Style().Format.Header = text.FormatDefault
	months.Render()

	if len(r.Goals) == 0 {
		return
	}
	fmt.Fprintln(w)

	goals := table.NewWriter()
	goals.SetOutputMirror(w)
	goals.SetTitle("Spending goals")
	goals.AppendHeader(table.Row{"Goal", "Limit", "Spent", "Margin", "Status"})
	for _, g := range r.Goals {
		goalCur := GetCurrency(g.Goal.Currency)
		status := text.FgGreen.Sprint("OK")
		if g.Over {
			status = text.FgRed.Sprint("OVER")
		}
		goals.AppendRow(table.Row{
			string(g.Goal.Type),
			goalCur.Format(g.Goal.Amount),
			goalCur.Format(g.Spent),
			goalCur.Format(g.Margin),
			status,
		})
	}
	goals.SetStyle(table.StyleRounded)
	goals.Style().Format.Header = text.FormatDefault
	goals.Render()
}

// PrintDuplicatesTable lists probable duplicates of a candidate, best match first
func PrintDuplicatesTable(w io.Writer, candidate Subscription, matches []DuplicateMatch) {
	fmt.Fprintf(w, "%q looks like %d existing subscription(s):\n", candidate.Name, len(matches))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Provider", "Category", "Price", "Score", "Reasons"})
	for _, m := range matches {
		t.AppendRow(table.Row{
			shortID(m.Subscription.ID),
			m.Subscription.Name,
			m.Subscription.Provider,
			m.Subscription.Category,
			GetCurrency(m.Subscription.Currency).Format(m.Subscription.Amount),
			fmt.Sprintf("%.1f", m.Similarity),
			m.Reason,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}

func PrintGoalsTable(w io.Writer, goals []SpendingGoal) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Type", "Limit"})
	for _, g := range goals {
		t.AppendRow(table.Row{g.ID, string(g.Type), GetCurrency(g.Currency).Format(g.Amount)})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}

func PrintCategoriesTable(w io.Writer, cats []CustomCategory) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Color", "Icon"})
	for _, c := range cats {
		t.AppendRow(table.Row{c.ID, c.Name, c.Color, c.Icon})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}

// SortSubscriptions sorts subs in place by field (name, amount, start, usage).
// Amounts are compared in the base currency.
func SortSubscriptions(subs []Subscription, field, dir string) {
	sort.SliceStable(subs, func(i, j int) bool {
		a, b := subs[i], subs[j]
		if dir == "desc" {
			a, b = b, a
		}
		switch field {
		case "amount":
			return Convert(AnnualCost(a), a.Currency, BaseCurrency) < Convert(AnnualCost(b), b.Currency, BaseCurrency)
		case "start":
			return a.StartDate.Before(b.StartDate.Time)
		case "usage":
			return a.UsageCount < b.UsageCount
		default: // "name"
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
}

// FilterByStatus filters subscriptions by status (active/inactive/all)
func FilterByStatus(subs []Subscription, show string) []Subscription {
	if show == "all" {
		return subs
	}
	var result []Subscription
	for _, sub := range subs {
		if show == "active" && sub.ActiveStatus {
			result = append(result, sub)
		} else if show == "inactive" && !sub.ActiveStatus {
			result = append(result, sub)
		}
	}
	return result
}

// FilterByCategories keeps subscriptions whose category matches one of categories
func FilterByCategories(subs []Subscription, categories []string) []Subscription {
	if len(categories) == 0 {
		return subs
	}
	var result []Subscription
	for _, sub := range subs {
		for _, c := range categories {
			if strings.EqualFold(sub.Category, c) {
				result = append(result, sub)
				break
			}
		}
	}
	return result
}

func yearlyTotal(subs []Subscription, displayCurrency string) float64 {
	var total float64
	for _, sub := range FilterActive(subs) {
		total += Convert(AnnualCost(sub), sub.Currency, displayCurrency)
	}
	return total
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
