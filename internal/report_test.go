package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() []Subscription {
	return []Subscription{
		{ID: "a", Name: "Netflix", Category: "Entertainment", BillingCycle: BillingMonthly, Amount: 10, Currency: "USD", ActiveStatus: true},
		{ID: "b", Name: "Festival pass", Category: "Entertainment", BillingCycle: BillingYearly, Amount: 24, Currency: "USD", ActiveStatus: true,
			StartDate: NewDate(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))},
		{ID: "c", Name: "Cloud backup", BillingCycle: BillingMonthly, Amount: 5, Currency: "USD", ActiveStatus: true},
		{ID: "d", Name: "Old gym", Category: "Health", BillingCycle: BillingMonthly, Amount: 100, Currency: "USD", ActiveStatus: false},
	}
}

func TestAnnualCost(t *testing.T) {
	assert.Equal(t, 120.0, AnnualCost(Subscription{BillingCycle: BillingMonthly, Amount: 10}))
	assert.Equal(t, 10.0, AnnualCost(Subscription{BillingCycle: BillingYearly, Amount: 10}))
	assert.Equal(t, 0.0, AnnualCost(Subscription{BillingCycle: "weekly", Amount: 10}))
}

func TestBuildReport_Totals(t *testing.T) {
	r := BuildReport(reportFixture(), "USD", nil)

	assert.Equal(t, "USD", r.Currency)
	assert.Equal(t, 3, r.ActiveCount)
	assert.Equal(t, 4, r.TotalCount)
	assert.Equal(t, 204.0, r.AnnualTotal)
	assert.Equal(t, 17.0, r.MonthlyAvg)
	assert.Empty(t, r.Goals)
}

func TestBuildReport_Categories(t *testing.T) {
	r := BuildReport(reportFixture(), "USD", nil)

	require.Len(t, r.Categories, 2, "inactive subscriptions do not contribute")
	assert.Equal(t, CategoryTotal{Name: "Entertainment", Value: 144, Share: 70.6}, r.Categories[0])
	assert.Equal(t, CategoryTotal{Name: UncategorizedName, Value: 60, Share: 29.4}, r.Categories[1])
}

func TestBuildReport_Timeline(t *testing.T) {
	r := BuildReport(reportFixture(), "USD", nil)

	require.Len(t, r.Timeline, 12)
	assert.Equal(t, "Jan", r.Timeline[0].Month)
	assert.Equal(t, "Dec", r.Timeline[11].Month)
	for i, m := range r.Timeline {
		want := 15.0
		if i == 2 {
			want = 39
		}
		assert.Equal(t, want, m.Total, "month %s", m.Month)
	}
}

func TestBuildReport_YearlyWithoutStartDateSkipsTimeline(t *testing.T) {
	subs := []Subscription{{Name: "Domain", BillingCycle: BillingYearly, Amount: 12, Currency: "USD", ActiveStatus: true}}
	r := BuildReport(subs, "USD", nil)

	assert.Equal(t, 12.0, r.AnnualTotal)
	for _, m := range r.Timeline {
		assert.Zero(t, m.Total)
	}
}

func TestBuildReport_ConvertsCurrency(t *testing.T) {
	subs := []Subscription{
		{Name: "Spotify", BillingCycle: BillingMonthly, Amount: 8.5, Currency: "EUR", ActiveStatus: true},
		{Name: "Hulu", BillingCycle: BillingMonthly, Amount: 10, Currency: "USD", ActiveStatus: true},
	}
	r := BuildReport(subs, "USD", nil)
	assert.InDelta(t, 240.0, r.AnnualTotal, 0.001)
	assert.InDelta(t, 20.0, r.Timeline[5].Total, 0.001)
}

func TestBuildReport_Goals(t *testing.T) {
	goals := []SpendingGoal{
		{ID: "g1", Type: GoalMonthly, Amount: 15, Currency: "USD"},
		{ID: "g2", Type: GoalAnnual, Amount: 300, Currency: "EUR"},
	}
	r := BuildReport(reportFixture(), "USD", goals)

	require.Len(t, r.Goals, 2)

	monthly := r.Goals[0]
	assert.Equal(t, 17.0, monthly.Spent)
	assert.True(t, monthly.Over)
	assert.Equal(t, -2.0, monthly.Margin)

	annual := r.Goals[1]
	assert.InDelta(t, 173.4, annual.Spent, 0.001)
	assert.False(t, annual.Over)
	assert.InDelta(t, 126.6, annual.Margin, 0.001)
}

func TestBuildReport_Empty(t *testing.T) {
	r := BuildReport(nil, "EUR", nil)
	assert.Zero(t, r.AnnualTotal)
	assert.Empty(t, r.Categories)
	assert.Len(t, r.Timeline, 12)
}

func TestFilterActive(t *testing.T) {
	active := FilterActive(reportFixture())
	require.Len(t, active, 3)
	for _, s := range active {
		assert.True(t, s.ActiveStatus)
	}
}
