package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultIcon is the icon key assigned to subscriptions created without one
const DefaultIcon = "default"

const dateLayout = "2006-01-02"

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// Valid reports whether c is one of the supported billing cycles
func (c BillingCycle) Valid() bool {
	return c == BillingMonthly || c == BillingYearly
}

// Date is a calendar date without time of day. It marshals as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Subscription is a recurring payment tracked by the user
type Subscription struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Provider     string       `json:"provider"`
	Category     string       `json:"category"`
	Icon         string       `json:"icon"`
	StartDate    Date         `json:"startDate"`
	BillingCycle BillingCycle `json:"billingCycle"`
	Amount       float64      `json:"amount"`
	Currency     string       `json:"currency"`
	Notes        string       `json:"notes"`
	ActiveStatus bool         `json:"activeStatus"`
	AutoRenew    bool         `json:"autoRenew"`
	UsageCount   int          `json:"usageCount"`
	LastUsed     *time.Time   `json:"lastUsed,omitempty"`
}

// withDefaults fills the fields that have a create-time default
func (s Subscription) withDefaults() Subscription {
	if s.Icon == "" {
		s.Icon = DefaultIcon
	}
	if s.UsageCount < 0 {
		s.UsageCount = 0
	}
	return s
}

// Patch is a partial update. Nil fields are left untouched; the id is never patchable.
type Patch struct {
	Name         *string
	Provider     *string
	Category     *string
	Icon         *string
	StartDate    *Date
	BillingCycle *BillingCycle
	Amount       *float64
	Currency     *string
	Notes        *string
	ActiveStatus *bool
	AutoRenew    *bool
	UsageCount   *int
	LastUsed     *time.Time
}

// IsEmpty reports whether the patch sets no field
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Provider == nil && p.Category == nil && p.Icon == nil &&
		p.StartDate == nil && p.BillingCycle == nil && p.Amount == nil && p.Currency == nil &&
		p.Notes == nil && p.ActiveStatus == nil && p.AutoRenew == nil && p.UsageCount == nil &&
		p.LastUsed == nil
}

// Apply merges the set fields of p into sub
func (p Patch) Apply(sub *Subscription) {
	if p.Name != nil {
		sub.Name = *p.Name
	}
	if p.Provider != nil {
		sub.Provider = *p.Provider
	}
	if p.Category != nil {
		sub.Category = *p.Category
	}
	if p.Icon != nil {
		sub.Icon = *p.Icon
	}
	if p.StartDate != nil {
		sub.StartDate = *p.StartDate
	}
	if p.BillingCycle != nil {
		sub.BillingCycle = *p.BillingCycle
	}
	if p.Amount != nil {
		sub.Amount = *p.Amount
	}
	if p.Currency != nil {
		sub.Currency = *p.Currency
	}
	if p.Notes != nil {
		sub.Notes = *p.Notes
	}
	if p.ActiveStatus != nil {
		sub.ActiveStatus = *p.ActiveStatus
	}
	if p.AutoRenew != nil {
		sub.AutoRenew = *p.AutoRenew
	}
	if p.UsageCount != nil {
		sub.UsageCount = *p.UsageCount
	}
	if p.LastUsed != nil {
		t := *p.LastUsed
		sub.LastUsed = &t
	}
}

// Validate applies the create-time gate to a subscription
func Validate(sub Subscription) error {
	if strings.TrimSpace(sub.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := validateAmount(sub.Amount); err != nil {
		return err
	}
	if !sub.BillingCycle.Valid() {
		return &ValidationError{Field: "billingCycle", Reason: fmt.Sprintf("unsupported value %q", sub.BillingCycle)}
	}
	if !IsSupportedCurrency(sub.Currency) {
		return &ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported value %q", sub.Currency)}
	}
	return nil
}

// ValidatePatch checks only the fields the patch sets
func ValidatePatch(p Patch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.BillingCycle != nil && !p.BillingCycle.Valid() {
		return &ValidationError{Field: "billingCycle", Reason: fmt.Sprintf("unsupported value %q", *p.BillingCycle)}
	}
	if p.Currency != nil && !IsSupportedCurrency(*p.Currency) {
		return &ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported value %q", *p.Currency)}
	}
	if p.UsageCount != nil && *p.UsageCount < 0 {
		return &ValidationError{Field: "usageCount", Reason: "must not be negative"}
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return nil
}

type GoalType string

const (
	GoalMonthly GoalType = "monthly"
	GoalAnnual  GoalType = "annual"
)

// SpendingGoal is a spending limit for a period, expressed in one currency
type SpendingGoal struct {
	ID       string   `json:"id"`
	Type     GoalType `json:"type"`
	Amount   float64  `json:"amount"`
	Currency string   `json:"currency"`
}

// CustomCategory is a user-defined category with display hints
type CustomCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
