package internal

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(time.Date(2024, 1, 15, 13, 45, 0, 0, time.FixedZone("CET", 3600)))
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-01-15"` {
		t.Errorf("Marshal = %s, want \"2024-01-15\"", data)
	}

	var zero Date
	data, _ = json.Marshal(zero)
	if string(data) != `""` {
		t.Errorf("zero date marshals as %s, want empty string", data)
	}

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{`"2024-01-15"`, "2024-01-15", false},
		{`"2024-01-15T23:30:00Z"`, "2024-01-15", false},
		{`""`, "", false},
		{`"15/01/2024"`, "", true},
		{`20240115`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Date
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestBillingCycle_Valid(t *testing.T) {
	for _, c := range []BillingCycle{BillingMonthly, BillingYearly} {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range []BillingCycle{"", "weekly", "Monthly"} {
		if c.Valid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestValidate(t *testing.T) {
	base := Subscription{Name: "Netflix", BillingCycle: BillingMonthly, Amount: 9.99, Currency: "USD"}

	tests := []struct {
		name   string
		mutate func(*Subscription)
		field  string
	}{
		{"valid", func(*Subscription) {}, ""},
		{"empty name", func(s *Subscription) { s.Name = "" }, "name"},
		{"NaN amount", func(s *Subscription) { s.Amount = math.NaN() }, "amount"},
		{"infinite amount", func(s *Subscription) { s.Amount = math.Inf(1) }, "amount"},
		{"zero amount", func(s *Subscription) { s.Amount = 0 }, "amount"},
		{"empty cycle", func(s *Subscription) { s.BillingCycle = "" }, "billingCycle"},
		{"lowercase currency", func(s *Subscription) { s.Currency = "usd" }, "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := base
			tt.mutate(&sub)
			err := Validate(sub)
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestPatch(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}

	name := "Netflix Premium"
	active := false
	used := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	p := Patch{Name: &name, ActiveStatus: &active, LastUsed: &used}
	if p.IsEmpty() {
		t.Error("patch with fields should not be empty")
	}

	sub := Subscription{ID: "1", Name: "Netflix", Amount: 9.99, ActiveStatus: true}
	p.Apply(&sub)

	if sub.ID != "1" || sub.Amount != 9.99 {
		t.Errorf("unset fields changed: %+v", sub)
	}
	if sub.Name != name || sub.ActiveStatus {
		t.Errorf("set fields not applied: %+v", sub)
	}
	if sub.LastUsed == nil || !sub.LastUsed.Equal(used) {
		t.Errorf("LastUsed = %v", sub.LastUsed)
	}
	if sub.LastUsed == &used {
		t.Error("LastUsed should be copied, not aliased")
	}
}

func TestValidatePatch(t *testing.T) {
	empty := " "
	zero := 0.0
	bad := BillingCycle("daily")
	sek := "SEK"
	negative := -1

	for name, p := range map[string]Patch{
		"name":         {Name: &empty},
		"amount":       {Amount: &zero},
		"billingCycle": {BillingCycle: &bad},
		"currency":     {Currency: &sek},
		"usageCount":   {UsageCount: &negative},
	} {
		t.Run(name, func(t *testing.T) {
			ve, ok := ValidatePatch(p).(*ValidationError)
			if !ok || ve.Field != name {
				t.Errorf("ValidatePatch() = %v, want error on %s", ve, name)
			}
		})
	}

	if err := ValidatePatch(Patch{}); err != nil {
		t.Errorf("empty patch should validate, got %v", err)
	}
}

func TestWithDefaults(t *testing.T) {
	sub := Subscription{UsageCount: -3}.withDefaults()
	if sub.Icon != DefaultIcon {
		t.Errorf("Icon = %q, want %q", sub.Icon, DefaultIcon)
	}
	if sub.UsageCount != 0 {
		t.Errorf("UsageCount = %d, want 0", sub.UsageCount)
	}

	kept := Subscription{Icon: "film"}.withDefaults()
	if kept.Icon != "film" {
		t.Errorf("Icon = %q, want film", kept.Icon)
	}
}
