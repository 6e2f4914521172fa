package internal

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ImportRecord is a subscription-shaped record read from an import file. Amount is
// nil when the source had no usable value.
type ImportRecord struct {
	ID           string       `json:"id,omitempty"`
	Name         string       `json:"name"`
	Provider     string       `json:"provider"`
	Category     string       `json:"category"`
	Icon         string       `json:"icon,omitempty"`
	StartDate    Date         `json:"startDate"`
	BillingCycle BillingCycle `json:"billingCycle"`
	Amount       *float64     `json:"amount,omitempty"`
	Currency     string       `json:"currency"`
	Notes        string       `json:"notes,omitempty"`
	ActiveStatus bool         `json:"activeStatus"`
	AutoRenew    bool         `json:"autoRenew"`
	UsageCount   int          `json:"usageCount,omitempty"`
	LastUsed     *time.Time   `json:"lastUsed,omitempty"`
}

// admissible is the minimal gate: a name and a defined amount
func (r ImportRecord) admissible() bool {
	return strings.TrimSpace(r.Name) != "" && r.Amount != nil && !math.IsNaN(*r.Amount)
}

func (r ImportRecord) subscription() Subscription {
	return Subscription{
		ID:           r.ID,
		Name:         r.Name,
		Provider:     r.Provider,
		Category:     r.Category,
		Icon:         r.Icon,
		StartDate:    r.StartDate,
		BillingCycle: r.BillingCycle,
		Amount:       *r.Amount,
		Currency:     r.Currency,
		Notes:        r.Notes,
		ActiveStatus: r.ActiveStatus,
		AutoRenew:    r.AutoRenew,
		UsageCount:   r.UsageCount,
		LastUsed:     r.LastUsed,
	}
}

// ImportResult counts what happened to each record of a batch
type ImportResult struct {
	Received int `json:"received"`
	Skipped  int `json:"skipped"`  // failed the name/amount gate
	Rejected int `json:"rejected"` // failed create-time validation
	Imported int `json:"imported"`
}

// Importer feeds external records into a Store. Imported records bypass duplicate
// detection; only the interactive add path checks for duplicates.
type Importer struct {
	store *Store
	log   *zap.Logger
}

func NewImporter(store *Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: store, log: log}
}

// ImportBatch creates every admissible record. Records without a name or amount
// are dropped silently; records failing validation are dropped with a warning.
// A persistence failure aborts the rest of the batch.
func (im *Importer) ImportBatch(ctx context.Context, records []ImportRecord) (ImportResult, error) {
	result := ImportResult{Received: len(records)}

	for i, rec := range records {
		if !rec.admissible() {
			result.Skipped++
			continue
		}

		_, err := im.store.Create(ctx, rec.subscription())
		if IsValidation(err) {
			im.log.Warn("dropping invalid import record", zap.Int("index", i), zap.String("name", rec.Name), zap.Error(err))
			result.Rejected++
			continue
		}
		if err != nil {
			im.log.Error("import aborted", zap.Int("index", i), zap.Int("imported", result.Imported), zap.Error(err))
			return result, fmt.Errorf("importing record %d (%s): %w", i, rec.Name, err)
		}
		result.Imported++
	}

	return result, nil
}
