package internal

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Preferences holds the auxiliary collections: spending goals, custom categories
// and the display currency. They live in the local blob store only and every
// mutation writes the whole collection back.
type Preferences struct {
	blobs BlobStore

	mu sync.Mutex
}

func NewPreferences(blobs BlobStore) *Preferences {
	return &Preferences{blobs: blobs}
}

func (p *Preferences) Goals() ([]SpendingGoal, error) {
	var goals []SpendingGoal
	if _, err := p.blobs.Get(KeySpendingGoals, &goals); err != nil {
		return nil, fmt.Errorf("reading spending goals: %w", err)
	}
	return goals, nil
}

// AddGoal assigns an id to goal and appends it
func (p *Preferences) AddGoal(goal SpendingGoal) (SpendingGoal, error) {
	if goal.Type != GoalMonthly && goal.Type != GoalAnnual {
		return SpendingGoal{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("unsupported value %q", goal.Type)}
	}
	if err := validateAmount(goal.Amount); err != nil {
		return SpendingGoal{}, err
	}
	if !IsSupportedCurrency(goal.Currency) {
		return SpendingGoal{}, &ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported value %q", goal.Currency)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	goals, err := p.Goals()
	if err != nil {
		return SpendingGoal{}, err
	}
	goal.ID = uuid.NewString()
	goals = append(goals, goal)
	if err := p.blobs.Put(KeySpendingGoals, goals); err != nil {
		return SpendingGoal{}, fmt.Errorf("writing spending goals: %w", err)
	}
	return goal, nil
}

// UpdateGoal replaces amount and currency of the goal with id. Unknown ids are ignored.
func (p *Preferences) UpdateGoal(id string, amount float64, currency string) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if !IsSupportedCurrency(currency) {
		return &ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported value %q", currency)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	goals, err := p.Goals()
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].ID == id {
			goals[i].Amount = amount
			goals[i].Currency = currency
		}
	}
	if err := p.blobs.Put(KeySpendingGoals, goals); err != nil {
		return fmt.Errorf("writing spending goals: %w", err)
	}
	return nil
}

func (p *Preferences) DeleteGoal(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	goals, err := p.Goals()
	if err != nil {
		return err
	}
	goals = slices.DeleteFunc(goals, func(g SpendingGoal) bool { return g.ID == id })
	if err := p.blobs.Put(KeySpendingGoals, goals); err != nil {
		return fmt.Errorf("writing spending goals: %w", err)
	}
	return nil
}

func (p *Preferences) Categories() ([]CustomCategory, error) {
	var cats []CustomCategory
	if _, err := p.blobs.Get(KeyCustomCategories, &cats); err != nil {
		return nil, fmt.Errorf("reading custom categories: %w", err)
	}
	return cats, nil
}

func (p *Preferences) AddCategory(cat CustomCategory) (CustomCategory, error) {
	if strings.TrimSpace(cat.Name) == "" {
		return CustomCategory{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if cat.Icon == "" {
		cat.Icon = DefaultIcon
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cats, err := p.Categories()
	if err != nil {
		return CustomCategory{}, err
	}
	cat.ID = uuid.NewString()
	cats = append(cats, cat)
	if err := p.blobs.Put(KeyCustomCategories, cats); err != nil {
		return CustomCategory{}, fmt.Errorf("writing custom categories: %w", err)
	}
	return cat, nil
}

func (p *Preferences) DeleteCategory(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cats, err := p.Categories()
	if err != nil {
		return err
	}
	cats = slices.DeleteFunc(cats, func(c CustomCategory) bool { return c.ID == id })
	if err := p.blobs.Put(KeyCustomCategories, cats); err != nil {
		return fmt.Errorf("writing custom categories: %w", err)
	}
	return nil
}

// DisplayCurrency returns the stored display currency, or fallback when none is stored
func (p *Preferences) DisplayCurrency(fallback string) (string, error) {
	var code string
	ok, err := p.blobs.Get(KeyDisplayCurrency, &code)
	if err != nil {
		return "", fmt.Errorf("reading display currency: %w", err)
	}
	if !ok || !IsSupportedCurrency(code) {
		return fallback, nil
	}
	return code, nil
}

func (p *Preferences) SetDisplayCurrency(code string) error {
	code = strings.ToUpper(code)
	if !IsSupportedCurrency(code) {
		return &ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported value %q", code)}
	}
	if err := p.blobs.Put(KeyDisplayCurrency, code); err != nil {
		return fmt.Errorf("writing display currency: %w", err)
	}
	return nil
}
