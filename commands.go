package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/gigurra/subtrack/internal"
	"github.com/gigurra/subtrack/internal/pgstore"
)

// paramEnrich is boa's default enrichment with env vars namespaced under SUBTRACK_
var paramEnrich = boa.ParamEnricherCombine(
	boa.ParamEnricherName,
	boa.ParamEnricherShort,
	boa.ParamEnricherEnv,
	boa.ParamEnricherEnvPrefix("SUBTRACK"),
	boa.ParamEnricherBool,
)

// patchEnrich leaves bools without a default so unset flags stay unset
var patchEnrich = boa.ParamEnricherCombine(
	boa.ParamEnricherName,
	boa.ParamEnricherShort,
	boa.ParamEnricherEnv,
	boa.ParamEnricherEnvPrefix("SUBTRACK"),
)

type AddParams struct {
	GlobalParams
	Name      string  `descr:"Subscription name" positional:"true"`
	Amount    float64 `descr:"Price per billing cycle"`
	Currency  string  `descr:"Currency code (default: display currency)" optional:"true"`
	Cycle     string  `descr:"Billing cycle" alts:"monthly,yearly" strict:"true" default:"monthly"`
	Provider  string  `descr:"Provider or vendor"`
	Category  string  `descr:"Category" optional:"true"`
	Icon      string  `descr:"Icon name" optional:"true"`
	Notes     string  `descr:"Free-form notes" optional:"true"`
	Start     string  `descr:"Start date (YYYY-MM-DD)" optional:"true"`
	Inactive  bool    `descr:"Add as inactive"`
	AutoRenew bool    `descr:"Renews automatically"`
	Force     bool    `descr:"Add even if it looks like a duplicate"`
}

func (p *AddParams) subscription(defaultCurrency string) (internal.Subscription, error) {
	sub := internal.Subscription{
		Name:         p.Name,
		Provider:     p.Provider,
		Category:     p.Category,
		Icon:         p.Icon,
		BillingCycle: internal.BillingCycle(p.Cycle),
		Amount:       p.Amount,
		Currency:     strings.ToUpper(p.Currency),
		Notes:        p.Notes,
		ActiveStatus: !p.Inactive,
		AutoRenew:    p.AutoRenew,
	}
	if sub.Currency == "" {
		sub.Currency = defaultCurrency
	}
	if p.Start != "" {
		d, err := internal.ParseDate(p.Start)
		if err != nil {
			return internal.Subscription{}, &internal.ValidationError{Field: "startDate", Reason: err.Error()}
		}
		sub.StartDate = d
	}
	return sub, nil
}

func addCmd() boa.CmdT[AddParams] {
	return boa.NewCmdT[AddParams]("add").
		WithShort("Add a subscription").
		WithLong("Adds a subscription. Probable duplicates of existing subscriptions (same or similar name, same provider, same category at a similar price) abort the add unless --force is given.").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *AddParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				cand, err := p.subscription(a.displayCurrency().Code)
				if err != nil {
					return err
				}

				created, matches, err := a.store.Add(ctx, cand, p.Force)
				if errors.Is(err, internal.ErrDuplicate) {
					if a.jsonOutput() {
						_ = internal.PrintJSON(stdout, matches)
					} else {
						internal.PrintDuplicatesTable(stdout, cand, matches)
					}
					return fmt.Errorf("%w: use --force to add anyway", err)
				}
				if err != nil {
					return err
				}

				if a.jsonOutput() {
					return internal.PrintJSON(stdout, created)
				}
				fmt.Fprintf(stdout, "Added %s (%s)\n", created.Name, created.ID)
				return nil
			})
		})
}

type ListParams struct {
	GlobalParams
	Show     string   `descr:"Which subscriptions to show" alts:"active,inactive,all" strict:"true" default:"all"`
	Category []string `descr:"Only show these categories" optional:"true"`
	Sort     string   `descr:"Sort by field" alts:"name,amount,start,usage" strict:"true" default:"name"`
	Dir      string   `descr:"Sort direction" alts:"asc,desc" strict:"true" default:"asc"`
}

func listCmd() boa.CmdT[ListParams] {
	return boa.NewCmdT[ListParams]("list").
		WithShort("List subscriptions").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *ListParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				all := a.store.List()
				shown := internal.FilterByCategories(internal.FilterByStatus(all, p.Show), p.Category)
				cur := a.displayCurrency()

				if a.jsonOutput() {
					internal.SortSubscriptions(shown, p.Sort, p.Dir)
					return internal.PrintSubscriptionsJSON(stdout, shown, cur, a.store.BackendName())
				}
				if len(all) == 0 {
					fmt.Fprintln(stdout, "No subscriptions yet. Add one with 'subtrack add' or 'subtrack import'.")
					return nil
				}
				internal.PrintSubscriptionsTable(stdout, all, shown, internal.OutputOptions{
					ShowFilter:     p.Show,
					CategoryFilter: p.Category,
					SortField:      p.Sort,
					SortDir:        p.Dir,
					Currency:       cur,
				})
				return nil
			})
		})
}

type UpdateParams struct {
	GlobalParams
	ID         string  `descr:"Subscription id or unique id prefix" positional:"true"`
	Name       string  `descr:"New name" optional:"true"`
	Amount     float64 `descr:"New price per billing cycle" optional:"true"`
	Currency   string  `descr:"New currency code" optional:"true"`
	Cycle      string  `descr:"New billing cycle" alts:"monthly,yearly" strict:"true" optional:"true"`
	Provider   string  `descr:"New provider" optional:"true"`
	Category   string  `descr:"New category" optional:"true"`
	Icon       string  `descr:"New icon" optional:"true"`
	Notes      string  `descr:"New notes" optional:"true"`
	Start      string  `descr:"New start date (YYYY-MM-DD)" optional:"true"`
	Active     bool    `descr:"Set active status" optional:"true"`
	AutoRenew  bool    `descr:"Set auto renew" optional:"true"`
	UsageCount int     `descr:"Set usage count" optional:"true"`
}

// patch holds only the flags given on the command line
func (p *UpdateParams) patch(hc *boa.HookContext) (internal.Patch, error) {
	var patch internal.Patch
	if hc.HasValue(&p.Name) {
		patch.Name = &p.Name
	}
	if hc.HasValue(&p.Amount) {
		patch.Amount = &p.Amount
	}
	if hc.HasValue(&p.Currency) {
		code := strings.ToUpper(p.Currency)
		patch.Currency = &code
	}
	if hc.HasValue(&p.Cycle) {
		cycle := internal.BillingCycle(p.Cycle)
		patch.BillingCycle = &cycle
	}
	if hc.HasValue(&p.Provider) {
		patch.Provider = &p.Provider
	}
	if hc.HasValue(&p.Category) {
		patch.Category = &p.Category
	}
	if hc.HasValue(&p.Icon) {
		patch.Icon = &p.Icon
	}
	if hc.HasValue(&p.Notes) {
		patch.Notes = &p.Notes
	}
	if hc.HasValue(&p.Start) {
		d, err := internal.ParseDate(p.Start)
		if err != nil {
			return internal.Patch{}, &internal.ValidationError{Field: "startDate", Reason: err.Error()}
		}
		patch.StartDate = &d
	}
	if hc.HasValue(&p.Active) {
		patch.ActiveStatus = &p.Active
	}
	if hc.HasValue(&p.AutoRenew) {
		patch.AutoRenew = &p.AutoRenew
	}
	if hc.HasValue(&p.UsageCount) {
		patch.UsageCount = &p.UsageCount
	}
	return patch, nil
}

func updateCmd() boa.CmdT[UpdateParams] {
	return boa.NewCmdT[UpdateParams]("update").
		WithShort("Change fields of a subscription").
		WithParamEnrich(patchEnrich).
		WithRunFuncCtxE(func(hc *boa.HookContext, p *UpdateParams) error {
			patch, err := p.patch(hc)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				id, err := a.store.Resolve(p.ID)
				if err != nil {
					return err
				}
				if err := a.store.Update(ctx, id, patch); err != nil {
					return err
				}
				return printOne(a, id, "Updated")
			})
		})
}

type IDParams struct {
	GlobalParams
	ID string `descr:"Subscription id or unique id prefix" positional:"true"`
}

func deleteCmd() boa.CmdT[IDParams] {
	return boa.NewCmdT[IDParams]("delete").
		WithShort("Delete a subscription").
		WithAliases("rm").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *IDParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				id, err := a.store.Resolve(p.ID)
				if err != nil {
					return err
				}
				if err := a.store.Delete(ctx, id); err != nil {
					return err
				}
				if a.jsonOutput() {
					return internal.PrintJSON(stdout, map[string]string{"deleted": id})
				}
				fmt.Fprintf(stdout, "Deleted %s\n", id)
				return nil
			})
		})
}

func useCmd() boa.CmdT[IDParams] {
	return boa.NewCmdT[IDParams]("use").
		WithShort("Record that a subscription was used").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *IDParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				id, err := a.store.Resolve(p.ID)
				if err != nil {
					return err
				}
				if err := a.store.IncrementUsage(ctx, id); err != nil {
					return err
				}
				return printOne(a, id, "Recorded use of")
			})
		})
}

func printOne(a *App, id, verb string) error {
	sub, ok := a.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", internal.ErrNotFound, id)
	}
	if a.jsonOutput() {
		return internal.PrintJSON(stdout, sub)
	}
	fmt.Fprintf(stdout, "%s %s (%s), used %d times\n", verb, sub.Name, sub.ID, sub.UsageCount)
	return nil
}

type ImportParams struct {
	GlobalParams
	File string `descr:"File to import, optionally prefixed with a format (json:, csv:, xlsx:)" positional:"true"`
}

func importCmd() boa.CmdT[ImportParams] {
	return boa.NewCmdT[ImportParams]("import").
		WithShort("Import subscriptions from a JSON, CSV or XLSX file").
		WithLong("Imports every record that has a name and an amount. Imports are not checked for duplicates. Records failing validation are skipped with a warning; a storage failure stops the import.\n\nFormats: " + strings.Join(internal.AvailableFormats(), ", ")).
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *ImportParams) error {
			records, err := internal.ReadImportFile(p.File)
			if err != nil {
				return err
			}
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				result, err := internal.NewImporter(a.store, a.log).ImportBatch(ctx, records)
				if a.jsonOutput() {
					if perr := internal.PrintJSON(stdout, result); perr != nil {
						return perr
					}
				} else {
					fmt.Fprintf(stdout, "Read %d records: %d imported, %d skipped (no name or amount), %d invalid\n",
						result.Received, result.Imported, result.Skipped, result.Rejected)
				}
				return err
			})
		})
}

func reportCmd() boa.CmdT[GlobalParams] {
	return boa.NewCmdT[GlobalParams]("report").
		WithShort("Show spending per category and month, and progress on goals").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GlobalParams) error {
			return withApp(*p, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				goals, err := a.prefs.Goals()
				if err != nil {
					return err
				}
				report := internal.BuildReport(a.store.List(), a.displayCurrency().Code, goals)
				if a.jsonOutput() {
					return internal.PrintJSON(stdout, report)
				}
				internal.PrintReportTable(stdout, report)
				return nil
			})
		})
}

type DuplicatesParams struct {
	GlobalParams
	Name     string  `descr:"Candidate name" positional:"true"`
	Provider string  `descr:"Candidate provider" optional:"true"`
	Category string  `descr:"Candidate category" optional:"true"`
	Amount   float64 `descr:"Candidate price" optional:"true"`
}

func duplicatesCmd() boa.CmdT[DuplicatesParams] {
	return boa.NewCmdT[DuplicatesParams]("duplicates").
		WithShort("Check whether a subscription would be a duplicate, without adding it").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *DuplicatesParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if err := a.requireBackend(); err != nil {
					return err
				}
				cand := internal.Subscription{Name: p.Name, Provider: p.Provider, Category: p.Category, Amount: p.Amount}
				matches := a.store.CheckDuplicates(cand)
				if a.jsonOutput() {
					if matches == nil {
						matches = []internal.DuplicateMatch{}
					}
					return internal.PrintJSON(stdout, matches)
				}
				if len(matches) == 0 {
					fmt.Fprintf(stdout, "No likely duplicates of %q\n", p.Name)
					return nil
				}
				internal.PrintDuplicatesTable(stdout, cand, matches)
				return nil
			})
		})
}

type LoginParams struct {
	GlobalParams
	Email string `descr:"E-mail address to sign in as" positional:"true"`
}

func loginCmd() boa.CmdT[LoginParams] {
	return boa.NewCmdT[LoginParams]("login").
		WithShort("Sign in; subscriptions are then stored in the database").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *LoginParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				s, err := a.sessions.Login(ctx, p.Email)
				if err != nil {
					return err
				}
				return printSession(a, s)
			})
		})
}

func logoutCmd() boa.CmdT[GlobalParams] {
	return boa.NewCmdT[GlobalParams]("logout").
		WithShort("Sign out; subscriptions are then stored locally").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GlobalParams) error {
			return withApp(*p, func(ctx context.Context, a *App) error {
				if err := a.sessions.Logout(ctx); err != nil {
					return err
				}
				return printSession(a, nil)
			})
		})
}

func whoamiCmd() boa.CmdT[GlobalParams] {
	return boa.NewCmdT[GlobalParams]("whoami").
		WithShort("Show the current session and storage backend").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GlobalParams) error {
			return withApp(*p, func(ctx context.Context, a *App) error {
				return printSession(a, a.sessions.Current())
			})
		})
}

type sessionInfo struct {
	Email   string `json:"email,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Backend string `json:"backend"`
	State   string `json:"state"`
	Count   int    `json:"count"`
}

func printSession(a *App, s *internal.Session) error {
	info := sessionInfo{
		Backend: a.store.BackendName(),
		State:   a.store.State().String(),
		Count:   len(a.store.List()),
	}
	if s != nil {
		info.Email = s.Email
		info.UserID = s.ID
	}
	if a.jsonOutput() {
		return internal.PrintJSON(stdout, info)
	}
	who := "anonymous"
	if s != nil {
		who = s.Email
	}
	backend := info.Backend
	if backend == "" {
		backend = "none"
	}
	fmt.Fprintf(stdout, "Signed in as: %s\nBackend: %s (%s, %d subscriptions)\n", who, backend, info.State, info.Count)
	return nil
}

type GoalAddParams struct {
	GlobalParams
	Type     string  `descr:"Goal period" positional:"true" alts:"monthly,annual" strict:"true"`
	Amount   float64 `descr:"Spending limit for the period"`
	Currency string  `descr:"Currency of the limit (default: display currency)" optional:"true"`
}

type GoalUpdateParams struct {
	GlobalParams
	ID       string  `descr:"Goal id" positional:"true"`
	Amount   float64 `descr:"New spending limit for the period"`
	Currency string  `descr:"New currency of the limit (default: unchanged)" optional:"true"`
}

func goalCmd() boa.CmdT[boa.NoParams] {
	add := boa.NewCmdT[GoalAddParams]("add").
		WithShort("Add a spending goal").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GoalAddParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				code := strings.ToUpper(p.Currency)
				if code == "" {
					code = a.displayCurrency().Code
				}
				goal, err := a.prefs.AddGoal(internal.SpendingGoal{Type: internal.GoalType(p.Type), Amount: p.Amount, Currency: code})
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					return internal.PrintJSON(stdout, goal)
				}
				fmt.Fprintf(stdout, "Added %s goal of %s (%s)\n", goal.Type, internal.GetCurrency(goal.Currency).Format(goal.Amount), goal.ID)
				return nil
			})
		})

	update := boa.NewCmdT[GoalUpdateParams]("update").
		WithShort("Change the limit of a spending goal").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GoalUpdateParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				goals, err := a.prefs.Goals()
				if err != nil {
					return err
				}
				idx := slices.IndexFunc(goals, func(g internal.SpendingGoal) bool { return g.ID == p.ID })
				if idx < 0 {
					return fmt.Errorf("no spending goal with id %q", p.ID)
				}
				code := strings.ToUpper(p.Currency)
				if code == "" {
					code = goals[idx].Currency
				}
				if err := a.prefs.UpdateGoal(p.ID, p.Amount, code); err != nil {
					return err
				}
				if a.jsonOutput() {
					goal := goals[idx]
					goal.Amount, goal.Currency = p.Amount, code
					return internal.PrintJSON(stdout, goal)
				}
				fmt.Fprintf(stdout, "Updated %s goal to %s\n", goals[idx].Type, internal.GetCurrency(code).Format(p.Amount))
				return nil
			})
		})

	list := boa.NewCmdT[GlobalParams]("list").
		WithShort("List spending goals").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GlobalParams) error {
			return withApp(*p, func(ctx context.Context, a *App) error {
				goals, err := a.prefs.Goals()
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					if goals == nil {
						goals = []internal.SpendingGoal{}
					}
					return internal.PrintJSON(stdout, goals)
				}
				internal.PrintGoalsTable(stdout, goals)
				return nil
			})
		})

	rm := boa.NewCmdT[IDParams]("rm").
		WithShort("Remove a spending goal").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *IDParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				return a.prefs.DeleteGoal(p.ID)
			})
		})

	return boa.NewCmdT[boa.NoParams]("goal").
		WithShort("Manage spending goals").
		WithCobraSubCmds(cobraCmds(add, update, list, rm)...)
}

type CategoryAddParams struct {
	GlobalParams
	Name  string `descr:"Category name" positional:"true"`
	Color string `descr:"Display color" optional:"true"`
	Icon  string `descr:"Icon name" optional:"true"`
}

func categoryCmd() boa.CmdT[boa.NoParams] {
	add := boa.NewCmdT[CategoryAddParams]("add").
		WithShort("Add a custom category").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *CategoryAddParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				cat, err := a.prefs.AddCategory(internal.CustomCategory{Name: p.Name, Color: p.Color, Icon: p.Icon})
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					return internal.PrintJSON(stdout, cat)
				}
				fmt.Fprintf(stdout, "Added category %s (%s)\n", cat.Name, cat.ID)
				return nil
			})
		})

	list := boa.NewCmdT[GlobalParams]("list").
		WithShort("List custom categories").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GlobalParams) error {
			return withApp(*p, func(ctx context.Context, a *App) error {
				cats, err := a.prefs.Categories()
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					if cats == nil {
						cats = []internal.CustomCategory{}
					}
					return internal.PrintJSON(stdout, cats)
				}
				internal.PrintCategoriesTable(stdout, cats)
				return nil
			})
		})

	rm := boa.NewCmdT[IDParams]("rm").
		WithShort("Remove a custom category").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *IDParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				return a.prefs.DeleteCategory(p.ID)
			})
		})

	return boa.NewCmdT[boa.NoParams]("category").
		WithShort("Manage custom categories").
		WithCobraSubCmds(cobraCmds(add, list, rm)...)
}

type CurrencyParams struct {
	GlobalParams
	Code string `descr:"Currency to display amounts in" positional:"true" optional:"true"`
}

func currencyCmd() boa.CmdT[CurrencyParams] {
	return boa.NewCmdT[CurrencyParams]("currency").
		WithShort("Show or set the display currency").
		WithLong("Supported currencies: " + strings.Join(internal.SupportedCurrencies, ", ")).
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *CurrencyParams) error {
			return withApp(p.GlobalParams, func(ctx context.Context, a *App) error {
				if p.Code != "" {
					if err := a.prefs.SetDisplayCurrency(p.Code); err != nil {
						return err
					}
				}
				cur := a.displayCurrency()
				if a.jsonOutput() {
					return internal.PrintJSON(stdout, map[string]string{"currency": cur.Code, "symbol": internal.Symbol(cur.Code)})
				}
				fmt.Fprintf(stdout, "Display currency: %s (%s)\n", cur.Code, internal.Symbol(cur.Code))
				return nil
			})
		})
}

func migrateCmd() boa.CmdT[GlobalParams] {
	return boa.NewCmdT[GlobalParams]("migrate").
		WithShort("Apply database schema migrations").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *GlobalParams) error {
			return withApp(*p, func(ctx context.Context, a *App) error {
				url := a.cfg.GetDatabaseURL()
				if url == "" {
					return fmt.Errorf("database_url is not configured")
				}
				pool, err := pgstore.Connect(ctx, url)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := pgstore.Migrate(ctx, pool, a.log); err != nil {
					return err
				}
				fmt.Fprintln(stdout, "Database schema is up to date")
				return nil
			})
		})
}

type ConfigInitParams struct {
	GlobalParams
	Force bool `descr:"Overwrite an existing config file"`
}

func configCmd() boa.CmdT[boa.NoParams] {
	initCmd := boa.NewCmdT[ConfigInitParams]("init").
		WithShort("Write a config file with the default settings").
		WithParamEnrich(paramEnrich).
		WithRunFuncE(func(p *ConfigInitParams) error {
			path := p.Config
			if path == "" {
				path = internal.DefaultConfigPath()
			}
			if !p.Force && fileExists(path) {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}
			cfg := internal.ConfigTemplate()
			if p.DataDir != "" {
				cfg.DataDir = p.DataDir
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Wrote %s\n", path)
			return nil
		})

	return boa.NewCmdT[boa.NoParams]("config").
		WithShort("Manage the config file").
		WithCobraSubCmds(cobraCmds(initCmd)...)
}
