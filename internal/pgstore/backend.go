// Package pgstore is the durable subscription backend on PostgreSQL. Every query
// is scoped to one user id; the server assigns record ids.
package pgstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigurra/subtrack/internal"
)

// BackendName is reported in logs and persistence errors
const BackendName = "postgres"

// DB is the subset of pgxpool.Pool the backend needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

type Backend struct {
	db     DB
	userID string
}

var _ internal.Backend = (*Backend)(nil)

func NewBackend(db DB, userID string) *Backend {
	return &Backend{db: db, userID: userID}
}

// Connect opens a pool for url and checks that the server answers
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("opening database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

func (b *Backend) Name() string {
	return BackendName
}

const selectColumns = `id::text, name, provider, category, icon, start_date, billing_cycle,
	amount::float8, currency, notes, active_status, auto_renew, usage_count, last_used`

func (b *Backend) Load(ctx context.Context) ([]internal.Subscription, error) {
	rows, err := b.db.Query(ctx, `
		SELECT `+selectColumns+`
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, b.userID)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []internal.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading subscriptions: %w", err)
	}
	return subs, nil
}

// Create inserts sub for the user and returns the stored row. sub.ID is ignored.
func (b *Backend) Create(ctx context.Context, sub internal.Subscription) (internal.Subscription, error) {
	row := b.db.QueryRow(ctx, `
		INSERT INTO subscriptions (user_id, name, provider, category, icon, start_date, billing_cycle,
			amount, currency, notes, active_status, auto_renew, usage_count, last_used)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+selectColumns,
		b.userID, sub.Name, sub.Provider, sub.Category, sub.Icon, dateArg(sub.StartDate), string(sub.BillingCycle),
		sub.Amount, sub.Currency, sub.Notes, sub.ActiveStatus, sub.AutoRenew, sub.UsageCount, sub.LastUsed)

	created, err := scanSubscription(row)
	if err != nil {
		return internal.Subscription{}, fmt.Errorf("inserting subscription: %w", err)
	}
	return created, nil
}

func (b *Backend) Update(ctx context.Context, id string, patch internal.Patch) error {
	set, args := setClause(patch, 3)
	if set == "" {
		return nil
	}

	args = append([]any{id, b.userID}, args...)
	if _, err := b.db.Exec(ctx, `
		UPDATE subscriptions SET `+set+`, updated_at = now()
		WHERE id::text = $1 AND user_id = $2
	`, args...); err != nil {
		return fmt.Errorf("updating subscription %s: %w", id, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, id string) error {
	// ids are compared as text so ids from other backends match nothing
	if _, err := b.db.Exec(ctx, `DELETE FROM subscriptions WHERE id::text = $1 AND user_id = $2`, id, b.userID); err != nil {
		return fmt.Errorf("deleting subscription %s: %w", id, err)
	}
	return nil
}

// setClause renders the fields set in patch as "col = $n" assignments, numbering
// placeholders from first
func setClause(patch internal.Patch, first int) (string, []any) {
	var cols []string
	var args []any
	add := func(col string, v any) {
		cols = append(cols, fmt.Sprintf("%s = $%d", col, first+len(args)))
		args = append(args, v)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Provider != nil {
		add("provider", *patch.Provider)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Icon != nil {
		add("icon", *patch.Icon)
	}
	if patch.StartDate != nil {
		add("start_date", dateArg(*patch.StartDate))
	}
	if patch.BillingCycle != nil {
		add("billing_cycle", string(*patch.BillingCycle))
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Currency != nil {
		add("currency", *patch.Currency)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.ActiveStatus != nil {
		add("active_status", *patch.ActiveStatus)
	}
	if patch.AutoRenew != nil {
		add("auto_renew", *patch.AutoRenew)
	}
	if patch.UsageCount != nil {
		add("usage_count", *patch.UsageCount)
	}
	if patch.LastUsed != nil {
		add("last_used", *patch.LastUsed)
	}
	return strings.Join(cols, ", "), args
}

func scanSubscription(row pgx.Row) (internal.Subscription, error) {
	var (
		sub       internal.Subscription
		cycle     string
		startDate *time.Time
		lastUsed  *time.Time
	)
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Provider, &sub.Category, &sub.Icon, &startDate, &cycle,
		&sub.Amount, &sub.Currency, &sub.Notes, &sub.ActiveStatus, &sub.AutoRenew, &sub.UsageCount, &lastUsed); err != nil {
		return internal.Subscription{}, fmt.Errorf("scanning subscription: %w", err)
	}
	sub.BillingCycle = internal.BillingCycle(cycle)
	if startDate != nil {
		sub.StartDate = internal.NewDate(*startDate)
	}
	sub.LastUsed = lastUsed
	return sub, nil
}

func dateArg(d internal.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time
}
