package pgstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gigurra/subtrack/internal"
)

func TestSetClause(t *testing.T) {
	name := "Netflix"
	amount := 15.99
	active := false
	start := internal.Date{}

	set, args := setClause(internal.Patch{Name: &name, StartDate: &start, Amount: &amount, ActiveStatus: &active}, 3)

	assert.Equal(t, "name = $3, start_date = $4, amount = $5, active_status = $6", set)
	assert.Equal(t, []any{"Netflix", nil, 15.99, false}, args)

	set, args = setClause(internal.Patch{}, 1)
	assert.Empty(t, set)
	assert.Empty(t, args)
}

// execRecorder is a DB that records Exec calls and fails everything else
type execRecorder struct {
	sqls []string
	args [][]any
}

func (r *execRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	r.args = append(r.args, args)
	return pgconn.NewCommandTag("UPDATE 0"), nil
}

func (r *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected query")
}

func (r *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("unexpected query")
}

func TestBackend_MutationsReachDatabaseForAnyID(t *testing.T) {
	db := &execRecorder{}
	b := NewBackend(db, "alice")
	name := "x"

	require.NoError(t, b.Update(context.Background(), "local-only-id", internal.Patch{Name: &name}))
	require.NoError(t, b.Delete(context.Background(), "local-only-id"))

	require.Len(t, db.sqls, 2)
	assert.Contains(t, db.sqls[0], "WHERE id::text = $1 AND user_id = $2")
	assert.Equal(t, []any{"local-only-id", "alice", "x"}, db.args[0])
	assert.Contains(t, db.sqls[1], "WHERE id::text = $1 AND user_id = $2")
	assert.Equal(t, []any{"local-only-id", "alice"}, db.args[1])
}

// startPostgres runs a throwaway postgres container and returns a migrated pool
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
	pool.MaxWait = 90 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env:        []string{"POSTGRES_PASSWORD=postgres", "POSTGRES_DB=subtrack"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "start postgres")
	t.Cleanup(func() {
		require.NoError(t, pool.Purge(resource), "purge resource %s", resource.Container.Name)
	})

	host := os.Getenv("DOCKERTEST_HOST")
	if host == "" {
		host = "localhost"
	}
	url := fmt.Sprintf("postgres://postgres:postgres@%s:%s/subtrack?sslmode=disable", host, resource.GetPort("5432/tcp"))

	var db *pgxpool.Pool
	// the server needs a moment before it accepts connections
	err = pool.Retry(func() error {
		var err error
		db, err = Connect(context.Background(), url)
		return err
	})
	require.NoError(t, err, "wait for postgres connection")
	t.Cleanup(db.Close)

	require.NoError(t, Migrate(context.Background(), db, zaptest.NewLogger(t)))
	// a second run finds nothing to apply
	require.NoError(t, Migrate(context.Background(), db, zaptest.NewLogger(t)))
	return db
}

func TestBackend_Postgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	alice := NewBackend(db, internal.UserIDForEmail("alice@example.com"))
	bob := NewBackend(db, internal.UserIDForEmail("bob@example.com"))

	t.Run("create assigns ids and ignores client ids", func(t *testing.T) {
		created, err := alice.Create(ctx, internal.Subscription{
			ID:           "client-id",
			Name:         "Netflix",
			Provider:     "Netflix Inc",
			Category:     "Entertainment",
			Icon:         internal.DefaultIcon,
			StartDate:    internal.NewDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			BillingCycle: internal.BillingMonthly,
			Amount:       15.99,
			Currency:     "USD",
			Notes:        "family",
			ActiveStatus: true,
			AutoRenew:    true,
		})
		require.NoError(t, err)

		_, err = uuid.Parse(created.ID)
		assert.NoError(t, err, "server should assign a uuid")
		assert.Equal(t, "Netflix", created.Name)
		assert.Equal(t, 15.99, created.Amount)
		assert.Equal(t, "2024-01-15", created.StartDate.String())
		assert.Nil(t, created.LastUsed)
	})

	t.Run("load is newest first and scoped to the user", func(t *testing.T) {
		_, err := alice.Create(ctx, internal.Subscription{
			Name: "Spotify", Icon: internal.DefaultIcon, BillingCycle: internal.BillingYearly, Amount: 99, Currency: "EUR",
		})
		require.NoError(t, err)

		subs, err := alice.Load(ctx)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, "Spotify", subs[0].Name)
		assert.Equal(t, "Netflix", subs[1].Name)
		assert.True(t, subs[0].StartDate.IsZero())

		other, err := bob.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("update merges set fields", func(t *testing.T) {
		subs, err := alice.Load(ctx)
		require.NoError(t, err)
		id := subs[0].ID

		count := 3
		used := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, alice.Update(ctx, id, internal.Patch{UsageCount: &count, LastUsed: &used}))

		// another user cannot touch it
		name := "Hijacked"
		require.NoError(t, bob.Update(ctx, id, internal.Patch{Name: &name}))

		subs, err = alice.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Spotify", subs[0].Name)
		assert.Equal(t, 3, subs[0].UsageCount)
		require.NotNil(t, subs[0].LastUsed)
		assert.True(t, subs[0].LastUsed.Equal(used))
	})

	t.Run("non-uuid ids match nothing", func(t *testing.T) {
		name := "x"
		assert.NoError(t, alice.Update(ctx, "not-a-uuid", internal.Patch{Name: &name}))
		assert.NoError(t, alice.Delete(ctx, "not-a-uuid"))
	})

	t.Run("delete", func(t *testing.T) {
		subs, err := alice.Load(ctx)
		require.NoError(t, err)

		require.NoError(t, bob.Delete(ctx, subs[0].ID))
		require.NoError(t, alice.Delete(ctx, subs[0].ID))

		subs, err = alice.Load(ctx)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "Netflix", subs[0].Name)
	})

	t.Run("constraint violations surface as errors", func(t *testing.T) {
		_, err := alice.Create(ctx, internal.Subscription{Name: "Bad", BillingCycle: "weekly", Amount: 1, Currency: "USD"})
		assert.Error(t, err)
	})
}
