package localstore

import (
	"context"
	"testing"

	"github.com/gigurra/subtrack/internal"
)

func newBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	return NewBackend(NewFileBlobStore(dir)), dir
}

func TestBackend_CreateLoad(t *testing.T) {
	ctx := context.Background()
	b, dir := newBackend(t)

	subs, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected empty collection, got %d", len(subs))
	}

	first, err := b.Create(ctx, internal.Subscription{Name: "Netflix", Amount: 9.99})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == "" {
		t.Error("Create() should assign an id")
	}
	second, err := b.Create(ctx, internal.Subscription{ID: "imported-1", Name: "Spotify", Amount: 4.99})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != "imported-1" {
		t.Errorf("Create() should keep a provided id, got %q", second.ID)
	}

	// a fresh backend over the same directory sees both, newest first
	reloaded, err := NewBackend(NewFileBlobStore(dir)).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != 2 || reloaded[0].ID != "imported-1" || reloaded[1].ID != first.ID {
		t.Errorf("unexpected collection: %+v", reloaded)
	}
}

func TestBackend_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	b, _ := newBackend(t)

	created, err := b.Create(ctx, internal.Subscription{Name: "Hulu", Amount: 7.99, UsageCount: 1})
	if err != nil {
		t.Fatal(err)
	}

	count := 2
	if err := b.Update(ctx, created.ID, internal.Patch{UsageCount: &count}); err != nil {
		t.Fatal(err)
	}
	// unknown ids are not an error
	if err := b.Update(ctx, "missing", internal.Patch{UsageCount: &count}); err != nil {
		t.Fatal(err)
	}

	subs, _ := b.Load(ctx)
	if len(subs) != 1 || subs[0].UsageCount != 2 || subs[0].Name != "Hulu" {
		t.Errorf("unexpected after update: %+v", subs)
	}

	if err := b.Delete(ctx, "missing"); err != nil {
		t.Fatal(err)
	}
	if err := b.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	subs, _ = b.Load(ctx)
	if len(subs) != 0 {
		t.Errorf("expected empty collection after delete, got %+v", subs)
	}
}

func TestBackend_CanceledContext(t *testing.T) {
	b, _ := newBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Create(ctx, internal.Subscription{Name: "x"}); err == nil {
		t.Error("Create() should fail on a canceled context")
	}
	subs, err := b.Load(context.Background())
	if err != nil || len(subs) != 0 {
		t.Errorf("nothing should be written: %v %+v", err, subs)
	}
}

func TestBackend_WithStore(t *testing.T) {
	ctx := context.Background()
	b, _ := newBackend(t)
	s := internal.NewStore(func(context.Context, *internal.Session) (internal.Backend, error) { return b, nil })
	if err := s.Open(ctx, nil); err != nil {
		t.Fatal(err)
	}

	created, err := s.Create(ctx, internal.Subscription{
		Name: "Disney+", Provider: "Disney", BillingCycle: internal.BillingMonthly, Amount: 8.99, Currency: "USD",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Icon != internal.DefaultIcon {
		t.Errorf("Icon = %q", created.Icon)
	}
	if s.BackendName() != BackendName {
		t.Errorf("BackendName() = %q", s.BackendName())
	}

	stored, _ := b.Load(ctx)
	if len(stored) != 1 || stored[0].ID != created.ID {
		t.Errorf("store and backend diverged: %+v", stored)
	}
}

func TestBackend_CreateReplacesTakenID(t *testing.T) {
	ctx := context.Background()
	b, _ := newBackend(t)

	first, err := b.Create(ctx, internal.Subscription{ID: "imported-1", Name: "Spotify"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Create(ctx, internal.Subscription{ID: "imported-1", Name: "Spotify"})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != "imported-1" {
		t.Errorf("first Create() should keep the id, got %q", first.ID)
	}
	if second.ID == "" || second.ID == first.ID {
		t.Errorf("second Create() should assign a fresh id, got %q", second.ID)
	}
}

func TestBackend_ImportSameBatchTwice(t *testing.T) {
	ctx := context.Background()
	b, dir := newBackend(t)
	s := internal.NewStore(func(context.Context, *internal.Session) (internal.Backend, error) { return b, nil })
	if err := s.Open(ctx, nil); err != nil {
		t.Fatal(err)
	}

	amount := 9.99
	batch := []internal.ImportRecord{
		{ID: "exp-1", Name: "Netflix", BillingCycle: internal.BillingMonthly, Amount: &amount, Currency: "USD", UsageCount: 1},
		{ID: "exp-2", Name: "Spotify", BillingCycle: internal.BillingMonthly, Amount: &amount, Currency: "USD", UsageCount: 1},
	}
	importer := internal.NewImporter(s, nil)
	for range 2 {
		if _, err := importer.ImportBatch(ctx, batch); err != nil {
			t.Fatal(err)
		}
	}

	subs := s.List()
	if len(subs) != 4 {
		t.Fatalf("expected 4 subscriptions, got %d", len(subs))
	}
	seen := map[string]bool{}
	for _, sub := range subs {
		if seen[sub.ID] {
			t.Fatalf("duplicate id %q in %+v", sub.ID, subs)
		}
		seen[sub.ID] = true
	}

	// updating one copy must leave memory and disk in agreement
	count := 5
	if err := s.Update(ctx, subs[0].ID, internal.Patch{UsageCount: &count}); err != nil {
		t.Fatal(err)
	}
	onDisk, err := NewBackend(NewFileBlobStore(dir)).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	inMemory := s.List()
	if len(onDisk) != len(inMemory) {
		t.Fatalf("memory has %d, disk has %d", len(inMemory), len(onDisk))
	}
	for i := range inMemory {
		if onDisk[i].ID != inMemory[i].ID || onDisk[i].UsageCount != inMemory[i].UsageCount {
			t.Errorf("record %d diverged: memory %+v, disk %+v", i, inMemory[i], onDisk[i])
		}
	}
}
