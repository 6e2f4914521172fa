package localstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gigurra/subtrack/internal"
)

// BackendName is reported in logs and persistence errors
const BackendName = "local"

// Backend is the ephemeral subscription backend. The whole collection lives under
// one blob key and is rewritten on every mutation.
type Backend struct {
	blobs internal.BlobStore

	mu sync.Mutex
}

var _ internal.Backend = (*Backend)(nil)

func NewBackend(blobs internal.BlobStore) *Backend {
	return &Backend{blobs: blobs}
}

func (b *Backend) Name() string {
	return BackendName
}

func (b *Backend) Load(ctx context.Context) ([]internal.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read()
}

// Create keeps a provided id unless it is empty or already taken, in which case a
// random one is assigned
func (b *Backend) Create(ctx context.Context, sub internal.Subscription) (internal.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return internal.Subscription{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, err := b.read()
	if err != nil {
		return internal.Subscription{}, err
	}
	if sub.ID == "" || slices.ContainsFunc(subs, func(s internal.Subscription) bool { return s.ID == sub.ID }) {
		sub.ID = uuid.NewString()
	}
	subs = append([]internal.Subscription{sub}, subs...)
	if err := b.write(subs); err != nil {
		return internal.Subscription{}, err
	}
	return sub, nil
}

func (b *Backend) Update(ctx context.Context, id string, patch internal.Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, err := b.read()
	if err != nil {
		return err
	}
	for i := range subs {
		if subs[i].ID == id {
			patch.Apply(&subs[i])
		}
	}
	return b.write(subs)
}

func (b *Backend) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, err := b.read()
	if err != nil {
		return err
	}
	subs = slices.DeleteFunc(subs, func(s internal.Subscription) bool { return s.ID == id })
	return b.write(subs)
}

func (b *Backend) read() ([]internal.Subscription, error) {
	var subs []internal.Subscription
	if _, err := b.blobs.Get(internal.KeySubscriptions, &subs); err != nil {
		return nil, fmt.Errorf("reading subscriptions: %w", err)
	}
	return subs, nil
}

func (b *Backend) write(subs []internal.Subscription) error {
	if subs == nil {
		subs = []internal.Subscription{}
	}
	if err := b.blobs.Put(internal.KeySubscriptions, subs); err != nil {
		return fmt.Errorf("writing subscriptions: %w", err)
	}
	return nil
}
