package internal

import "context"

// Backend persists the subscription collection of one session. The ephemeral
// and durable implementations satisfy the same contract.
type Backend interface {
	// Name identifies the backend in logs and errors
	Name() string
	// Load returns the stored collection, newest first
	Load(ctx context.Context) ([]Subscription, error)
	// Create persists sub and returns the canonical stored record. Backends that
	// assign identity server-side ignore sub.ID.
	Create(ctx context.Context, sub Subscription) (Subscription, error)
	// Update applies patch to the record with the given id. A missing id is not an error.
	Update(ctx context.Context, id string, patch Patch) error
	// Delete removes the record with the given id. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// BackendSelector picks the backend for a session; nil means anonymous.
// Returning a nil Backend with a nil error leaves the store empty.
type BackendSelector func(ctx context.Context, session *Session) (Backend, error)

// BlobStore is a key/value store of whole serialized collections
type BlobStore interface {
	// Get unmarshals the value at key into v. It reports false when the key is absent.
	Get(key string, v any) (bool, error)
	// Put replaces the value at key with the serialized v
	Put(key string, v any) error
}

// Fixed blob keys, one per logical collection
const (
	KeySubscriptions    = "subscriptions"
	KeySpendingGoals    = "spendingGoals"
	KeyCustomCategories = "customCategories"
	KeyDisplayCurrency  = "displayCurrency"
)
