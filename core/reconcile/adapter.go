package reconcile

import "context"

// Adapter defines the model-specific side of a reconciliation.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g. "files").
	Name() string

	// LoadAuditIndex returns the keys the audit trail believes exist, indexed by key.
	LoadAuditIndex(ctx context.Context, bucket, prefix string) (map[string]Entry, error)

	// LoadStorageIndex lists storage under prefix and indexes the objects by key.
	// Implementations should list once and avoid per-item HEAD calls.
	LoadStorageIndex(ctx context.Context, bucket, prefix string) (map[string]Entry, error)

	// Apply executes a single repair action.
	Apply(ctx context.Context, bucket string, action Action) error
}

// Comparer is implemented by adapters that compare more than the size.
type Comparer interface {
	CompareFields(audit, stored Entry) []string
}

func compare(adapter Adapter, audit, stored Entry) []string {
	if c, ok := adapter.(Comparer); ok {
		return c.CompareFields(audit, stored)
	}
	return sizeMismatch(audit, stored)
}
