package reconcile

import (
	"strconv"
	"time"
)

// Entry is one item of an index.
type Entry struct {
	// Key identifies the item in both indices.
	Key string `json:"key"`

	// Size is the item size in bytes as known by the index.
	Size int64 `json:"size"`
}

// Result represents the reconciliation output for a single key.
type Result struct {
	// Key is the unique identifier shared by both indices.
	Key string `json:"key"`

	// AuditPresent indicates whether the key has a surviving audit record.
	AuditPresent bool `json:"audit_present"`

	// StoragePresent indicates whether the key exists in storage.
	StoragePresent bool `json:"storage_present"`

	// Mismatch contains descriptions of field mismatches, e.g. "size: audit=3 storage=5".
	Mismatch []string `json:"mismatch"`
}

// Spec defines the configuration for a reconciliation operation.
type Spec struct {
	// Adapter provides model-specific reconciliation logic.
	Adapter Adapter

	// Bucket is the bucket being reconciled.
	Bucket string

	// Prefix restricts reconciliation to keys under it.
	Prefix string

	// CacheTTL is the time-to-live for cached indices. If zero, caching is disabled.
	CacheTTL time.Duration
}

// CacheKey returns a unique key for caching based on spec parameters.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + s.Bucket + "|" + s.Prefix
}

// ActionType represents the type of repair action.
type ActionType string

const (
	// ActionRecordAudit records a missing upload event for an object found in storage.
	ActionRecordAudit ActionType = "record_audit"
	// ActionForgetAudit records a delete event for an object missing from storage.
	ActionForgetAudit ActionType = "forget_audit"
)

// Action represents a planned repair operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Entry is the storage entry backing ActionRecordAudit.
	Entry Entry `json:"-"`
}

// Plan contains reconciliation results and planned actions.
type Plan struct {
	Results []Result `json:"results"`
	Actions []Action `json:"actions"`
	Summary Summary  `json:"summary"`
}

// Summary provides aggregate counts.
type Summary struct {
	TotalItems     int `json:"total_items"`
	MissingAudit   int `json:"missing_audit"`
	MissingStorage int `json:"missing_storage"`
	Mismatches     int `json:"mismatches"`
	Actions        int `json:"actions"`
}

// Options controls plan execution.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the caller has confirmed the mutations.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool
}

func sizeMismatch(audit, stored Entry) []string {
	if audit.Size == stored.Size {
		return nil
	}
	return []string{"size: audit=" + strconv.FormatInt(audit.Size, 10) + " storage=" + strconv.FormatInt(stored.Size, 10)}
}
