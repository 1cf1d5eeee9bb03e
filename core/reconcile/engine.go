package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// ReconcileAll performs a full reconciliation on freshly built indices and
// returns one result per key, sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec) ([]Result, error) {
	cache, err := BuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return resultsFromCache(cache, spec.Adapter), nil
}

// PlanFor reconciles using the cached indices when fresh and returns the
// results together with the repair actions. It does NOT execute actions; use
// ApplyPlan for that.
func PlanFor(ctx context.Context, spec *Spec) (*Plan, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(cache, spec.Adapter)
	summary, actions := buildPlan(results, cache)

	return &Plan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions of plan and returns how many succeeded.
// Nothing runs unless opts.Confirmed is set and opts.DryRun is not. The
// cache for spec is invalidated once anything executed.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (int, error) {
	if !opts.Confirmed || opts.DryRun || plan == nil {
		return 0, nil
	}

	executed := 0
	defer func() {
		if executed > 0 {
			InvalidateCache(spec)
		}
	}()

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		if err := spec.Adapter.Apply(ctx, spec.Bucket, action); err != nil {
			return executed, fmt.Errorf("failed to apply %s for %s: %w", action.Type, action.Key, err)
		}
		executed++
	}
	return executed, nil
}

func resultsFromCache(cache *Cache, adapter Adapter) []Result {
	union := make(map[string]struct{}, len(cache.AuditIndex)+len(cache.StorageIndex))
	for key := range cache.AuditIndex {
		union[key] = struct{}{}
	}
	for key := range cache.StorageIndex {
		union[key] = struct{}{}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		audit, auditPresent := cache.AuditIndex[key]
		stored, storagePresent := cache.StorageIndex[key]

		result := Result{
			Key:            key,
			AuditPresent:   auditPresent,
			StoragePresent: storagePresent,
			Mismatch:       []string{},
		}
		if auditPresent && storagePresent {
			if m := compare(adapter, audit, stored); len(m) > 0 {
				result.Mismatch = m
			}
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

func buildPlan(results []Result, cache *Cache) (Summary, []Action) {
	summary := Summary{TotalItems: len(results)}
	actions := make([]Action, 0)

	for _, r := range results {
		switch {
		case r.StoragePresent && !r.AuditPresent:
			summary.MissingAudit++
			actions = append(actions, Action{
				Type:   ActionRecordAudit,
				Key:    r.Key,
				Reason: "object has no upload event",
				Entry:  cache.StorageIndex[r.Key],
			})
		case r.AuditPresent && !r.StoragePresent:
			summary.MissingStorage++
			actions = append(actions, Action{
				Type:   ActionForgetAudit,
				Key:    r.Key,
				Reason: "upload event points at a missing object",
			})
		}
		if len(r.Mismatch) > 0 {
			summary.Mismatches++
		}
	}

	summary.Actions = len(actions)
	return summary, actions
}
