// Package reconcile compares two indices of the same key space and reports
// drift between them: keys present in only one index, and keys whose entries
// disagree.
//
// The gateway uses it to check the audit trail against the bucket: every
// object in storage should have a surviving upload event, and every surviving
// upload event should point at an object.
//
// # Architecture
//
// 1. Adapter: loads both indices and knows how to compare and repair entries.
//
// 2. Engine: builds the union of keys, detects presence/absence and mismatches,
//    and turns the results into a Plan of repair actions.
//
// 3. Cache: TTL based cache of built indices with stampede protection
//    (singleflight), shared by concurrent callers.
//
// # Usage Example
//
//	spec := &reconcile.Spec{Adapter: adapter, Bucket: "files", CacheTTL: 30 * time.Second}
//
//	plan, err := reconcile.PlanFor(ctx, spec)
//	executed, err := reconcile.ApplyPlan(ctx, spec, plan, reconcile.Options{Confirmed: true})
package reconcile
