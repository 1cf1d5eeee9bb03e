package files

import (
	"context"
	"fmt"
	"time"

	"file-gateway/core/reconcile"

	"github.com/code19m/errx"
)

const (
	// CodeAuditDisabled is returned when reconciliation is requested without a database.
	CodeAuditDisabled = "AUDIT_DISABLED"

	reconcileCacheTTL = 30 * time.Second
	auditAdapterName  = "files"
)

// auditAdapter reconciles the file event trail against the bucket.
type auditAdapter struct {
	service *Service
}

func (a auditAdapter) Name() string {
	return auditAdapterName
}

// LoadAuditIndex folds the events so that only objects whose last event is
// an upload remain.
func (a auditAdapter) LoadAuditIndex(ctx context.Context, bucket, prefix string) (map[string]reconcile.Entry, error) {
	events, err := a.service.recorder.Latest(ctx, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to load file events: %w", err)
	}

	index := make(map[string]reconcile.Entry)
	for _, ev := range events {
		switch ev.Action {
		case ActionUpload:
			index[ev.ObjectName] = reconcile.Entry{Key: ev.ObjectName, Size: ev.Size}
		case ActionDelete:
			delete(index, ev.ObjectName)
		}
	}
	return index, nil
}

func (a auditAdapter) LoadStorageIndex(ctx context.Context, bucket, prefix string) (map[string]reconcile.Entry, error) {
	objects, err := a.service.list(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.Entry, len(objects))
	for _, o := range objects {
		if o.IsDir {
			continue
		}
		index[o.Name] = reconcile.Entry{Key: o.Name, Size: o.Size}
	}
	return index, nil
}

func (a auditAdapter) Apply(ctx context.Context, bucket string, action reconcile.Action) error {
	ev := FileEvent{Bucket: bucket, ObjectName: action.Key}
	switch action.Type {
	case reconcile.ActionRecordAudit:
		ev.Action = ActionUpload
		ev.Size = action.Entry.Size
	case reconcile.ActionForgetAudit:
		ev.Action = ActionDelete
	default:
		return fmt.Errorf("unknown action %q", action.Type)
	}
	return a.service.recorder.Create(ctx, ev)
}

func (s *Service) reconcileSpec(bucket, prefix string) (*reconcile.Spec, error) {
	if !s.recorder.Enabled() {
		return nil, errx.New("reconciliation needs the audit database",
			errx.WithCode(CodeAuditDisabled),
			errx.WithType(errx.T_Validation),
		)
	}
	if bucket == "" {
		bucket = s.bucket
	}
	return &reconcile.Spec{
		Adapter:  auditAdapter{service: s},
		Bucket:   bucket,
		Prefix:   prefix,
		CacheTTL: reconcileCacheTTL,
	}, nil
}

// Reconcile compares the audit trail with the bucket contents under prefix.
func (s *Service) Reconcile(ctx context.Context, bucket, prefix string) (*reconcile.Plan, error) {
	spec, err := s.reconcileSpec(bucket, prefix)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.PlanFor(ctx, spec)
	if err != nil {
		return nil, errStorage(err, "reconcile")
	}
	return plan, nil
}

// ApplyReconcile repairs the audit trail so it matches the bucket again.
func (s *Service) ApplyReconcile(ctx context.Context, bucket, prefix string, opts reconcile.Options) (*reconcile.Plan, int, error) {
	spec, err := s.reconcileSpec(bucket, prefix)
	if err != nil {
		return nil, 0, err
	}

	// Plan on fresh indices; a stale cache would replay already repaired drift.
	reconcile.InvalidateCache(spec)
	plan, err := reconcile.PlanFor(ctx, spec)
	if err != nil {
		return nil, 0, errStorage(err, "reconcile")
	}

	executed, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
	if err != nil {
		return plan, executed, errStorage(err, "apply reconcile")
	}
	return plan, executed, nil
}
