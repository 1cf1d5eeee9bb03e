package files

import (
	"context"
	"errors"
	"strings"
	"time"

	"file-gateway/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Audit actions.
const (
	ActionUpload = "upload"
	ActionDelete = "delete"
)

// FileEvent is an audit record of a change made through the gateway.
type FileEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"size:16;index" json:"action"`
	Bucket      string    `gorm:"size:63" json:"bucket"`
	ObjectName  string    `gorm:"size:1024" json:"objectName"`
	Size        int64     `json:"size"`
	ContentType string    `gorm:"size:255" json:"contentType,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// TableName overrides the GORM table name.
func (FileEvent) TableName() string {
	return "file_events"
}

// Recorder writes file events to the database. A Recorder without a database
// is a no-op, which keeps the database optional.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder. db may be nil.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Enabled reports whether events are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.db != nil
}

// Migrate creates or updates the events table.
func (r *Recorder) Migrate() error {
	if !r.Enabled() {
		return nil
	}
	return r.db.AutoMigrate(&FileEvent{})
}

// Record stores an event. Failures are logged, never returned.
func (r *Recorder) Record(ctx context.Context, ev FileEvent) {
	if !r.Enabled() {
		return
	}
	if err := r.Create(ctx, ev); err != nil {
		r.logger.Warn("Failed to record file event",
			zap.String("action", ev.Action),
			zap.String("object", ev.ObjectName),
			zap.Error(err))
		return
	}
	// Cached reconcile indices no longer match the trail.
	reconcile.InvalidateAdapter(auditAdapterName)
}

// errAuditDisabled is returned by Create when no database is configured.
var errAuditDisabled = errors.New("audit database is not configured")

// Create stores an event and reports failures to the caller.
func (r *Recorder) Create(ctx context.Context, ev FileEvent) error {
	if !r.Enabled() {
		return errAuditDisabled
	}
	return r.db.WithContext(ctx).Create(&ev).Error
}

// Recent returns the latest events, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]FileEvent, error) {
	if !r.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	var events []FileEvent
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Latest returns the events of bucket whose object name starts with prefix,
// oldest first, so folding them leaves the last action per object.
func (r *Recorder) Latest(ctx context.Context, bucket, prefix string) ([]FileEvent, error) {
	if !r.Enabled() {
		return nil, nil
	}

	var events []FileEvent
	err := r.db.WithContext(ctx).
		Where("bucket = ? AND object_name LIKE ?", bucket, prefix+"%").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	// LIKE treats '_' and '%' as wildcards; sanitized names are full of '_'.
	out := events[:0]
	for _, ev := range events {
		if strings.HasPrefix(ev.ObjectName, prefix) {
			out = append(out, ev)
		}
	}
	return out, nil
}
