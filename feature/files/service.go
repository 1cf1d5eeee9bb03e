package files

import (
	"bytes"
	"context"
	"io"
	"sort"

	"file-gateway/core/response"
	"file-gateway/core/storage"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles object operations against the configured bucket.
type Service struct {
	client    storage.Client
	bucket    string
	region    string
	maxUpload int64
	logger    *zap.Logger
	recorder  *Recorder
}

// NewService creates a new files service. db is optional and only used for the audit trail.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		maxUpload: cfg.MaxUploadBytes(),
		logger:    logger,
		recorder:  NewRecorder(db, logger),
	}
}

// Bucket returns the default bucket.
func (s *Service) Bucket() string {
	return s.bucket
}

// MaxUploadBytes returns the upload size ceiling.
func (s *Service) MaxUploadBytes() int64 {
	return s.maxUpload
}

// Recorder returns the audit recorder.
func (s *Service) Recorder() *Recorder {
	return s.recorder
}

// List returns every object of the default bucket. Order is not guaranteed.
func (s *Service) List(ctx context.Context) ([]ObjectDescriptor, error) {
	return s.list(ctx, s.bucket, "")
}

// ListPage returns a page of objects under prefix sorted by name, plus the
// total number of matching objects. A non-positive limit returns everything
// from offset.
func (s *Service) ListPage(ctx context.Context, prefix string, offset, limit int) ([]ObjectDescriptor, response.Meta, error) {
	all, err := s.list(ctx, s.bucket, prefix)
	if err != nil {
		return nil, response.Meta{}, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if offset < 0 {
		offset = 0
	}
	end := len(all)
	if limit > 0 {
		end = offset + limit
	}
	return lo.Slice(all, offset, end), response.Meta{Count: len(all)}, nil
}

func (s *Service) list(ctx context.Context, bucket, prefix string) ([]ObjectDescriptor, error) {
	// Cancelling stops the lister goroutine when we bail out early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var infos []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			if storage.IsNotFound(obj.Err) {
				return []ObjectDescriptor{}, nil
			}
			return nil, errStorage(obj.Err, "list objects")
		}
		infos = append(infos, obj)
	}

	return lo.Map(infos, func(o minio.ObjectInfo, _ int) ObjectDescriptor {
		return describe(o)
	}), nil
}

// Get opens an object of the default bucket for reading.
func (s *Service) Get(ctx context.Context, object string) (*Object, error) {
	return s.GetFrom(ctx, s.bucket, object)
}

// GetFrom opens an object for reading. A missing object yields a NotFound error.
func (s *Service) GetFrom(ctx context.Context, bucket, object string) (*Object, error) {
	if bucket == "" {
		bucket = s.bucket
	}
	if object == "" {
		return nil, errInvalidName(object)
	}

	info, err := s.client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, errNotFound(bucket, object)
		}
		return nil, errStorage(err, "stat object")
	}

	body, err := s.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, errStorage(err, "get object")
	}

	desc := describe(info)
	if desc.Name == "" {
		desc.Name = object
	}
	return &Object{Body: body, Info: desc}, nil
}

// Upload stores the content of in. The size ceiling is enforced before any
// storage call; the bucket is created when missing.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.Size > s.maxUpload {
		return nil, errTooLarge(in.Size, s.maxUpload)
	}

	reader, size := in.Reader, in.Size
	if size < 0 {
		// Unknown length: buffer at most one byte past the ceiling.
		data, err := io.ReadAll(io.LimitReader(in.Reader, s.maxUpload+1))
		if err != nil {
			return nil, errx.Wrap(err)
		}
		if int64(len(data)) > s.maxUpload {
			return nil, errTooLarge(-1, s.maxUpload)
		}
		reader, size = bytes.NewReader(data), int64(len(data))
	}

	rawName := in.Name
	if rawName == "" {
		rawName = in.OriginalName
	}
	name := sanitizeName(rawName)
	if name == "" {
		return nil, errInvalidName(rawName)
	}

	bucket := in.Bucket
	if bucket == "" {
		bucket = s.bucket
	}

	if err := s.ensureBucket(ctx, bucket); err != nil {
		return nil, err
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType, reader = sniffContentType(reader)
	}

	info, err := s.client.PutObject(ctx, bucket, name, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errStorage(err, "put object")
	}

	s.logger.Info("Uploaded object",
		zap.String("bucket", bucket),
		zap.String("object", name),
		zap.Int64("size", size))

	s.recorder.Record(ctx, FileEvent{
		Action:      ActionUpload,
		Bucket:      bucket,
		ObjectName:  name,
		Size:        size,
		ContentType: contentType,
	})

	return &UploadResult{
		FileURL:        bucket + "/" + name,
		BucketName:     bucket,
		OriginFileName: name,
		Size:           size,
		ContentType:    contentType,
		ETag:           info.ETag,
	}, nil
}

func (s *Service) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return errStorage(err, "check bucket")
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return errStorage(err, "create bucket")
	}
	s.logger.Info("Created bucket", zap.String("bucket", bucket))
	return nil
}

// Exists reports whether an object exists. Any failure counts as absent.
func (s *Service) Exists(ctx context.Context, bucket, name string) bool {
	if bucket == "" {
		bucket = s.bucket
	}
	_, err := s.client.StatObject(ctx, bucket, name, minio.StatObjectOptions{})
	return err == nil
}

// Delete removes an object. It is best-effort: failures are logged and
// reported as false.
func (s *Service) Delete(ctx context.Context, bucket, name string) bool {
	if bucket == "" {
		bucket = s.bucket
	}
	if err := s.client.RemoveObject(ctx, bucket, name, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("Failed to delete object",
			zap.String("bucket", bucket),
			zap.String("object", name),
			zap.Error(err))
		return false
	}

	s.recorder.Record(ctx, FileEvent{Action: ActionDelete, Bucket: bucket, ObjectName: name})
	return true
}

// DeletePrefix removes every object under prefix and returns how many were
// deleted. An empty prefix is rejected to avoid wiping the bucket by accident.
func (s *Service) DeletePrefix(ctx context.Context, bucket, prefix string) (int, error) {
	if prefix == "" {
		return 0, errInvalidName(prefix)
	}
	if bucket == "" {
		bucket = s.bucket
	}

	objs, err := s.list(ctx, bucket, prefix)
	if err != nil {
		return 0, err
	}

	objectsCh := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		objectsCh <- minio.ObjectInfo{Key: o.Name}
	}
	close(objectsCh)

	failed := make(map[string]bool)
	var firstErr error
	for rerr := range s.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed[rerr.ObjectName] = true
		if firstErr == nil {
			firstErr = rerr.Err
		}
	}

	deleted := 0
	for _, o := range objs {
		if failed[o.Name] {
			continue
		}
		deleted++
		s.recorder.Record(ctx, FileEvent{Action: ActionDelete, Bucket: bucket, ObjectName: o.Name, Size: o.Size})
	}

	if firstErr != nil {
		return deleted, errStorage(firstErr, "remove objects")
	}
	return deleted, nil
}

// Events returns the most recent audit events.
func (s *Service) Events(ctx context.Context, limit int) ([]FileEvent, error) {
	events, err := s.recorder.Recent(ctx, limit)
	if err != nil {
		return nil, errStorage(err, "load events")
	}
	return events, nil
}
