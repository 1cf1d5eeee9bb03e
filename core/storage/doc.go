// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the gateway can be
// pointed at MinIO or AWS S3 and tested against the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket provisioning before uploads.
//   - PutObject: uploads content (with size and options).
//   - StatObject / GetObject: metadata lookup and streaming reads.
//   - ListObjects: lists objects in a bucket (supports prefix/recursive).
//   - RemoveObject / RemoveObjects: single and batch deletion.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
