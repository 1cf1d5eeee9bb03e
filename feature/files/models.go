package files

import (
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// ObjectDescriptor describes a stored object.
type ObjectDescriptor struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag,omitempty"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
	IsDir        bool      `json:"isDir"`
}

func describe(info minio.ObjectInfo) ObjectDescriptor {
	return ObjectDescriptor{
		Name:         info.Key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
		IsDir:        strings.HasSuffix(info.Key, "/"),
	}
}

// Object is an open object stream. The caller must close Body.
type Object struct {
	Body io.ReadCloser
	Info ObjectDescriptor
}

// UploadInput describes an upload request.
type UploadInput struct {
	// Bucket overrides the configured bucket when set.
	Bucket string
	// Name is the target object name. When empty, OriginalName is used.
	Name string
	// OriginalName is the client supplied file name.
	OriginalName string
	// ContentType is sniffed from the content when empty.
	ContentType string
	// Size is the payload size in bytes, or -1 when unknown.
	Size   int64
	Reader io.Reader
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	FileURL        string `json:"fileUrl"`
	BucketName     string `json:"bucketName"`
	OriginFileName string `json:"originFileName"`
	Size           int64  `json:"size"`
	ContentType    string `json:"contentType"`
	ETag           string `json:"etag,omitempty"`
}
