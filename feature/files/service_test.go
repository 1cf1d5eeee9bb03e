package files

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"file-gateway/core/storage"
	"file-gateway/core/storage/mocks"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() storage.Config {
	return storage.Config{Bucket: "test-bucket", Region: "us-east-1", MaxUploadMB: 20}
}

func newTestService(client storage.Client) *Service {
	return NewService(client, testConfig(), zap.NewNop(), nil)
}

func TestService_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.ObjectChannel(
			minio.ObjectInfo{Key: "a.txt", Size: 3},
			minio.ObjectInfo{Key: "dir/b.png", Size: 10, ContentType: "image/png"},
		))

		objects, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, objects, 2)
		assert.Equal(t, "a.txt", objects[0].Name)
		assert.Equal(t, int64(10), objects[1].Size)
		assert.False(t, objects[1].IsDir)
	})

	t.Run("Empty", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.ObjectChannel())

		objects, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, objects)
		assert.Empty(t, objects)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.ObjectChannel(
			minio.ObjectInfo{Err: minio.ErrorResponse{Code: "NoSuchBucket"}},
		))

		objects, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, objects)
	})

	t.Run("Failure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.ObjectChannel(
			minio.ObjectInfo{Err: assert.AnError},
		))

		_, err := svc.List(context.Background())
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeStorageFailure))
	})
}

func TestService_ListPage(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "docs/" && o.Recursive
	})).Return(func(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		return mocks.ObjectChannel(
			minio.ObjectInfo{Key: "docs/c"},
			minio.ObjectInfo{Key: "docs/a"},
			minio.ObjectInfo{Key: "docs/b"},
		)
	})

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []string
	}{
		{"All", 0, 0, []string{"docs/a", "docs/b", "docs/c"}},
		{"SecondPage", 1, 1, []string{"docs/b"}},
		{"LimitPastEnd", 2, 5, []string{"docs/c"}},
		{"OffsetPastEnd", 10, 5, []string{}},
		{"NegativeOffset", -3, 2, []string{"docs/a", "docs/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, meta, err := svc.ListPage(context.Background(), "docs/", tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, 3, meta.Count)

			names := make([]string, 0, len(page))
			for _, o := range page {
				names = append(names, o.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestService_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("StatObject", mock.Anything, "test-bucket", "missing.txt", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		obj, err := svc.Get(context.Background(), "missing.txt")
		assert.Nil(t, obj)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeObjectNotFound))
		assert.Equal(t, errx.T_NotFound, errx.GetType(err))
		mockClient.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StatFailure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("StatObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).
			Return(minio.ObjectInfo{}, assert.AnError)

		_, err := svc.Get(context.Background(), "a.txt")
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeStorageFailure))
	})

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("StatObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).
			Return(minio.ObjectInfo{Key: "a.txt", Size: 5}, nil)
		mockClient.On("GetObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).
			Return(io.NopCloser(strings.NewReader("hello")), nil)

		obj, err := svc.Get(context.Background(), "a.txt")
		require.NoError(t, err)
		defer obj.Body.Close()

		data, err := io.ReadAll(obj.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.Equal(t, int64(5), obj.Info.Size)
	})

	t.Run("EmptyName", func(t *testing.T) {
		svc := newTestService(new(mocks.Client))
		_, err := svc.Get(context.Background(), "")
		assert.True(t, errx.IsCodeIn(err, CodeInvalidFileName))
	})
}

func TestService_Upload_SizeCeiling(t *testing.T) {
	const size = 25 << 20

	t.Run("KnownSize", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		res, err := svc.Upload(context.Background(), UploadInput{
			OriginalName: "big.bin",
			Size:         size,
			Reader:       bytes.NewReader(make([]byte, size)),
		})
		assert.Nil(t, res)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeFileTooLarge))
		assert.Equal(t, errx.T_Validation, errx.GetType(err))
		assert.Contains(t, err.Error(), "20 MiB")
		mockClient.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
		mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownSize", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		_, err := svc.Upload(context.Background(), UploadInput{
			Name:   "big.bin",
			Size:   -1,
			Reader: bytes.NewReader(make([]byte, size)),
		})
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeFileTooLarge))
		mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ExactlyAtCeiling", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, storage.Config{Bucket: "test-bucket", MaxUploadMB: 1}, zap.NewNop(), nil)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "test-bucket", "edge.bin", mock.Anything, int64(1<<20), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		_, err := svc.Upload(context.Background(), UploadInput{
			Name:        "edge.bin",
			ContentType: "application/octet-stream",
			Size:        -1,
			Reader:      bytes.NewReader(make([]byte, 1<<20)),
		})
		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestService_Upload(t *testing.T) {
	t.Run("CreatesBucketAndSanitizesName", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)
		mockClient.On("PutObject", mock.Anything, "test-bucket", "my_report_v2.txt", mock.Anything, int64(5), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "text/plain"
		})).Return(minio.UploadInfo{ETag: "etag-1"}, nil)

		res, err := svc.Upload(context.Background(), UploadInput{
			OriginalName: "my report v2.txt",
			ContentType:  "text/plain",
			Size:         5,
			Reader:       strings.NewReader("hello"),
		})
		require.NoError(t, err)
		assert.Equal(t, "test-bucket/my_report_v2.txt", res.FileURL)
		assert.Equal(t, "test-bucket", res.BucketName)
		assert.Equal(t, "my_report_v2.txt", res.OriginFileName)
		assert.Equal(t, "etag-1", res.ETag)
		mockClient.AssertExpectations(t)
	})

	t.Run("ExplicitNameAndBucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		mockClient.On("BucketExists", mock.Anything, "other").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "other", "renamed.txt", mock.Anything, int64(2), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		res, err := svc.Upload(context.Background(), UploadInput{
			Bucket:       "other",
			Name:         "renamed.txt",
			OriginalName: "original.txt",
			ContentType:  "text/plain",
			Size:         2,
			Reader:       strings.NewReader("hi"),
		})
		require.NoError(t, err)
		assert.Equal(t, "other/renamed.txt", res.FileURL)
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SniffsContentType", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "test-bucket", "pixel", mock.Anything, int64(len(png)), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "image/png"
		})).Return(minio.UploadInfo{}, nil)

		res, err := svc.Upload(context.Background(), UploadInput{
			Name:   "pixel",
			Size:   int64(len(png)),
			Reader: bytes.NewReader(png),
		})
		require.NoError(t, err)
		assert.Equal(t, "image/png", res.ContentType)
	})

	t.Run("InvalidName", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		_, err := svc.Upload(context.Background(), UploadInput{Name: "../", Size: 1, Reader: strings.NewReader("x")})
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeInvalidFileName))
		mockClient.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
	})

	t.Run("BucketCheckFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, assert.AnError)

		_, err := svc.Upload(context.Background(), UploadInput{Name: "a.txt", ContentType: "text/plain", Size: 1, Reader: strings.NewReader("x")})
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeStorageFailure))
	})

	t.Run("PutFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "test-bucket", "a.txt", mock.Anything, int64(1), mock.Anything).
			Return(minio.UploadInfo{}, assert.AnError)

		_, err := svc.Upload(context.Background(), UploadInput{Name: "a.txt", ContentType: "text/plain", Size: 1, Reader: strings.NewReader("x")})
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeStorageFailure))
		assert.Contains(t, err.Error(), "put object")
	})
}

func TestService_Exists(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("StatObject", mock.Anything, "test-bucket", "here.txt", mock.Anything).Return(minio.ObjectInfo{Key: "here.txt"}, nil)
	mockClient.On("StatObject", mock.Anything, "other", "gone.txt", mock.Anything).Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

	assert.True(t, svc.Exists(context.Background(), "", "here.txt"))
	assert.False(t, svc.Exists(context.Background(), "other", "gone.txt"))
}

func TestService_Delete(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("RemoveObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).Return(nil)
	mockClient.On("RemoveObject", mock.Anything, "test-bucket", "b.txt", mock.Anything).Return(assert.AnError)

	assert.True(t, svc.Delete(context.Background(), "", "a.txt"))
	assert.False(t, svc.Delete(context.Background(), "test-bucket", "b.txt"))
}

func TestService_DeletePrefix(t *testing.T) {
	t.Run("PartialFailure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.ObjectChannel(
			minio.ObjectInfo{Key: "tmp/a"},
			minio.ObjectInfo{Key: "tmp/b"},
		))
		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "tmp/b", Err: assert.AnError}
		close(errCh)
		mockClient.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		deleted, err := svc.DeletePrefix(context.Background(), "", "tmp/")
		assert.Equal(t, 1, deleted)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, CodeStorageFailure))
	})

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.ObjectChannel(
			minio.ObjectInfo{Key: "tmp/a"},
		))
		mockClient.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(func(ctx context.Context, bucket string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
				for range objectsCh {
				}
				ch := make(chan minio.RemoveObjectError)
				close(ch)
				return ch
			})

		deleted, err := svc.DeletePrefix(context.Background(), "", "tmp/")
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
	})

	t.Run("EmptyPrefix", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := newTestService(mockClient)

		_, err := svc.DeletePrefix(context.Background(), "", "")
		assert.True(t, errx.IsCodeIn(err, CodeInvalidFileName))
		mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})
}
