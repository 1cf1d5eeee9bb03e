package files

import (
	"fmt"

	"github.com/code19m/errx"
	"github.com/dustin/go-humanize"
)

// Error codes for file operations.
const (
	// CodeObjectNotFound is returned when the requested object does not exist.
	CodeObjectNotFound = "OBJECT_NOT_FOUND"
	// CodeFileTooLarge is returned when an upload exceeds the size ceiling.
	CodeFileTooLarge = "FILE_TOO_LARGE"
	// CodeInvalidFileName is returned when no usable object name remains after sanitizing.
	CodeInvalidFileName = "INVALID_FILE_NAME"
	// CodeStorageFailure wraps any other error reported by the storage client.
	CodeStorageFailure = "STORAGE_FAILURE"
)

func errNotFound(bucket, object string) error {
	return errx.New(fmt.Sprintf("object %s not found in bucket %s", object, bucket),
		errx.WithCode(CodeObjectNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"bucket": bucket, "object": object}),
	)
}

func errTooLarge(size, limit int64) error {
	msg := fmt.Sprintf("file exceeds the %s upload limit", humanize.IBytes(uint64(limit)))
	if size > 0 {
		msg = fmt.Sprintf("file size %s exceeds the %s upload limit", humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))
	}
	return errx.New(msg,
		errx.WithCode(CodeFileTooLarge),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"size": size, "limit": limit}),
	)
}

func errInvalidName(name string) error {
	return errx.New("invalid file name",
		errx.WithCode(CodeInvalidFileName),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"name": name}),
	)
}

func errStorage(err error, op string) error {
	return errx.New(fmt.Sprintf("%s: %v", op, err),
		errx.WithCode(CodeStorageFailure),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"op": op}),
	)
}
