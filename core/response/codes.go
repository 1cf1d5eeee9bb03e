package response

import (
	"fmt"
	"strconv"
)

// Level is the severity attached to an error code.
type Level int

const (
	LevelNormal Level = iota
	LevelInfo
	LevelNotice
	LevelWarn
	LevelError
)

var levelNames = [...]string{"NORMAL", "INFO", "NOTICE", "WARN", "ERROR"}

// String returns the level name.
func (l Level) String() string {
	if l < LevelNormal || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// MarshalText encodes the level as its digit, e.g. "2" for NOTICE.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalText accepts the digit form written by MarshalText. Digits outside
// LevelNormal..LevelError are rejected.
func (l *Level) UnmarshalText(b []byte) error {
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}
	if Level(n) < LevelNormal || Level(n) > LevelError {
		return fmt.Errorf("level %d out of range %d..%d", n, LevelNormal, LevelError)
	}
	*l = Level(n)
	return nil
}

// ErrorCode is an entry of the error code registry.
type ErrorCode struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Level   Level  `json:"level"`
}

const successCode = "0"

const (
	idxOK = iota
	idxBadRequest
	idxUnknownError
	idxValidError
	idxTokenEmpty
	idxTokenError
	idxDownstreamError
	idxNotFound
)

// registry keeps the declaration order; lookups scan it. Entries are only
// handed out by value.
var registry = [...]ErrorCode{
	idxOK:              {Code: successCode, Message: "OK", Level: LevelNormal},
	idxBadRequest:      {Code: "0001", Message: "bad request", Level: LevelNotice},
	idxUnknownError:    {Code: "0002", Message: "internal server error", Level: LevelWarn},
	idxValidError:      {Code: "0003", Message: "request params valid error", Level: LevelNotice},
	idxTokenEmpty:      {Code: "0004", Message: "token empty", Level: LevelNotice},
	idxTokenError:      {Code: "0005", Message: "token error", Level: LevelNotice},
	idxDownstreamError: {Code: "0006", Message: "down stream error", Level: LevelNotice},
	idxNotFound:        {Code: "0007", Message: "resource not found", Level: LevelNotice},
}

// OK returns the success entry. The functions below it return the matching
// error entries by value.
func OK() ErrorCode              { return registry[idxOK] }
func BadRequest() ErrorCode      { return registry[idxBadRequest] }
func UnknownError() ErrorCode    { return registry[idxUnknownError] }
func ValidError() ErrorCode      { return registry[idxValidError] }
func TokenEmpty() ErrorCode      { return registry[idxTokenEmpty] }
func TokenError() ErrorCode      { return registry[idxTokenError] }
func DownstreamError() ErrorCode { return registry[idxDownstreamError] }
func NotFound() ErrorCode        { return registry[idxNotFound] }

// Lookup returns the entry registered for code. Unknown codes resolve to
// UnknownError, so the lookup never fails.
func Lookup(code string) ErrorCode {
	for _, it := range registry {
		if it.Code == code {
			return it
		}
	}
	return UnknownError()
}

// Codes returns a copy of the registry in declaration order.
func Codes() []ErrorCode {
	out := make([]ErrorCode, len(registry))
	copy(out, registry[:])
	return out
}
