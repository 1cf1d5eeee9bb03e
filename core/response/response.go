package response

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/code19m/errx"
)

const (
	CodeInvalidResponseCode = "INVALID_RESPONSE_CODE"
	CodeInvalidServiceCode  = "INVALID_SERVICE_CODE"
	CodeInvalidMetaCount    = "INVALID_META_COUNT"
)

const (
	serviceCodeLen = 2
	errorCodeLen   = 6
)

// Empty is the payload type of responses that never carry info.
type Empty struct{}

// Response is the envelope returned by every API endpoint.
//
// Response is a value type: the With* methods return modified copies and never
// touch the receiver, so values handed out by the package cannot be altered by
// callers.
type Response[T any] struct {
	code    string
	msg     string
	info    T
	hasInfo bool
}

var successEmpty = Response[Empty]{code: successCode, msg: registry[idxOK].Message}

// New creates a response from a raw code and message. The code must be the
// success code or exactly six characters long.
func New[T any](code, msg string) (Response[T], error) {
	if err := validateCode(code); err != nil {
		return Response[T]{}, err
	}
	return Response[T]{code: code, msg: msg}, nil
}

// Success returns a success response without info.
func Success[T any]() Response[T] {
	return Response[T]{code: successCode, msg: registry[idxOK].Message}
}

// SuccessEmpty returns the shared success response without payload.
func SuccessEmpty() Response[Empty] {
	return successEmpty
}

// SuccessWithInfo returns a success response carrying info.
func SuccessWithInfo[T any](info T) Response[T] {
	return Success[T]().WithInfo(info)
}

// SuccessWithResult returns a success response wrapping data and its total count.
func SuccessWithResult[T any](data []T, totalCount int) Response[Result[T]] {
	return SuccessWithMeta(data, Meta{Count: totalCount})
}

// SuccessWithMeta returns a success response wrapping data and meta.
func SuccessWithMeta[T any](data []T, meta Meta) Response[Result[T]] {
	return SuccessWithInfo(BuildResult(data, meta))
}

// Error builds an error response for the given service. The resulting code is
// serviceCode followed by the entry code. Lengths count characters, not bytes.
func Error[T any](serviceCode string, entry ErrorCode) (Response[T], error) {
	if utf8.RuneCountInString(serviceCode) != serviceCodeLen {
		return Response[T]{}, errx.New("service code must be 2 characters",
			errx.WithCode(CodeInvalidServiceCode),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"service_code": serviceCode}),
		)
	}
	return New[T](serviceCode+entry.Code, entry.Message)
}

// Code returns the response code.
func (r Response[T]) Code() string { return r.code }

// Msg returns the response message.
func (r Response[T]) Msg() string { return r.msg }

// Info returns the payload and whether one is set.
func (r Response[T]) Info() (T, bool) { return r.info, r.hasInfo }

// IsSuccess reports whether the code is the success code.
func (r Response[T]) IsSuccess() bool {
	return r.code == successCode
}

// WithInfo returns a copy of r carrying info.
func (r Response[T]) WithInfo(info T) Response[T] {
	r.info = info
	r.hasInfo = true
	return r
}

// WithMsg returns a copy of r with msg replaced.
func (r Response[T]) WithMsg(msg string) Response[T] {
	r.msg = msg
	return r
}

// WithCode returns a copy of r with code replaced. The code is validated the
// same way as in New.
func (r Response[T]) WithCode(code string) (Response[T], error) {
	if err := validateCode(code); err != nil {
		return r, err
	}
	r.code = code
	return r, nil
}

type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Info json.RawMessage `json:"info,omitempty"`
}

// MarshalJSON encodes the envelope, omitting info when none is set.
func (r Response[T]) MarshalJSON() ([]byte, error) {
	env := envelope{Code: r.code, Msg: r.msg}
	if r.hasInfo {
		raw, err := json.Marshal(r.info)
		if err != nil {
			return nil, err
		}
		env.Info = raw
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes an envelope. Unknown fields are ignored and the code
// is validated.
func (r *Response[T]) UnmarshalJSON(b []byte) error {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if err := validateCode(env.Code); err != nil {
		return err
	}

	out := Response[T]{code: env.Code, msg: env.Msg}
	if len(env.Info) > 0 && !bytes.Equal(env.Info, []byte("null")) {
		if err := json.Unmarshal(env.Info, &out.info); err != nil {
			return err
		}
		out.hasInfo = true
	}
	*r = out
	return nil
}

func validateCode(code string) error {
	if code == "" || (utf8.RuneCountInString(code) != errorCodeLen && code != successCode) {
		return errx.New("response code must be the success code or 6 characters",
			errx.WithCode(CodeInvalidResponseCode),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"code": code}),
		)
	}
	return nil
}
