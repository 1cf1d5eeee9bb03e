package response

import (
	"github.com/code19m/errx"
	"github.com/spf13/cast"
)

// Meta carries metadata about a list result. Currently only the record count.
type Meta struct {
	Count int `json:"count"`
}

// BuildMeta creates a Meta from an optional count; nil yields zero.
func BuildMeta(count *int) Meta {
	if count == nil {
		return Meta{}
	}
	return Meta{Count: *count}
}

// MetaFromString creates a Meta from a numeric string such as "42".
func MetaFromString(count string) (Meta, error) {
	n, err := cast.ToIntE(count)
	if err != nil {
		return Meta{}, errx.New("invalid meta count",
			errx.WithCode(CodeInvalidMetaCount),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"count": count}),
		)
	}
	return Meta{Count: n}, nil
}
