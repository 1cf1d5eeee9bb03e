package response

// Result pairs a list of items with its metadata.
type Result[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// BuildResult wraps data and meta. A nil slice is replaced by an empty one so
// that data always encodes as a JSON array.
func BuildResult[T any](data []T, meta Meta) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Data: data, Meta: meta}
}
