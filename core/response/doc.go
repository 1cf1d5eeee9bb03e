// Package response defines the uniform JSON envelope returned by the gateway.
//
// Every envelope has the shape {"code", "msg", "info"}. The code is either the
// single character success code "0" or a six character composite made of a two
// character service code followed by a four character error code from the
// registry, so clients can tell success from failure by length alone.
//
// # Components
//
//   - ErrorCode: the fixed registry of error codes with message and level.
//   - Meta: record count metadata for list results.
//   - Result: a list of items paired with its Meta.
//   - Response: the generic envelope with its success and error constructors.
//
// # Usage
//
//	resp := response.SuccessWithResult(items, total)
//	return c.JSON(resp)
//
//	errResp, err := response.Error[any]("FS", response.NotFound())
package response
