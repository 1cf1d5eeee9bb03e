// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RayID: assigns a request id (RayID) to every incoming request, stores it in
//     the context locals and echoes it in the X-Ray-ID response header.
//   - ErrHandler: the Fiber error handler that turns errors returned by handlers
//     into response envelopes with a matching HTTP status.
//
// Authentication is deliberately absent: access control is delegated to the
// storage credentials.
package middleware
