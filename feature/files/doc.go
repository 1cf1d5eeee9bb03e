// Package files exposes the bucket contents over HTTP.
//
// The Service is a thin layer over core/storage that adds the gateway rules:
// a uniform upload size ceiling checked before any storage call, automatic
// bucket creation, whitespace free object names and an optional audit trail.
//
// # HTTP Endpoints
//
//   - GET /files : Lists every object as a JSON array.
//   - GET /files/:object : Streams an object as an attachment.
//   - POST /upload : Uploads the multipart field "file"; empty body on success.
//   - GET /objects : Paged listing wrapped in the response envelope.
//   - POST /objects : Upload returning the stored location in the envelope.
//   - GET /objects/events : Recent audit events (requires a database).
//   - GET /objects/reconcile : Drift between the audit trail and the bucket.
//   - POST /objects/reconcile : Records the missing audit events.
//   - GET /objects/:object/exists : Existence check.
//   - GET /objects/:object/download : Streams an object, envelope on failure.
//   - DELETE /objects/:object : Best-effort delete.
//   - GET /codes : Lists the error code registry.
//   - GET /health : Liveness probe.
//
// The /objects endpoints follow a lenient policy: storage failures are answered
// with HTTP 200 and a success envelope whose info describes the failure.
package files
