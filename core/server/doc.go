// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// defines the port, the request body limit and the two character service code
// that prefixes every error code returned by the API.
package server
