package server

import "file-gateway/core/middleware/errhandler"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080" validate:"required,numeric"`
	// ServiceCode is the two character prefix of every error code this service emits.
	ServiceCode string `mapstructure:"service_code" default:"FS" validate:"len=2"`
	// BodyLimitMB caps request bodies. It must stay above the upload ceiling so
	// oversized uploads reach the handler and get a descriptive rejection.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64" validate:"gte=0"`
}

// DefaultBodyLimitMB is used when BodyLimitMB is not set.
const DefaultBodyLimitMB = 64

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return DefaultBodyLimitMB << 20
	}
	return c.BodyLimitMB << 20
}

// ErrorServiceCode returns the configured service code, falling back to "FS"
// when it is not exactly two characters.
func (c Config) ErrorServiceCode() string {
	return errhandler.ServiceCode(c.ServiceCode)
}
