package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the address of the storage service, with or without scheme.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000" validate:"required"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin" validate:"required"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin" validate:"required"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the default bucket files are stored in.
	Bucket string `mapstructure:"bucket" default:"files" validate:"required,min=3,max=63"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"gte=0"`
	// MaxUploadMB is the upload size ceiling in MiB.
	MaxUploadMB int64 `mapstructure:"max_upload_mb" default:"20" validate:"gte=0"`
}

// MaxUploadBytes returns the upload ceiling in bytes.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return DefaultMaxUploadBytes
	}
	return c.MaxUploadMB << 20
}

// DefaultMaxUploadBytes is the ceiling used when none is configured (20 MiB).
const DefaultMaxUploadBytes int64 = 20 << 20
