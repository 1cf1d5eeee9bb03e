// Package config provides configuration management for the file gateway.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each
// section and the result is checked against the `validate` tags.
//
// # Configuration Structure
//
//   - Server: HTTP port, body limit and the two character service code
//   - Storage: S3/MinIO endpoint, credentials, bucket and upload ceiling
//   - Log: Logging level and format
//   - Database: optional audit database
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
