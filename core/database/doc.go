// Package database provides the optional relational database connection.
//
// The gateway works without a database. When one is configured, the files
// feature records an audit trail of uploads and deletions through GORM.
//
// # Drivers
//
//   - mysql: go-sql-driver based DSN built from host, port, user and password.
//   - sqlite: file path (or ":memory:") taken from Name.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
