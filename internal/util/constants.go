package util

const DateFormat = "2006-01-02"

const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// RequestIDKey is the gin context key and the echoed header.
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

const MimeJSON = "application/json"
