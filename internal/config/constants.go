// internal/config/constants.go
package config

const (
	AppName    = "drumgen-testbench"
	AppVersion = "1.0.0"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	DefaultServerPort  = ":8080"
	DefaultLogLevel    = "info"
	DefaultPromptLimit = 50
	MaxPromptLimit     = 5000
	DefaultResultLimit = 1000
	DefaultAuthEnabled = false
)
