package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./data/library.sqlite"

	// DefaultEnvFile is loaded into the environment on startup when present
	DefaultEnvFile = ".env"
)
