package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 100
	MaxPageSize     = 1000

	HeaderXRequestID = "X-Request-ID"

	// Database table names
	TableUsers       = "users"
	TableMachines    = "machines"
	TableDigitalKeys = "digital_keys"
	TablePermissions = "user_machine_permissions"

	ErrMsgInternalServerError = "Internal server error occurred"
)
