package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// SchedulerConfig contains the memory scheduler settings. All fields are
// optional; zero values fall back to the scheduler's built-in defaults.
type SchedulerConfig struct {
	RequestRetention float64   `mapstructure:"request_retention" validate:"omitempty,gt=0,lt=1"`
	MaximumInterval  int       `mapstructure:"maximum_interval"  validate:"omitempty,gt=0"`
	Decay            float64   `mapstructure:"decay"             validate:"omitempty,lt=0"`
	Weights          []float64 `mapstructure:"weights"           validate:"omitempty,len=19"`
}
