package config

type Config struct {
	Technical  TechnicalParameters
	Security   SecurityConfig
	Identity   IdentityConfig
	Directory  DirectoryConfig
	Logging    LoggingConfig
	Monitoring MonitoringConfig
}

type TechnicalParameters struct {
	InstanceId    string
	ListenAddress string `validate:"required"`
}

type SecurityConfig struct {
	// ApiToken is the pre-shared secret expected in the Authorization header
	// of protected routes.
	ApiToken       string `validate:"required,min=20" sensitive:"true"`
	AllowedOrigins []string
}

type IdentityConfig struct {
	ProjectId       string `validate:"required"`
	CredentialsFile string `validate:"required"`
	BaseUrl         string `validate:"required,url"`
	PageSize        int    `validate:"gt=0,lte=1000"`
}

type DirectoryConfig struct {
	BaseUrl    string `validate:"required,url"`
	DatabaseId string `validate:"required"`
	Collection string `validate:"required"`
}

type LoggingConfig struct {
	Level string
	File  string
}

type MonitoringConfig struct {
	Enabled bool
}
