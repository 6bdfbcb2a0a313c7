package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "STAFFADMIN"

func LoadConfig(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// keys without defaults have to be bound explicitly
	for _, key := range []string{
		"technical.instanceId",
		"security.apiToken",
		"identity.projectId",
		"identity.credentialsFile",
		"logging.file",
		"monitoring.enabled",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// a config file is optional, environment variables may carry everything
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("technical.listenAddress", ":3000")
	v.SetDefault("identity.baseUrl", "https://identitytoolkit.googleapis.com/v1")
	v.SetDefault("identity.pageSize", 200)
	v.SetDefault("directory.baseUrl", "https://firestore.googleapis.com/v1")
	v.SetDefault("directory.databaseId", "(default)")
	v.SetDefault("directory.collection", "LoginCredentials")
	v.SetDefault("logging.level", "info")
}

func validateConfig(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		violations := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			violations = append(violations, fmt.Sprintf("%s (%s)", fieldError.Namespace(), fieldError.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(violations, ", "))
	}
	return fmt.Errorf("invalid configuration: %w", err)
}
