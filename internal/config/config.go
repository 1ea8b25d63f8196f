package config

import (
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DispatcherFCM  = "fcm"
	DispatcherStub = "stub"
)

type Config struct {
	Env        string          `yaml:"env" env:"ENV" env-default:"production"`
	ProjectID  string          `yaml:"project_id" env:"GOOGLE_CLOUD_PROJECT"`
	Dispatcher string          `yaml:"dispatcher" env:"DISPATCHER" env-default:"fcm"` // fcm or stub
	Port       string          `yaml:"port" env:"PORT" env-default:"8080"`
	FCM        FCMConfig       `yaml:"fcm"`
	Firestore  FirestoreConfig `yaml:"firestore"`
	Log        LogConfig       `yaml:"log"`
}

type FCMConfig struct {
	CredentialsPath string `yaml:"credentials_path" env:"FCM_CREDENTIALS_PATH"` // empty means Application Default Credentials
	DryRun          bool   `yaml:"dry_run" env:"FCM_DRY_RUN" env-default:"false"`
}

type FirestoreConfig struct {
	Database string `yaml:"database" env:"FIRESTORE_DATABASE" env-default:"(default)"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
}

// Validate checks values that cleanenv cannot express with tags.
func (c *Config) Validate() error {
	switch c.Dispatcher {
	case DispatcherFCM, DispatcherStub:
	default:
		return fmt.Errorf("unknown dispatcher %q (expected %q or %q)", c.Dispatcher, DispatcherFCM, DispatcherStub)
	}
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	return nil
}

// LoadConfig loads an optional .env file, then the yaml file at configPath with env
// overrides. When the yaml file is missing or unreadable only the environment is used.
func LoadConfig(configPath, envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s: %v", envFilePath, err)
			}
		}
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Printf("Warning: could not read config file '%s': %v. Falling back to environment.", configPath, err)
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("error loading configuration: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// PathFromEnv returns CONFIG_PATH or the default config.yml.
func PathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yml"
}
