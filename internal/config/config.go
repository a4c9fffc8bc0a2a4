package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type PasswordConfig struct {
	Rounds int `yaml:"rounds"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type LinkTokenConfig struct {
	Secret   string `yaml:"secret"`
	Lifespan string `yaml:"lifespan"`
	BaseURL  string `yaml:"base_url"`
}

type RedirectConfig struct {
	ConfirmedURL string `yaml:"confirmed_url"`
	ExpiredURL   string `yaml:"expired_url"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type MailRetryConfig struct {
	Attempts int    `yaml:"attempts"`
	Delay    string `yaml:"delay"`
}

type ConfigFile struct {
	App          AppConfig       `yaml:"app"`
	Database     DatabaseConfig  `yaml:"database"`
	Password     PasswordConfig  `yaml:"password"`
	JWT          JWTConfig       `yaml:"jwt"`
	ConfirmEmail LinkTokenConfig `yaml:"confirm_email"`
	ResetToken   LinkTokenConfig `yaml:"password_reset"`
	Redirects    RedirectConfig  `yaml:"redirects"`
	SMTP         SMTPConfig      `yaml:"smtp"`
	MailRetry    MailRetryConfig `yaml:"mail_retry"`
}

type Config struct {
	Port    string
	GinMode string

	DSN string

	BcryptRounds int

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	ConfirmSecret   string
	ConfirmLifespan time.Duration
	ConfirmBaseURL  string

	ResetSecret   string
	ResetLifespan time.Duration
	ResetBaseURL  string

	ConfirmedRedirectURL string
	ExpiredRedirectURL   string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	MailRetryAttempts int
	MailRetryDelay    time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml config file, with environment variables taking
// precedence for secrets so they never have to live on disk.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	confirmTTL, err := time.ParseDuration(configFile.ConfirmEmail.Lifespan)
	if err != nil {
		return nil, fmt.Errorf("invalid confirmation token lifespan: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.ResetToken.Lifespan)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token lifespan: %w", err)
	}

	retryDelay, err := time.ParseDuration(configFile.MailRetry.Delay)
	if err != nil {
		return nil, fmt.Errorf("invalid mail retry delay: %w", err)
	}

	rounds := configFile.Password.Rounds
	if rounds == 0 {
		rounds = 12
	}

	attempts := configFile.MailRetry.Attempts
	if attempts == 0 {
		attempts = 5
	}

	return &Config{
		Port:                 fmt.Sprintf("%d", configFile.App.Port),
		GinMode:              configFile.App.GinMode,
		DSN:                  env("DATABASE_DSN", configFile.Database.DSN),
		BcryptRounds:         rounds,
		JWTSecret:            env("JWT_SECRET", configFile.JWT.Secret),
		AccessTTL:            accTTL,
		RefreshTTL:           refTTL,
		ConfirmSecret:        env("CONFIRM_EMAIL_SECRET", configFile.ConfirmEmail.Secret),
		ConfirmLifespan:      confirmTTL,
		ConfirmBaseURL:       configFile.ConfirmEmail.BaseURL,
		ResetSecret:          env("PASSWORD_RESET_SECRET", configFile.ResetToken.Secret),
		ResetLifespan:        resetTTL,
		ResetBaseURL:         configFile.ResetToken.BaseURL,
		ConfirmedRedirectURL: configFile.Redirects.ConfirmedURL,
		ExpiredRedirectURL:   configFile.Redirects.ExpiredURL,
		SMTPHost:             configFile.SMTP.Host,
		SMTPPort:             configFile.SMTP.Port,
		SMTPFrom:             configFile.SMTP.From,
		SMTPUsername:         configFile.SMTP.Username,
		SMTPPassword:         env("SMTP_PASSWORD", configFile.SMTP.Password),
		MailRetryAttempts:    attempts,
		MailRetryDelay:       retryDelay,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
