package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath, applies defaults, environment
// overrides and validation.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes raw YAML on top of the defaults.
func Parse(content []byte) (*AppConfig, error) {
	cfg := defaultAppConfig()
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(&cfg)
	finalize(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration, used when no config file exists.
func Default() *AppConfig {
	cfg := defaultAppConfig()
	applyEnvOverrides(&cfg)
	finalize(&cfg)
	return &cfg
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver:    defaultDBDriver,
			Host:      defaultDBHost,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		AI: AIConfig{
			MaxOutputTokens: defaultAIMaxOutputTokens,
			Temperature:     0.7,
		},
		Storage: StorageConfig{Driver: StorageLocal},
		Uploads: UploadConfig{
			MaxSizeMB:           defaultUploadMaxSizeMB,
			ExtractChars:        defaultUploadExtractLen,
			FetchTimeoutSeconds: defaultUploadFetchTimeout,
		},
		Autosave: AutosaveConfig{IdleSeconds: defaultAutosaveIdleSecs},
		Wizard:   WizardConfig{TTLHours: defaultWizardTTLHours},
		Tracing: TracingConfig{
			Exporter:    "stdout",
			SampleRatio: defaultTracingRatio,
			ServiceName: defaultTracingService,
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDSN)); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisURL)); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJWTSecret)); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAIAPIKey)); v != "" {
		for i := range cfg.AI.Providers {
			if strings.TrimSpace(cfg.AI.Providers[i].APIKey) == "" {
				cfg.AI.Providers[i].APIKey = v
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvS3AccessKey)); v != "" {
		cfg.Storage.S3.AccessKeyID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvS3SecretKey)); v != "" {
		cfg.Storage.S3.SecretAccessKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTracingTarget)); v != "" {
		cfg.Tracing.Endpoint = v
	}
}

func finalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.Paths = normalizeRuntimePaths(cfg.Paths)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.AI = normalizeAIConfig(cfg.AI)
	cfg.Storage = normalizeStorageConfig(cfg.Storage)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)

	// A top-level dsn / redis_url wins over the structured sections.
	if v := strings.TrimSpace(cfg.DSN); v != "" {
		cfg.Database.DSN = v
	}
	cfg.DSN = cfg.Database.DSNValue()
	if v := strings.TrimSpace(cfg.RedisURL); v != "" {
		cfg.Redis.URL = normalizeRedisRawURL(v)
	}
	cfg.RedisURL = cfg.Redis.URLValue()

	if cfg.Uploads.MaxSizeMB <= 0 {
		cfg.Uploads.MaxSizeMB = defaultUploadMaxSizeMB
	}
	if cfg.Uploads.ExtractChars <= 0 {
		cfg.Uploads.ExtractChars = defaultUploadExtractLen
	}
	if cfg.Uploads.FetchTimeoutSeconds <= 0 {
		cfg.Uploads.FetchTimeoutSeconds = defaultUploadFetchTimeout
	}
	if cfg.Autosave.IdleSeconds <= 0 {
		cfg.Autosave.IdleSeconds = defaultAutosaveIdleSecs
	}
	if cfg.Wizard.TTLHours <= 0 {
		cfg.Wizard.TTLHours = defaultWizardTTLHours
	}
	if strings.TrimSpace(cfg.Tracing.ServiceName) == "" {
		cfg.Tracing.ServiceName = defaultTracingService
	}
	cfg.Tracing.Exporter = strings.ToLower(strings.TrimSpace(cfg.Tracing.Exporter))
	if cfg.Tracing.Exporter == "" {
		cfg.Tracing.Exporter = "stdout"
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("invalid database.driver %q, expected mysql, postgres, sqlite or mongo", cfg.Database.Driver)
	}
	if cfg.Database.Driver != DriverSQLite && (cfg.Database.Port < 1 || cfg.Database.Port > 65535) {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", cfg.Database.Port)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", cfg.Redis.Port)
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", cfg.Redis.DB)
	}
	switch cfg.Storage.Driver {
	case StorageLocal, StorageS3, StorageMinio:
	default:
		return fmt.Errorf("invalid storage.driver %q, expected local, s3 or minio", cfg.Storage.Driver)
	}
	switch cfg.Tracing.Exporter {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("invalid tracing.exporter %q, expected stdout or otlp", cfg.Tracing.Exporter)
	}
	seen := make(map[string]struct{}, len(cfg.AI.Providers))
	for _, p := range cfg.AI.Providers {
		if p.ID == "" {
			return fmt.Errorf("ai provider %q has no id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate ai provider id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func (c *AppConfig) LogDir() string {
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

func (c *AppConfig) UploadDir() string {
	if dir := strings.TrimSpace(c.Storage.Local.Dir); dir != "" {
		return ResolveRuntimePath(dir, "")
	}
	return ResolveRuntimePath(c.Paths.Uploads, "uploads")
}

func (c *AppConfig) UploadMaxBytes() int64 {
	return int64(c.Uploads.MaxSizeMB) << 20
}

func (c *AppConfig) UploadFetchTimeout() time.Duration {
	return time.Duration(c.Uploads.FetchTimeoutSeconds) * time.Second
}

func (c *AppConfig) AutosaveIdle() time.Duration {
	return time.Duration(c.Autosave.IdleSeconds) * time.Second
}

func (c *AppConfig) WizardTTL() time.Duration {
	return time.Duration(c.Wizard.TTLHours) * time.Hour
}
