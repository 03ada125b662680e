package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"dsn"`
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	Timezone       string                `yaml:"timezone"`
	AI             AIConfig              `yaml:"ai"`
	Storage        StorageConfig         `yaml:"storage"`
	Uploads        UploadConfig          `yaml:"uploads"`
	Autosave       AutosaveConfig        `yaml:"autosave"`
	Wizard         WizardConfig          `yaml:"wizard"`
	Tracing        TracingConfig         `yaml:"tracing"`
}

type DatabaseRuntimeConfig struct {
	Driver    string            `yaml:"driver"` // mysql | postgres | sqlite | mongo
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	SSLMode   string            `yaml:"sslmode"`
	Path      string            `yaml:"path"` // sqlite file
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

type RuntimePathsConfig struct {
	Logs    string `yaml:"logs"`
	Uploads string `yaml:"uploads"`
}

// AIConfig lists the LLM gateways available to the generation and extraction modules.
type AIConfig struct {
	Providers       []AIProvider       `yaml:"providers"`
	GenerationModel *AIModelAssignment `yaml:"generation_model"`
	ExtractionModel *AIModelAssignment `yaml:"extraction_model"`
	MaxOutputTokens int                `yaml:"max_output_tokens"`
	Temperature     float64            `yaml:"temperature"`
}

type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter | Gemini
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

type StorageConfig struct {
	Driver string             `yaml:"driver"` // local | s3 | minio
	Local  LocalStorageConfig `yaml:"local"`
	S3     S3Options          `yaml:"s3"`
}

type LocalStorageConfig struct {
	Dir       string `yaml:"dir"`
	PublicURL string `yaml:"public_url"`
}

type S3Options struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	UseSSL          bool   `yaml:"use_ssl"`
	CustomDomain    string `yaml:"custom_domain"`
}

type UploadConfig struct {
	MaxSizeMB           int `yaml:"max_size_mb"`
	ExtractChars        int `yaml:"extract_chars"`
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

type AutosaveConfig struct {
	IdleSeconds int `yaml:"idle_seconds"`
}

type WizardConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter"` // stdout | otlp
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	ServiceName string  `yaml:"service_name"`
}
