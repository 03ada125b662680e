package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"

	defaultDBDriver     = DriverMySQL
	defaultDBHost       = "127.0.0.1"
	defaultDBPort       = 3306
	defaultPostgresPort = 5432
	defaultMongoPort    = 27017
	defaultDBUser       = "root"
	defaultDBPassword   = "password"
	defaultDBName       = "brand_hub"
	defaultDBCharset    = "utf8mb4"
	defaultDBLoc        = "Local"
	defaultSQLitePath   = "brand_hub.db"
	defaultRedisHost    = "localhost"
	defaultRedisPort    = 6379
	defaultRedisDB      = 0

	StorageLocal = "local"
	StorageS3    = "s3"
	StorageMinio = "minio"

	defaultUploadMaxSizeMB    = 20
	defaultUploadExtractLen   = 10000
	defaultUploadFetchTimeout = 30
	defaultAutosaveIdleSecs   = 30
	defaultWizardTTLHours     = 24
	defaultAIMaxOutputTokens  = 4096
	defaultTracingService     = "brand-hub"
	defaultTracingRatio       = 0.1

	// Environment overrides for secrets that should not live in config.yml.
	EnvDSN           = "BRANDHUB_DSN"
	EnvRedisURL      = "BRANDHUB_REDIS_URL"
	EnvJWTSecret     = "BRANDHUB_JWT_SECRET"
	EnvAIAPIKey      = "BRANDHUB_AI_API_KEY"
	EnvS3AccessKey   = "BRANDHUB_S3_ACCESS_KEY_ID"
	EnvS3SecretKey   = "BRANDHUB_S3_SECRET_ACCESS_KEY"
	EnvTracingTarget = "BRANDHUB_OTLP_ENDPOINT"
)
