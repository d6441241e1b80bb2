package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "czml_export.cfg.json"

// StorageConfig selects and configures the document storage backend.
type StorageConfig struct {
	Type      string          `json:"type" mapstructure:"type"`
	File      FileConfig      `json:"file" mapstructure:"file"`
	SQLite    SQLiteConfig    `json:"sqlite" mapstructure:"sqlite"`
	Postgres  PostgresConfig  `json:"postgres" mapstructure:"postgres"`
	WebSocket WebSocketConfig `json:"websocket" mapstructure:"websocket"`
}

// FileConfig holds file storage backend settings
type FileConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PostgresConfig holds Postgres connection settings
type PostgresConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// DSN builds a libpq connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

// WebSocketConfig holds WebSocket streaming backend settings
type WebSocketConfig struct {
	URL    string `json:"url" mapstructure:"url"`
	Secret string `json:"secret" mapstructure:"secret"`
}

// GeoConfig anchors world coordinates on the globe.
type GeoConfig struct {
	OriginLongitude float64
	OriginLatitude  float64
	HeightOffset    float64
}

// ExportConfig tunes the recording converter.
type ExportConfig struct {
	BillboardImage      string
	InterpolationDegree int
	TrailSeconds        float64
}

// InfluxConfig holds InfluxDB export statistics settings
type InfluxConfig struct {
	Enabled bool
	URL     string
	Token   string
	Org     string
	Bucket  string
	// BackupPath receives gzipped line protocol while InfluxDB is unreachable.
	BackupPath string
}

// GraylogConfig holds GELF log shipping settings
type GraylogConfig struct {
	Enabled bool
	Address string
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address        string
	AllowedOrigins []string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./czmllogs")

	viper.SetDefault("storage.type", "file")
	viper.SetDefault("storage.file.outputDir", "./czml")
	viper.SetDefault("storage.file.compressOutput", false)
	viper.SetDefault("storage.sqlite.path", "./czml.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "czml")

	viper.SetDefault("websocket.url", "ws://localhost:5000/api/czml")
	viper.SetDefault("websocket.secret", "")

	viper.SetDefault("geo.originLongitude", 0.0)
	viper.SetDefault("geo.originLatitude", 0.0)
	viper.SetDefault("geo.heightOffset", 0.0)

	viper.SetDefault("export.billboardImage", "")
	viper.SetDefault("export.interpolationDegree", 1)
	viper.SetDefault("export.trailSeconds", 0.0)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "ocap-metrics")
	viper.SetDefault("influx.bucket", "czml_export")
	viper.SetDefault("influx.backupPath", "")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "czml-export")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.allowedOrigins", []string{"*"})

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		File: FileConfig{
			OutputDir:      viper.GetString("storage.file.outputDir"),
			CompressOutput: viper.GetBool("storage.file.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
		WebSocket: WebSocketConfig{
			URL:    viper.GetString("websocket.url"),
			Secret: viper.GetString("websocket.secret"),
		},
	}
}

// GetGeoConfig returns the world anchoring configuration.
func GetGeoConfig() GeoConfig {
	return GeoConfig{
		OriginLongitude: viper.GetFloat64("geo.originLongitude"),
		OriginLatitude:  viper.GetFloat64("geo.originLatitude"),
		HeightOffset:    viper.GetFloat64("geo.heightOffset"),
	}
}

// GetExportConfig returns the converter configuration.
func GetExportConfig() ExportConfig {
	return ExportConfig{
		BillboardImage:      viper.GetString("export.billboardImage"),
		InterpolationDegree: viper.GetInt("export.interpolationDegree"),
		TrailSeconds:        viper.GetFloat64("export.trailSeconds"),
	}
}

// GetInfluxConfig returns the InfluxDB configuration.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled: viper.GetBool("influx.enabled"),
		URL: fmt.Sprintf(
			"%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetGraylogConfig returns the GELF log shipping configuration.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetServerConfig returns the HTTP server configuration.
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Address:        viper.GetString("server.address"),
		AllowedOrigins: viper.GetStringSlice("server.allowedOrigins"),
	}
}
