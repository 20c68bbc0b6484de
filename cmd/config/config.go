package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	Port           string
	Env            string
	DBDialect      string
	DBDSN          string
	JWTSecret      string
	TokenTTL       time.Duration
	AWSRegion      string
	S3Bucket       string
	UploadsDir     string
	AllowedOrigins []string
)

// Load reads config.yaml if present and environment variables otherwise.
// All values are read once at process start; there is no runtime reload.
func Load() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("cmd/config/")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.allowed_origins", []string{
		"http://localhost:3000", "http://127.0.0.1:3000",
		"http://localhost:5173",
	})
	viper.SetDefault("database.dialect", "sqlite3")
	viper.SetDefault("database.dsn", "vidshare.db")
	viper.SetDefault("auth.token_ttl", 7*24*time.Hour)
	viper.SetDefault("uploads.dir", "uploads")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.Fatalf("error reading config file: %v", err)
		}
	}

	Port = viper.GetString("server.port")
	Env = viper.GetString("server.env")
	AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	DBDialect = viper.GetString("database.dialect")
	DBDSN = viper.GetString("database.dsn")
	JWTSecret = viper.GetString("auth.jwt_secret")
	TokenTTL = viper.GetDuration("auth.token_ttl")
	AWSRegion = viper.GetString("aws.region")
	S3Bucket = viper.GetString("aws.s3_bucket")
	UploadsDir = viper.GetString("uploads.dir")

	if JWTSecret == "" {
		logrus.Fatal("auth.jwt_secret (env AUTH_JWT_SECRET) must be set")
	}
}
